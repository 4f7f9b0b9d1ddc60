package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestExists_ProbesTheGivenFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"a/b.txt": {}}

	require.True(t, Exists(fsys, "a/b.txt"))
	require.False(t, Exists(fsys, "a/missing.txt"))
}

func TestFileExists_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	require.True(t, FileExists(file))
	require.False(t, FileExists(dir), "a directory is not a file")
	require.False(t, FileExists(filepath.Join(dir, "missing")))
}

func TestDirExists_IgnoresFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	require.True(t, DirExists(dir))
	require.False(t, DirExists(file))
	require.False(t, DirExists(filepath.Join(dir, "missing")))
}
