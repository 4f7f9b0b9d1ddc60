package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSampleList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSamples_SkipsCommentsAndBlankLines(t *testing.T) {
	t.Parallel()

	path := writeSampleList(t, `
# Cohort one.
SRR001

  SRR002
# trailing comment
SRR003
`)

	samples, err := LoadSamples(path)

	require.NoError(t, err)
	require.Equal(t, []string{"SRR001", "SRR002", "SRR003"}, samples)
}

func TestLoadSamples_EmptyListIsFatal(t *testing.T) {
	t.Parallel()

	path := writeSampleList(t, "# only comments\n\n")

	_, err := LoadSamples(path)

	require.ErrorIs(t, err, ErrNoSamples)
}

func TestLoadSamples_MissingFileIsFatal(t *testing.T) {
	t.Parallel()

	_, err := LoadSamples(filepath.Join(t.TempDir(), "nope.txt"))

	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
