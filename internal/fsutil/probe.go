// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
)

// Exists reports whether name exists inside fsys. Names follow io/fs
// conventions: slash-separated and relative to the root of fsys.
func Exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}

// FileExists reports whether path names an existing regular file on the
// host filesystem. Directories do not count.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists reports whether path names an existing directory on the host
// filesystem.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
