package types

import (
	"io/fs"
)

// FS is the filesystem interface required for pacdec operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Canonical returns the absolute, symlink-free form of path. It fails
	// when path does not exist.
	Canonical(path string) (string, error)
}
