package types

import (
	"io/fs"
)

// FS is the filesystem interface required for cardinal operations.
// Paths are plain OS paths; implementations decide what they are rooted at.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (fs.File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (WritableFile, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// Lstat does not follow symlinks. Implementations without symlink
	// support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// WritableFile is the subset of *os.File used when writing copies.
type WritableFile interface {
	Write(p []byte) (int, error)
	Close() error
	Sync() error
}
