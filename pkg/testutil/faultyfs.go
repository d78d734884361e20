package testutil

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/arthur-debert/cardinal/pkg/types"
)

// Operation names accepted by FaultyFS.FailOn
const (
	OpOpen     = "open"
	OpOpenFile = "openfile"
	OpMkdir    = "mkdir"
	OpReadDir  = "readdir"
	OpRename   = "rename"
	OpRemove   = "remove"
	OpSymlink  = "symlink"
	OpLstat    = "lstat"
)

type fault struct {
	op     string
	prefix string
	err    error
}

// FaultyFS wraps a types.FS and fails chosen operations on paths that
// start with a given prefix. Everything else is passed through.
type FaultyFS struct {
	types.FS

	mu     sync.Mutex
	faults []fault
	calls  map[string]int
}

// NewFaultyFS wraps inner.
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{FS: inner, calls: make(map[string]int)}
}

// FailOn makes op fail with err for every path starting with prefix.
func (f *FaultyFS) FailOn(op, prefix string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, fault{op: op, prefix: prefix, err: err})
}

// Calls returns how many times op was invoked.
func (f *FaultyFS) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultyFS) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	for _, flt := range f.faults {
		if flt.op == op && strings.HasPrefix(path, flt.prefix) {
			return &fs.PathError{Op: op, Path: path, Err: flt.err}
		}
	}
	return nil
}

func (f *FaultyFS) Open(name string) (fs.File, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.FS.Open(name)
}

func (f *FaultyFS) OpenFile(name string, flag int, perm fs.FileMode) (types.WritableFile, error) {
	if err := f.check(OpOpenFile, name); err != nil {
		return nil, err
	}
	return f.FS.OpenFile(name, flag, perm)
}

func (f *FaultyFS) Mkdir(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdir, path); err != nil {
		return err
	}
	return f.FS.Mkdir(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) RemoveAll(path string) error {
	if err := f.check(OpRemove, path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	if err := f.check(OpSymlink, newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.check(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}
