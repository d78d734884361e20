package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/types"
)

// CopyFile copies the regular file src to dst, preserving permission bits.
// dst must not exist.
func CopyFile(fsys types.FS, src, dst string) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrUnsupportedEntryType, "not a regular file: %s", src).
			WithDetail("mode", info.Mode().String())
	}

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// CopyTree copies src to dst. src may be a regular file or a directory
// holding only regular files and directories; anything else fails.
// dst must not exist.
func CopyTree(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode().IsRegular():
		return CopyFile(fsys, src, dst)
	case info.IsDir():
		return copyDir(fsys, src, dst, info.Mode().Perm())
	default:
		return errors.Newf(errors.ErrUnsupportedEntryType, "cannot copy %s", src).
			WithDetail("mode", info.Mode().String())
	}
}

func copyDir(fsys types.FS, src, dst string, perm fs.FileMode) error {
	// owner needs write access while the tree is being filled
	if err := fsys.Mkdir(dst, perm|0o700); err != nil {
		return err
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := CopyTree(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
