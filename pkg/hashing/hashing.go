package hashing

import (
	"crypto/sha1"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/logging"
	"github.com/arthur-debert/cardinal/pkg/types"
)

var log = logging.GetLogger("hashing")

// HashFile returns the digest of the file's bytes.
func HashFile(fsys types.FS, path string) (Digest, error) {
	var d Digest

	f, err := fsys.Open(path)
	if err != nil {
		return d, errors.Wrapf(err, errors.ErrIO, "cannot open %s", path).
			WithDetail("path", path)
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return d, errors.Wrapf(err, errors.ErrIO, "cannot read %s", path).
			WithDetail("path", path)
	}
	copy(d[:], h.Sum(nil))

	log.Trace().Str("path", path).Str("digest", d.String()).Msg("Hashed file")
	return d, nil
}

// HashDir returns the digest of a directory tree. Children are visited in
// name order; each child's hex digest is appended to the input of the
// directory's own hash.
func HashDir(fsys types.FS, path string) (Digest, error) {
	var d Digest

	entries, err := fsys.ReadDir(path)
	if err != nil {
		return d, errors.Wrapf(err, errors.ErrIO, "cannot read directory %s", path).
			WithDetail("path", path)
	}

	h := sha1.New()
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())

		var sub Digest
		switch mode := entry.Type(); {
		case mode.IsRegular():
			sub, err = HashFile(fsys, child)
		case mode.IsDir():
			sub, err = HashDir(fsys, child)
		default:
			return d, unsupported(child, mode)
		}
		if err != nil {
			return d, err
		}
		_, _ = io.WriteString(h, sub.String())
	}
	copy(d[:], h.Sum(nil))

	log.Trace().Str("path", path).Int("children", len(entries)).Str("digest", d.String()).Msg("Hashed directory")
	return d, nil
}

// HashPath hashes path as a file or a directory depending on what it is.
// The path itself is not followed if it is a symlink.
func HashPath(fsys types.FS, path string) (Digest, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		return Digest{}, errors.Wrapf(err, errors.ErrIO, "cannot stat %s", path).
			WithDetail("path", path)
	}

	switch mode := info.Mode(); {
	case mode.IsRegular():
		return HashFile(fsys, path)
	case mode.IsDir():
		return HashDir(fsys, path)
	default:
		return Digest{}, unsupported(path, mode)
	}
}

func unsupported(path string, mode fs.FileMode) *errors.CardinalError {
	return errors.Newf(errors.ErrUnsupportedEntryType, "unsupported entry type %s at %s", mode.Type(), path).
		WithDetails(map[string]interface{}{
			"path": path,
			"mode": mode.String(),
		})
}
