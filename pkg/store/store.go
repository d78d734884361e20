package store

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/filesystem"
	"github.com/arthur-debert/cardinal/pkg/hashing"
	"github.com/arthur-debert/cardinal/pkg/logging"
	"github.com/arthur-debert/cardinal/pkg/paths"
	"github.com/arthur-debert/cardinal/pkg/types"
	"github.com/google/uuid"
)

var log = logging.GetLogger("store")

const stagingSuffix = ".partial"

// Store is a content-addressed directory of immutable entries.
type Store struct {
	fs   types.FS
	root string
}

// New returns a store rooted at root. Nothing is touched on disk until
// Create or Add is called.
func New(fsys types.FS, root string) *Store {
	return &Store{fs: fsys, root: filepath.Clean(root)}
}

// Path returns the store root.
func (s *Store) Path() string {
	return s.root
}

// Create makes the store directory. It succeeds if the directory already
// exists. The parent directory must exist.
func (s *Store) Create() error {
	err := s.fs.Mkdir(s.root, 0755)
	if err == nil {
		log.Info().Str("path", s.root).Msg("Created store")
		return nil
	}

	if errors.Is(err, fs.ErrExist) {
		info, statErr := s.fs.Stat(s.root)
		if statErr == nil && info.IsDir() {
			log.Debug().Str("path", s.root).Msg("Store already exists")
			return nil
		}
		return errors.Wrapf(err, errors.ErrIO, "store path %s exists and is not a directory", s.root).
			WithDetail("path", s.root)
	}

	return errors.Wrapf(err, errors.ErrIO, "failed to create store at %s", s.root).
		WithDetail("path", s.root)
}

// List returns the full path of every entry in the store, sorted by name.
func (s *Store) List() ([]string, error) {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read store %s", s.root).
			WithDetail("path", s.root)
	}

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		// entries removed since the listing are skipped
		if _, err := entry.Info(); err != nil {
			log.Debug().Err(err).Str("name", entry.Name()).Msg("Skipping unreadable store child")
			continue
		}
		result = append(result, filepath.Join(s.root, entry.Name()))
	}
	return result, nil
}

// Entries returns the parsed store entries. Children that do not follow
// the naming scheme, like staging files, are left out.
func (s *Store) Entries() ([]Entry, error) {
	list, err := s.List()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(list))
	for _, path := range list {
		name := filepath.Base(path)
		if paths.IsHiddenPath(name) {
			continue
		}
		entry, err := ParseEntryName(name)
		if err != nil {
			log.Debug().Str("name", name).Msg("Ignoring non-entry in store")
			continue
		}
		entry.Path = path
		entries = append(entries, entry)
	}
	return entries, nil
}

// PathFor returns where source would be stored, without copying anything.
func (s *Store) PathFor(source string) (string, error) {
	name, _, err := s.entryNameFor(source)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, name), nil
}

// Add copies source into the store and returns the new entry's path.
// source can be a regular file or a directory tree of regular files. If an
// entry with the same name exists the add fails with CONFLICT; the error's
// "path" detail carries the existing entry.
func (s *Store) Add(source string) (string, error) {
	done := logging.LogOperationStart(log, "store.add")
	defer done()

	name, digest, err := s.entryNameFor(source)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(s.root, name)
	if _, err := s.fs.Lstat(dest); err == nil {
		return "", errors.Newf(errors.ErrConflict, "%s is already in the store", source).
			WithDetails(map[string]interface{}{"path": dest, "source": source})
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to check %s", dest).
			WithDetail("path", dest)
	}

	staging := filepath.Join(s.root, "."+uuid.NewString()+stagingSuffix)
	if err := filesystem.CopyTree(s.fs, source, staging); err != nil {
		s.discard(staging)
		return "", errors.Wrapf(err, errors.ErrCopyFailed, "failed to copy %s into the store", source).
			WithDetails(map[string]interface{}{"source": source, "path": dest})
	}

	if err := s.fs.Rename(staging, dest); err != nil {
		s.discard(staging)
		return "", errors.Wrapf(err, errors.ErrCopyFailed, "failed to move %s into place", source).
			WithDetails(map[string]interface{}{"source": source, "path": dest})
	}

	log.Info().
		Str("source", source).
		Str("digest", digest.String()).
		Str("path", dest).
		Msg("Added to store")
	return dest, nil
}

// Has reports whether an entry called name exists.
func (s *Store) Has(name string) (bool, error) {
	if err := paths.ValidateName(name); err != nil {
		return false, err
	}
	_, err := s.fs.Lstat(filepath.Join(s.root, name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrIO, "failed to check %s", name)
}

// Delete removes the entry called name. Directory entries are removed with
// their contents.
func (s *Store) Delete(name string) error {
	if err := paths.ValidateName(name); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid entry name %q", name).
			WithDetail("name", name)
	}

	path := filepath.Join(s.root, name)
	info, err := s.fs.Lstat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to find entry %s", name).
			WithDetail("path", path)
	}

	if info.IsDir() {
		err = s.fs.RemoveAll(path)
	} else {
		err = s.fs.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to delete entry %s", name).
			WithDetail("path", path)
	}

	log.Info().Str("path", path).Msg("Deleted from store")
	return nil
}

// Verify rehashes an entry and checks it against the digest in its name.
func (s *Store) Verify(entry Entry) error {
	got, err := hashing.HashPath(s.fs, entry.Path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHashingFailed, "failed to hash entry %s", entry.Name).
			WithDetail("path", entry.Path)
	}
	if got != entry.Digest {
		return errors.Newf(errors.ErrConflict, "entry %s has digest %s", entry.Name, got).
			WithDetails(map[string]interface{}{"path": entry.Path, "digest": got.String()})
	}
	return nil
}

func (s *Store) statSource(source string) error {
	if _, err := s.fs.Lstat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, errors.ErrNotFound, "source %s does not exist", source).
				WithDetail("source", source)
		}
		return errors.Wrapf(err, errors.ErrIO, "failed to stat source %s", source).
			WithDetail("source", source)
	}
	return nil
}

// entryNameFor names the entry source would be stored under. The name is
// checked before the source is looked at, so "" is INVALID_SOURCE_NAME and
// not NOT_FOUND.
func (s *Store) entryNameFor(source string) (string, hashing.Digest, error) {
	basename, err := paths.BaseName(source)
	if err != nil {
		return "", hashing.Digest{}, errors.Wrapf(err, errors.ErrInvalidSourceName, "cannot name store entry for %q", source).
			WithDetail("source", source)
	}

	if err := s.statSource(source); err != nil {
		return "", hashing.Digest{}, err
	}

	if paths.ContainsPath(source, s.root) {
		return "", hashing.Digest{}, errors.Newf(errors.ErrInvalidInput, "source %s contains the store", source).
			WithDetails(map[string]interface{}{"source": source, "path": s.root})
	}

	digest, err := hashing.HashPath(s.fs, source)
	if err != nil {
		return "", hashing.Digest{}, errors.Wrapf(err, errors.ErrHashingFailed, "failed to hash %s", source).
			WithDetail("source", source)
	}

	return EntryName(digest, basename), digest, nil
}

func (s *Store) discard(staging string) {
	if err := s.fs.RemoveAll(staging); err != nil {
		log.Warn().Err(err).Str("path", staging).Msg("Failed to remove staging copy")
	}
}
