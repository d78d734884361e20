package paths

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/cardinal/pkg/errors"
)

// ValidatePath checks that a path is usable at all: not empty, no null
// bytes and not longer than common filesystem limits.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateName ensures name is a single path component.
// Names must:
// - Not be empty
// - Not contain path separators
// - Not be . or ..
// - Not contain null bytes
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "name %q cannot contain path separators", name)
	}

	if name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "name cannot be %q", name)
	}

	if strings.Contains(name, "\x00") {
		return errors.New(errors.ErrInvalidInput, "name contains null bytes")
	}

	return nil
}

// BaseName returns the last component of path after cleaning it. It fails
// when there is no usable component: empty paths, the root, . and ..
// resolve to nothing, and names that are not valid UTF-8 cannot be
// carried in an entry name.
func BaseName(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	base := filepath.Base(filepath.Clean(path))
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", errors.Newf(errors.ErrInvalidInput, "path %q has no final component", path)
	}

	if !utf8.ValidString(base) {
		return "", errors.Newf(errors.ErrInvalidInput, "name %q is not valid UTF-8", base)
	}

	return base, nil
}

// IsHiddenPath returns true if the basename starts with a dot.
func IsHiddenPath(path string) bool {
	base := filepath.Base(path)
	return len(base) > 0 && base[0] == '.'
}

// ContainsPath reports whether child lies inside parent.
func ContainsPath(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
