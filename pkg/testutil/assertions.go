package testutil

import (
	"io/fs"
	"testing"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/types"
	"github.com/stretchr/testify/assert"
)

// AssertErrorCode checks that err carries code as its outermost code.
func AssertErrorCode(t *testing.T, err error, code errors.ErrorCode) bool {
	t.Helper()
	if !assert.Error(t, err) {
		return false
	}
	return assert.Equal(t, code, errors.GetErrorCode(err), "unexpected error: %v", err)
}

// AssertFileContent checks that path holds content.
func AssertFileContent(t *testing.T, fsys types.FS, path, content string) bool {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if !assert.NoError(t, err, "reading %s", path) {
		return false
	}
	return assert.Equal(t, content, string(data), "content of %s", path)
}

// AssertNotExists checks that nothing exists at path.
func AssertNotExists(t *testing.T, fsys types.FS, path string) bool {
	t.Helper()
	_, err := fsys.Lstat(path)
	return assert.ErrorIs(t, err, fs.ErrNotExist, "%s should not exist", path)
}

// AssertSymlink checks that path is a symlink pointing at dest.
func AssertSymlink(t *testing.T, fsys types.FS, path, dest string) bool {
	t.Helper()
	got, err := fsys.Readlink(path)
	if !assert.NoError(t, err, "reading link %s", path) {
		return false
	}
	return assert.Equal(t, dest, got, "link target of %s", path)
}
