package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // sub/ and test.txt

	// Mkdir does not create parents
	err = fs.Mkdir(filepath.Join(tmpDir, "missing", "child"), 0755)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.Rename(testFile, filepath.Join(tmpDir, "moved.txt")))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.Remove(filepath.Join(tmpDir, "moved.txt")))
	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
}

func TestOSSymlinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")

	require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fs.Symlink(target, link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink)

	dest, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)
}

func TestOSOpenFileMissingDir(t *testing.T) {
	fs := NewOS()
	f, err := fs.OpenFile(filepath.Join(t.TempDir(), "nope", "file"), os.O_WRONLY|os.O_CREATE, 0644)
	assert.Error(t, err)
	assert.Nil(t, f)
}
