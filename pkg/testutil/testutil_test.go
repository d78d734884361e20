package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEnvironment(t *testing.T) {
	for _, envType := range AllEnvTypes {
		t.Run(envType.String(), func(t *testing.T) {
			env := NewTestEnvironment(t, envType)

			assert.Equal(t, env.HomeDir, os.Getenv("HOME"))
			assert.Equal(t, filepath.Join(env.DataDir, "store"), env.Paths.StoreDir())
			assert.Equal(t, env.ConfigDir, env.Paths.ConfigDir())

			info, err := env.FS.Stat(env.Root)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

func TestWriteTree(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly)
	env.WithFileTree(FileTree{
		"nyan": "nyan",
		"dir": FileTree{
			"meow":   "meow",
			"script": File{Content: "#!/bin/sh\n", Mode: 0755},
			"empty":  FileTree{},
		},
	})

	AssertFileContent(t, env.FS, env.Path("nyan"), "nyan")
	AssertFileContent(t, env.FS, env.Path("dir", "meow"), "meow")

	info, err := env.FS.Stat(env.Path("dir", "script"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	info, err = env.FS.Stat(env.Path("dir", "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFaultyFS(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly)
	boom := errors.New("boom")
	ffs := NewFaultyFS(env.FS)
	ffs.FailOn(OpRename, env.Path("blocked"), boom)

	WriteFile(t, ffs, env.Path("a"), "a")

	err := ffs.Rename(env.Path("a"), env.Path("blocked", "a"))
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, ffs.Rename(env.Path("a"), env.Path("b")))
	assert.Equal(t, 2, ffs.Calls(OpRename))
	AssertNotExists(t, ffs, env.Path("a"))
}
