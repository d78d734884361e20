package store

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nyanEntry     = "046385855fc9580393853d8e81f240b66fe9a7b8-nyan"
	meowNyanEntry = "75f1b0624087596eaf91b898fc2ea0e57369ed8e-cats"
)

func newStore(t *testing.T, envType testutil.EnvType) (*testutil.TestEnvironment, *Store) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, envType)
	st := New(env.FS, env.Path("store"))
	require.NoError(t, st.Create())
	return env, st
}

func TestCreate(t *testing.T) {
	for _, envType := range testutil.AllEnvTypes {
		t.Run(envType.String(), func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, envType)
			st := New(env.FS, env.Path("store"))
			assert.Equal(t, env.Path("store"), st.Path())

			require.NoError(t, st.Create())
			info, err := env.FS.Stat(st.Path())
			require.NoError(t, err)
			assert.True(t, info.IsDir())

			// second create is a no-op
			require.NoError(t, st.Create())

			list, err := st.List()
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCreateOverFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	testutil.WriteFile(t, env.FS, env.Path("store"), "not a dir")

	err := New(env.FS, env.Path("store")).Create()
	testutil.AssertErrorCode(t, err, errors.ErrIO)
}

func TestCreateMissingParent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	err := New(env.FS, env.Path("missing", "store")).Create()
	testutil.AssertErrorCode(t, err, errors.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAddListDelete(t *testing.T) {
	for _, envType := range testutil.AllEnvTypes {
		t.Run(envType.String(), func(t *testing.T) {
			env, st := newStore(t, envType)
			env.WithFileTree(testutil.FileTree{"nyan": "nyan"})

			path, err := st.Add(env.Path("nyan"))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(st.Path(), nyanEntry), path)
			testutil.AssertFileContent(t, env.FS, path, "nyan")

			// the source is left alone
			testutil.AssertFileContent(t, env.FS, env.Path("nyan"), "nyan")

			list, err := st.List()
			require.NoError(t, err)
			assert.Equal(t, []string{path}, list)

			require.NoError(t, st.Delete(nyanEntry))
			list, err = st.List()
			require.NoError(t, err)
			assert.Empty(t, list)

			err = st.Delete(nyanEntry)
			testutil.AssertErrorCode(t, err, errors.ErrIO)
			assert.ErrorIs(t, err, fs.ErrNotExist)
		})
	}
}

func TestAddDirectory(t *testing.T) {
	for _, envType := range testutil.AllEnvTypes {
		t.Run(envType.String(), func(t *testing.T) {
			env, st := newStore(t, envType)
			env.WithFileTree(testutil.FileTree{
				"cats": testutil.FileTree{"nyan": "nyan", "meow": "meow"},
			})

			path, err := st.Add(env.Path("cats"))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(st.Path(), meowNyanEntry), path)
			testutil.AssertFileContent(t, env.FS, filepath.Join(path, "nyan"), "nyan")
			testutil.AssertFileContent(t, env.FS, filepath.Join(path, "meow"), "meow")

			entries, err := st.Entries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "cats", entries[0].Basename)
			assert.NoError(t, st.Verify(entries[0]))

			require.NoError(t, st.Delete(meowNyanEntry))
			testutil.AssertNotExists(t, env.FS, path)
		})
	}
}

func TestAddPreservesPermissions(t *testing.T) {
	env, st := newStore(t, testutil.EnvIsolated)
	env.WithFileTree(testutil.FileTree{
		"script": testutil.File{Content: "#!/bin/sh\n", Mode: 0755},
	})

	path, err := st.Add(env.Path("script"))
	require.NoError(t, err)

	info, err := env.FS.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestAddConflict(t *testing.T) {
	env, st := newStore(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"nyan":  "nyan",
		"other": testutil.FileTree{"nyan": "nyan"},
	})

	first, err := st.Add(env.Path("nyan"))
	require.NoError(t, err)

	_, err = st.Add(env.Path("other", "nyan"))
	testutil.AssertErrorCode(t, err, errors.ErrConflict)
	assert.Equal(t, first, errors.GetErrorDetails(err)["path"])

	list, err := st.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddSameContentDifferentNames(t *testing.T) {
	env, st := newStore(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"a": "same", "b": "same"})

	a, err := st.Add(env.Path("a"))
	require.NoError(t, err)
	b, err := st.Add(env.Path("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, filepath.Base(a)[:40], filepath.Base(b)[:40])
}

func TestAddMissingSource(t *testing.T) {
	env, st := newStore(t, testutil.EnvMemoryOnly)

	_, err := st.Add(env.Path("missing"))
	testutil.AssertErrorCode(t, err, errors.ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	list, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddInvalidSourceName(t *testing.T) {
	_, st := newStore(t, testutil.EnvIsolated)

	for _, source := range []string{"", "/", "."} {
		_, err := st.Add(source)
		testutil.AssertErrorCode(t, err, errors.ErrInvalidSourceName)

		_, err = st.PathFor(source)
		testutil.AssertErrorCode(t, err, errors.ErrInvalidSourceName)
	}
}

func TestAddSourceContainingStore(t *testing.T) {
	for _, envType := range testutil.AllEnvTypes {
		t.Run(envType.String(), func(t *testing.T) {
			env, st := newStore(t, envType)
			env.WithFileTree(testutil.FileTree{"nyan": "nyan"})

			for _, source := range []string{env.Root, st.Path()} {
				_, err := st.Add(source)
				testutil.AssertErrorCode(t, err, errors.ErrInvalidInput)

				_, err = st.PathFor(source)
				testutil.AssertErrorCode(t, err, errors.ErrInvalidInput)
			}

			list, err := st.List()
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestAddSymlinkSource(t *testing.T) {
	env, st := newStore(t, testutil.EnvIsolated)
	env.WithFileTree(testutil.FileTree{
		"nyan": "nyan",
		"dir":  testutil.FileTree{"nyan": "nyan"},
	})
	require.NoError(t, os.Symlink(env.Path("nyan"), env.Path("link")))
	require.NoError(t, os.Symlink(env.Path("nyan"), env.Path("dir", "link")))

	for _, source := range []string{env.Path("link"), env.Path("dir")} {
		_, err := st.Add(source)
		testutil.AssertErrorCode(t, err, errors.ErrHashingFailed)
		assert.True(t, errors.HasErrorCode(err, errors.ErrUnsupportedEntryType))
	}

	list, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddCopyFailureLeavesNoEntry(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"cats": testutil.FileTree{"nyan": "nyan", "meow": "meow"},
	})

	ffs := testutil.NewFaultyFS(env.FS)
	st := New(ffs, env.Path("store"))
	require.NoError(t, st.Create())

	boom := stderrors.New("disk full")
	ffs.FailOn(testutil.OpOpenFile, filepath.Join(st.Path(), "."), boom)

	_, err := st.Add(env.Path("cats"))
	testutil.AssertErrorCode(t, err, errors.ErrCopyFailed)
	assert.ErrorIs(t, err, boom)

	list, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, list, "staging copy should be removed")
}

func TestAddRenameFailureLeavesNoEntry(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"nyan": "nyan"})

	ffs := testutil.NewFaultyFS(env.FS)
	st := New(ffs, env.Path("store"))
	require.NoError(t, st.Create())

	ffs.FailOn(testutil.OpRename, filepath.Join(st.Path(), nyanEntry), fs.ErrPermission)

	_, err := st.Add(env.Path("nyan"))
	testutil.AssertErrorCode(t, err, errors.ErrCopyFailed)

	list, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPathFor(t *testing.T) {
	env, st := newStore(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"nyan": "nyan"})

	path, err := st.PathFor(env.Path("nyan"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.Path(), nyanEntry), path)

	list, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, list, "PathFor must not copy")

	_, err = st.PathFor(env.Path("missing"))
	testutil.AssertErrorCode(t, err, errors.ErrNotFound)
}

func TestDeleteInvalidNames(t *testing.T) {
	_, st := newStore(t, testutil.EnvMemoryOnly)

	for _, name := range []string{"", ".", "..", "a/b", "../escape", "/abs"} {
		err := st.Delete(name)
		testutil.AssertErrorCode(t, err, errors.ErrInvalidInput)
	}
}

func TestDeleteUnknown(t *testing.T) {
	_, st := newStore(t, testutil.EnvMemoryOnly)

	err := st.Delete("0000000000000000000000000000000000000000-unknown")
	testutil.AssertErrorCode(t, err, errors.ErrIO)
}

func TestHas(t *testing.T) {
	env, st := newStore(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"nyan": "nyan"})
	_, err := st.Add(env.Path("nyan"))
	require.NoError(t, err)

	ok, err := st.Has(nyanEntry)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Has("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = st.Has("../nyan")
	testutil.AssertErrorCode(t, err, errors.ErrInvalidInput)
}

func TestListUnreadableStore(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := New(env.FS, env.Path("nope")).List()
	testutil.AssertErrorCode(t, err, errors.ErrIO)
}

func TestListSortedAndEntriesSkipForeign(t *testing.T) {
	env, st := newStore(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"nyan": "nyan", "meow": "meow"})

	_, err := st.Add(env.Path("nyan"))
	require.NoError(t, err)
	_, err = st.Add(env.Path("meow"))
	require.NoError(t, err)
	testutil.WriteFile(t, env.FS, filepath.Join(st.Path(), ".leftover.partial"), "x")
	testutil.WriteFile(t, env.FS, filepath.Join(st.Path(), "README"), "x")

	list, err := st.List()
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		assert.True(t, strings.Compare(list[i-1], list[i]) < 0, "list must be sorted")
	}

	entries, err := st.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "046385855fc9580393853d8e81f240b66fe9a7b8-nyan", entries[0].Name)
	assert.Equal(t, "7d5c2a2d6136fbf166211d5183bf66214a247f31-meow", entries[1].Name)
}

func TestVerifyDetectsTampering(t *testing.T) {
	env, st := newStore(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"nyan": "nyan"})

	path, err := st.Add(env.Path("nyan"))
	require.NoError(t, err)
	require.NoError(t, env.FS.WriteFile(path, []byte("meow"), 0644))

	entries, err := st.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	err = st.Verify(entries[0])
	testutil.AssertErrorCode(t, err, errors.ErrConflict)
}
