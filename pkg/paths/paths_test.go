package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvDataDir, filepath.Join(tmp, "data"))
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(EnvStateHome, filepath.Join(tmp, "state"))

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "data"), p.DataDir())
	assert.Equal(t, filepath.Join(tmp, "data", "store"), p.StoreDir())
	assert.Equal(t, filepath.Join(tmp, "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "config", "config.toml"), p.SettingsPath())
	assert.Equal(t, filepath.Join(tmp, "state", "cardinal"), p.StateDir())
	assert.Equal(t, filepath.Join(tmp, "state", "cardinal", "cardinal.log"), p.LogFilePath())
}

func TestNewExpandsHomeInOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvDataDir, "~/cardinal-data")
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateHome, "")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "cardinal-data"), p.DataDir())
	assert.Equal(t, filepath.Join(home, ".local", "state", "cardinal"), p.StateDir())
	assert.True(t, filepath.IsAbs(p.ConfigDir()))
	assert.Equal(t, "cardinal", filepath.Base(p.ConfigDir()))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/.bashrc", filepath.Join(home, ".bashrc")},
		{"other user", "~bob/file", "~bob/file"},
		{"absolute", "/etc/hosts", "/etc/hosts"},
		{"relative", "dir/file", "dir/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := NormalizePath("~/a/../b/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "b"), got)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	got, err = NormalizePath("rel")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "rel"), got)

	_, err = NormalizePath("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
