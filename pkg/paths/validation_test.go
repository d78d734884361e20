package paths

import (
	"strings"
	"testing"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "empty path", path: "", errContains: "path cannot be empty"},
		{name: "valid path", path: "/home/user/file.txt"},
		{name: "null bytes", path: "/home/user\x00/file.txt", errContains: "null bytes"},
		{name: "too long", path: "/" + strings.Repeat("a", 4097), errContains: "exceeds maximum length"},
		{name: "at max length", path: "/" + strings.Repeat("a", 4095)},
		{name: "relative", path: "relative/path/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "046385855fc9580393853d8e81f240b66fe9a7b8-nyan", false},
		{"dotfile", ".bashrc", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"absolute", "/etc", true},
		{"null", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"file", "/tmp/nyan", "nyan", false},
		{"trailing slash", "/tmp/dir/", "dir", false},
		{"relative", "nyan", "nyan", false},
		{"dot segments", "a/b/../c", "c", false},
		{"empty", "", "", true},
		{"root", "/", "", true},
		{"dot", ".", "", true},
		{"dotdot", "..", "", true},
		{"resolves to dotdot", "a/../..", "", true},
		{"invalid utf8", "/tmp/\xff\xfe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BaseName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContainsPath(t *testing.T) {
	assert.True(t, ContainsPath("/a/b", "/a/b/c"))
	assert.True(t, ContainsPath("/a/b", "/a/b"))
	assert.False(t, ContainsPath("/a/b", "/a/bc"))
	assert.False(t, ContainsPath("/a/b", "/a"))
	assert.True(t, ContainsPath("/a/b", "/a/b/..c"))
}

func TestIsHiddenPath(t *testing.T) {
	assert.True(t, IsHiddenPath("/store/.1234.partial"))
	assert.False(t, IsHiddenPath("/store/abc-nyan"))
}
