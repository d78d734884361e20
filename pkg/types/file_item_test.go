package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileItemJSON(t *testing.T) {
	item := NewFileItem("/home/me/.bashrc", "/dots/bashrc")

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/home/me/.bashrc","source":"/dots/bashrc"}`, string(data))
}
