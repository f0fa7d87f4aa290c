package keymap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "keybind bindings", doc.Title)
	assert.Contains(t, doc.Properties, "bindings")
	assert.Contains(t, string(data), "Key descriptor such as Ctrl-Alt-J")
}
