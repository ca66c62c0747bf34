package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
)

func writeDocFile(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadDocument_BareDocument(t *testing.T) {
	path := writeDocFile(t, model.WorkProduct{
		ID:    "doc-1",
		Title: "Test Memo",
	})

	doc, err := loadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "Test Memo", doc.Title)
}

func TestLoadDocument_GenerationResultWrapper(t *testing.T) {
	path := writeDocFile(t, model.GenerationResult{
		Document: &model.WorkProduct{ID: "doc-2", Title: "Wrapped"},
	})

	doc, err := loadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "doc-2", doc.ID)
}

func TestLoadDocument_MissingFile(t *testing.T) {
	_, err := loadDocument(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadDocument_EmptyPath(t *testing.T) {
	_, err := loadDocument("")
	require.Error(t, err)
}

func TestWriteJSON_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(map[string]string{"k": "v"}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "v", got["k"])
}
