package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s := newTestStore(t)
	s.CreateDocument("first", jsondoc.ObjectFrom("z", 1, "a", map[string]any{"b": true}))
	second := s.CreateDocument("second", nil)
	s.ToggleExpanded("a")
	s.SetSelectedPath(jsondoc.Path{"a"})

	require.NoError(t, SaveSnapshot(path, s.State()))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)
	require.Len(t, snap.Documents, 2)
	assert.Equal(t, []string{"z", "a"}, jsondoc.Keys(snap.Documents[0].Content))
	assert.Equal(t, second, snap.CurrentDocumentID)
	assert.True(t, snap.Expansion.Has("a"))

	restored := snap.State()
	assert.Nil(t, restored.SelectedPath)
	assert.Equal(t, second, restored.CurrentDocumentID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	snap, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, snap.Documents)
	assert.Equal(t, SnapshotVersion, snap.Version)
}

func TestLoadSnapshotErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{
			name:    "malformed json",
			content: `{"documents": [`,
			code:    errors.ErrCodeSnapshotRead,
		},
		{
			name:    "future version",
			content: `{"version": 99, "documents": []}`,
			code:    errors.ErrCodeSnapshotRead,
		},
		{
			name:    "document without name",
			content: `{"version": 1, "documents": [{"id": "a", "name": "", "content": {}}]}`,
			code:    errors.ErrCodeDocumentInvalid,
		},
		{
			name: "duplicate ids",
			content: `{"version": 1, "documents": [
				{"id": "a", "name": "one", "content": {}},
				{"id": "a", "name": "two", "content": {}}
			]}`,
			code: errors.ErrCodeDocumentInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSnapshot(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestSnapshotStateDropsUnknownCurrent(t *testing.T) {
	snap := Snapshot{
		Version:           SnapshotVersion,
		Documents:         []Document{{ID: "a", Name: "a", Content: jsondoc.NewObject()}},
		CurrentDocumentID: "gone",
	}
	assert.Empty(t, snap.State().CurrentDocumentID)
}

func TestDefaultSnapshotPath(t *testing.T) {
	t.Setenv("GROVE_HOME", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "grove", "prompts", "store.json"), DefaultSnapshotPath())
}
