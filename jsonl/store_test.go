package jsonl_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pmazur/clipview"
	"github.com/pmazur/clipview/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns empty for a missing file", func(t *testing.T) {
		t.Parallel()

		store := jsonl.NewStore()

		clips, err := store.Load(filepath.Join(t.TempDir(), "missing.jsonl"))

		require.NoError(t, err)
		assert.Empty(t, clips)
	})

	t.Run("reads one clip per line", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "clips.jsonl")
		content := `{"id":"c1","virality_score":88,"duration":22.5,"favorited":true,"created_at":"2024-06-01T12:00:00Z"}
{"id":"c2","virality_score":41,"duration":9,"favorited":false,"created_at":"2024-06-02T08:30:00Z"}
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store := jsonl.NewStore()
		clips, err := store.Load(path)

		require.NoError(t, err)
		require.Len(t, clips, 2)
		assert.Equal(t, "c1", clips[0].ID)
		assert.Equal(t, 88, clips[0].ViralityScore)
		assert.Equal(t, "c2", clips[1].ID)
	})

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "clips.jsonl")
		content := "\n{\"id\":\"c1\"}\n\n{\"id\":\"c2\"}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store := jsonl.NewStore()
		clips, err := store.Load(path)

		require.NoError(t, err)
		assert.Len(t, clips, 2)
	})

	t.Run("reports the failing line number", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "clips.jsonl")
		content := "{\"id\":\"c1\"}\nnot json\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store := jsonl.NewStore()
		_, err := store.Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "clips.jsonl")
	clips := []clipview.Clip{
		{ID: "c1", ViralityScore: 70, Duration: 15, CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "c2", ViralityScore: 30, Duration: 8, Favorited: true, CreatedAt: time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)},
	}

	store := jsonl.NewStore()
	require.NoError(t, store.Save(path, clips))

	loaded, err := store.Load(path)

	require.NoError(t, err)
	assert.Equal(t, clips, loaded)
}

func TestSaver_Save(t *testing.T) {
	t.Parallel()

	t.Run("appends one record per call", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "exports.jsonl")
		saver := jsonl.NewSaver()

		require.NoError(t, saver.Save(path, clipview.Export{ClipID: "c1", URL: "https://cdn/c1.mp4"}))
		require.NoError(t, saver.Save(path, clipview.Export{ClipID: "c2", URL: "https://cdn/c2.mp4"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"c1"`)
		assert.Contains(t, lines[1], `"c2"`)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "exports.jsonl")
		saver := jsonl.NewSaver()

		require.NoError(t, saver.Save(path, clipview.Export{ClipID: "c1"}))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})
}
