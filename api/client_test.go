package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pmazur/clipview"
	"github.com/pmazur/clipview/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetry retries everything with no backoff, for tests.
func fastRetry() clipview.RetryPolicy {
	return clipview.RetryPolicy{
		MaxRetries:  3,
		ShouldRetry: api.IsRetryable,
		BackoffFn:   func(int) time.Duration { return 0 },
	}
}

func TestClient_GetVideo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/videos/vid-1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Clipview-Request-Id"))

		json.NewEncoder(w).Encode(clipview.Video{ID: "vid-1", Title: "Launch stream", Duration: 3600})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "test-token")

	video, err := client.GetVideo(context.Background(), "vid-1")

	require.NoError(t, err)
	assert.Equal(t, "Launch stream", video.Title)
	assert.Equal(t, 3600.0, video.Duration)
}

func TestClient_ListClips(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/videos/vid-1/clips", r.URL.Path)

		w.Write([]byte(`{"clips":[
			{"id":"c1","virality_score":88,"duration":22.5,"favorited":true,"created_at":"2024-06-01T12:00:00Z"},
			{"id":"c2","virality_score":41,"duration":9.0,"favorited":false,"created_at":"2024-06-02T08:30:00Z"}
		]}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "test-token")

	clips, err := client.ListClips(context.Background(), "vid-1")

	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, "c1", clips[0].ID)
	assert.Equal(t, 88, clips[0].ViralityScore)
	assert.True(t, clips[0].Favorited)
	assert.Equal(t, 2024, clips[1].CreatedAt.Year())
}

func TestClient_ListClips_LargeResponse(t *testing.T) {
	t.Parallel()

	// A library of 60 clips serializes to well over 4 KB.
	clips := make([]clipview.Clip, 60)
	for i := range clips {
		clips[i] = clipview.Clip{
			ID:            fmt.Sprintf("clip-%03d", i),
			VideoID:       "vid-1",
			Title:         fmt.Sprintf("Moment %03d from the launch stream keynote", i),
			ViralityScore: i % 100,
			Duration:      float64(i) + 0.5,
			CreatedAt:     time.Date(2024, 6, 1, 12, 0, i, 0, time.UTC),
		}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(struct {
			Clips []clipview.Clip `json:"clips"`
		}{Clips: clips})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "test-token")

	got, err := client.ListClips(context.Background(), "vid-1")

	require.NoError(t, err)
	require.Len(t, got, 60)
	assert.Equal(t, "clip-000", got[0].ID)
	assert.Equal(t, "clip-059", got[59].ID)
}

func TestClient_UpdateBoundaries(t *testing.T) {
	t.Parallel()

	t.Run("sends the boundaries as JSON", func(t *testing.T) {
		t.Parallel()

		var received clipview.Boundaries
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/clips/c1", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := api.NewClient(server.URL, "test-token")

		err := client.UpdateBoundaries(context.Background(), "c1", clipview.Boundaries{Start: 12.5, End: 40})

		require.NoError(t, err)
		assert.Equal(t, clipview.Boundaries{Start: 12.5, End: 40}, received)
	})

	t.Run("retries server errors until success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := api.NewClient(server.URL, "test-token", api.WithRetryPolicy(fastRetry()))

		err := client.UpdateBoundaries(context.Background(), "c1", clipview.Boundaries{Start: 1, End: 5})

		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"duration out of bounds"}`))
		}))
		defer server.Close()

		client := api.NewClient(server.URL, "test-token", api.WithRetryPolicy(fastRetry()))

		err := client.UpdateBoundaries(context.Background(), "c1", clipview.Boundaries{Start: 1, End: 5})

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())

		var apiErr *api.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "duration out of bounds")
	})
}

func TestClient_SetFavorited(t *testing.T) {
	t.Parallel()

	var received struct {
		Favorited bool `json:"favorited"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/clips/c1/favorite", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "test-token")

	err := client.SetFavorited(context.Background(), "c1", true)

	require.NoError(t, err)
	assert.True(t, received.Favorited)
}

func TestClient_ExportClip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/clips/c1/export", r.URL.Path)
		json.NewEncoder(w).Encode(clipview.Export{ClipID: "c1", URL: "https://cdn.example.com/c1.mp4"})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "test-token")

	export, err := client.ExportClip(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "c1", export.ClipID)
	assert.Equal(t, "https://cdn.example.com/c1.mp4", export.URL)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "test-token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetVideo(ctx, "vid-1")

	require.Error(t, err)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	t.Run("server errors are retryable", func(t *testing.T) {
		t.Parallel()
		assert.True(t, api.IsRetryable(&api.APIError{StatusCode: http.StatusInternalServerError}))
	})

	t.Run("throttling is retryable", func(t *testing.T) {
		t.Parallel()
		assert.True(t, api.IsRetryable(&api.APIError{StatusCode: http.StatusTooManyRequests}))
	})

	t.Run("client errors are permanent", func(t *testing.T) {
		t.Parallel()
		assert.False(t, api.IsRetryable(&api.APIError{StatusCode: http.StatusBadRequest}))
	})

	t.Run("context cancellation is permanent", func(t *testing.T) {
		t.Parallel()
		assert.False(t, api.IsRetryable(context.Canceled))
	})

	t.Run("network errors are transient", func(t *testing.T) {
		t.Parallel()
		assert.True(t, api.IsRetryable(errors.New("connection refused")))
	})
}
