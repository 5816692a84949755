package fs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pmazur/clipview"
	"github.com/pmazur/clipview/fs"
	"github.com/pmazur/clipview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GetVideo(t *testing.T) {
	t.Parallel()

	t.Run("caches successful reads", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		calls := 0
		inner := &mock.Service{
			GetVideoFn: func(ctx context.Context, videoID string) (*clipview.Video, error) {
				calls++
				if calls == 1 {
					return &clipview.Video{ID: videoID, Title: "Launch stream", Duration: 3600}, nil
				}
				return nil, errors.New("backend down")
			},
		}

		svc := fs.NewService(inner, dir)

		video, err := svc.GetVideo(context.Background(), "vid-1")
		require.NoError(t, err)
		assert.Equal(t, "Launch stream", video.Title)

		// Backend fails now; the cached copy serves the read.
		video, err = svc.GetVideo(context.Background(), "vid-1")
		require.NoError(t, err)
		assert.Equal(t, "Launch stream", video.Title)
		assert.Equal(t, 2, calls)
	})

	t.Run("propagates errors when nothing is cached", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("backend down")
		inner := &mock.Service{
			GetVideoFn: func(ctx context.Context, videoID string) (*clipview.Video, error) {
				return nil, boom
			},
		}

		svc := fs.NewService(inner, t.TempDir())

		_, err := svc.GetVideo(context.Background(), "vid-1")

		assert.ErrorIs(t, err, boom)
	})
}

func TestService_ListClips(t *testing.T) {
	t.Parallel()

	t.Run("falls back to the cached list", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		calls := 0
		inner := &mock.Service{
			ListClipsFn: func(ctx context.Context, videoID string) ([]clipview.Clip, error) {
				calls++
				if calls == 1 {
					return []clipview.Clip{{ID: "c1", ViralityScore: 88}}, nil
				}
				return nil, errors.New("backend down")
			},
		}

		svc := fs.NewService(inner, dir)

		clips, err := svc.ListClips(context.Background(), "vid-1")
		require.NoError(t, err)
		require.Len(t, clips, 1)

		clips, err = svc.ListClips(context.Background(), "vid-1")
		require.NoError(t, err)
		require.Len(t, clips, 1)
		assert.Equal(t, "c1", clips[0].ID)
	})

	t.Run("mutations invalidate the cached list", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		listCalls := 0
		inner := &mock.Service{
			ListClipsFn: func(ctx context.Context, videoID string) ([]clipview.Clip, error) {
				listCalls++
				if listCalls == 1 {
					return []clipview.Clip{{ID: "c1", Favorited: false}}, nil
				}
				return nil, errors.New("backend down")
			},
			SetFavoritedFn: func(ctx context.Context, clipID string, favorited bool) error {
				return nil
			},
		}

		svc := fs.NewService(inner, dir)

		_, err := svc.ListClips(context.Background(), "vid-1")
		require.NoError(t, err)

		require.NoError(t, svc.SetFavorited(context.Background(), "c1", true))

		// The stale list was dropped, so the failing backend surfaces.
		_, err = svc.ListClips(context.Background(), "vid-1")
		assert.Error(t, err)
	})
}

func TestService_UpdateBoundaries(t *testing.T) {
	t.Parallel()

	t.Run("failed mutations keep the cache intact", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		boom := errors.New("backend down")
		listCalls := 0
		inner := &mock.Service{
			ListClipsFn: func(ctx context.Context, videoID string) ([]clipview.Clip, error) {
				listCalls++
				if listCalls == 1 {
					return []clipview.Clip{{ID: "c1"}}, nil
				}
				return nil, boom
			},
			UpdateBoundariesFn: func(ctx context.Context, clipID string, b clipview.Boundaries) error {
				return boom
			},
		}

		svc := fs.NewService(inner, dir)

		_, err := svc.ListClips(context.Background(), "vid-1")
		require.NoError(t, err)

		err = svc.UpdateBoundaries(context.Background(), "c1", clipview.Boundaries{Start: 1, End: 5})
		require.ErrorIs(t, err, boom)

		clips, err := svc.ListClips(context.Background(), "vid-1")
		require.NoError(t, err)
		assert.Len(t, clips, 1)
	})
}
