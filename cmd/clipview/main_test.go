package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pmazur/clipview"
	"github.com/pmazur/clipview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes the video and clips to the viewer", func(t *testing.T) {
		t.Parallel()

		video := &clipview.Video{ID: "vid-1", Title: "Launch stream", Duration: 3600}
		clips := []clipview.Clip{{ID: "c1", VideoID: "vid-1"}}

		service := &mock.Service{
			GetVideoFn: func(ctx context.Context, videoID string) (*clipview.Video, error) {
				assert.Equal(t, "vid-1", videoID)
				return video, nil
			},
			ListClipsFn: func(ctx context.Context, videoID string) ([]clipview.Clip, error) {
				return clips, nil
			},
		}

		var viewed []clipview.Clip
		viewer := &mock.Viewer{
			ViewFn: func(ctx context.Context, v *clipview.Video, cs []clipview.Clip) error {
				assert.Equal(t, video, v)
				viewed = cs
				return nil
			},
		}

		app := &App{Service: service, Viewer: viewer, VideoID: "vid-1"}

		err := app.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, clips, viewed)
	})

	t.Run("fails when the video has no clips", func(t *testing.T) {
		t.Parallel()

		service := &mock.Service{
			GetVideoFn: func(ctx context.Context, videoID string) (*clipview.Video, error) {
				return &clipview.Video{ID: videoID}, nil
			},
			ListClipsFn: func(ctx context.Context, videoID string) ([]clipview.Clip, error) {
				return nil, nil
			},
		}

		app := &App{Service: service, Viewer: &mock.Viewer{}, VideoID: "vid-1"}

		err := app.Run(context.Background())

		assert.ErrorIs(t, err, ErrNoClips)
	})

	t.Run("replays buffered notifications in order", func(t *testing.T) {
		t.Parallel()

		n := &bufferedNotifier{}
		n.Info("export ready")
		n.Error("trim not saved: backend down")

		var out strings.Builder
		n.Flush(&out)

		assert.Equal(t, "export ready\nerror: trim not saved: backend down\n", out.String())
	})

	t.Run("wraps video load failures", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("backend down")
		service := &mock.Service{
			GetVideoFn: func(ctx context.Context, videoID string) (*clipview.Video, error) {
				return nil, boom
			},
		}

		app := &App{Service: service, Viewer: &mock.Viewer{}, VideoID: "vid-1"}

		err := app.Run(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "loading video")
	})
}
