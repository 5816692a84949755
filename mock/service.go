// Package mock provides test doubles for clipview interfaces.
package mock

import (
	"context"

	"github.com/pmazur/clipview"
)

// Compile-time interface verification.
var _ clipview.ClipService = (*Service)(nil)

// Service is a mock implementation of clipview.ClipService.
type Service struct {
	GetVideoFn         func(ctx context.Context, videoID string) (*clipview.Video, error)
	ListClipsFn        func(ctx context.Context, videoID string) ([]clipview.Clip, error)
	UpdateBoundariesFn func(ctx context.Context, clipID string, b clipview.Boundaries) error
	SetFavoritedFn     func(ctx context.Context, clipID string, favorited bool) error
	ExportClipFn       func(ctx context.Context, clipID string) (*clipview.Export, error)
}

func (s *Service) GetVideo(ctx context.Context, videoID string) (*clipview.Video, error) {
	return s.GetVideoFn(ctx, videoID)
}

func (s *Service) ListClips(ctx context.Context, videoID string) ([]clipview.Clip, error) {
	return s.ListClipsFn(ctx, videoID)
}

func (s *Service) UpdateBoundaries(ctx context.Context, clipID string, b clipview.Boundaries) error {
	return s.UpdateBoundariesFn(ctx, clipID, b)
}

func (s *Service) SetFavorited(ctx context.Context, clipID string, favorited bool) error {
	return s.SetFavoritedFn(ctx, clipID, favorited)
}

func (s *Service) ExportClip(ctx context.Context, clipID string) (*clipview.Export, error) {
	return s.ExportClipFn(ctx, clipID)
}
