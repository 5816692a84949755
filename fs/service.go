// Package fs provides file-based caching for backend reads.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pmazur/clipview"
)

// Compile-time interface verification.
var _ clipview.ClipService = (*Service)(nil)

// Service wraps a ClipService with best-effort file caching of reads, so a
// previously fetched library stays browsable when the backend is slow or
// unreachable. Mutations pass through and invalidate the cached entries.
type Service struct {
	inner    clipview.ClipService
	cacheDir string
}

// NewService creates a caching service around inner.
func NewService(inner clipview.ClipService, cacheDir string) *Service {
	return &Service{
		inner:    inner,
		cacheDir: cacheDir,
	}
}

// DefaultCacheDir returns the per-user cache directory for clipview.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "clipview")
	}
	return filepath.Join(base, "clipview")
}

// GetVideo returns fresh metadata when the backend answers, falling back to
// the cached copy on failure.
func (s *Service) GetVideo(ctx context.Context, videoID string) (*clipview.Video, error) {
	video, err := s.inner.GetVideo(ctx, videoID)
	if err != nil {
		var cached clipview.Video
		if cacheErr := s.load(cacheKey("video", videoID), &cached); cacheErr == nil {
			return &cached, nil
		}
		return nil, err
	}

	_ = s.save(cacheKey("video", videoID), video)
	return video, nil
}

// ListClips returns fresh clips when the backend answers, falling back to
// the cached copy on failure.
func (s *Service) ListClips(ctx context.Context, videoID string) ([]clipview.Clip, error) {
	clips, err := s.inner.ListClips(ctx, videoID)
	if err != nil {
		var cached []clipview.Clip
		if cacheErr := s.load(cacheKey("clips", videoID), &cached); cacheErr == nil {
			return cached, nil
		}
		return nil, err
	}

	_ = s.save(cacheKey("clips", videoID), clips)
	return clips, nil
}

// UpdateBoundaries passes through and drops the stale clip list caches.
func (s *Service) UpdateBoundaries(ctx context.Context, clipID string, b clipview.Boundaries) error {
	if err := s.inner.UpdateBoundaries(ctx, clipID, b); err != nil {
		return err
	}
	s.invalidateClips()
	return nil
}

// SetFavorited passes through and drops the stale clip list caches.
func (s *Service) SetFavorited(ctx context.Context, clipID string, favorited bool) error {
	if err := s.inner.SetFavorited(ctx, clipID, favorited); err != nil {
		return err
	}
	s.invalidateClips()
	return nil
}

// ExportClip passes through; export results are never cached.
func (s *Service) ExportClip(ctx context.Context, clipID string) (*clipview.Export, error) {
	return s.inner.ExportClip(ctx, clipID)
}

func cacheKey(kind, id string) string {
	sum := sha256.Sum256([]byte(kind + ":" + id))
	return kind + "-" + hex.EncodeToString(sum[:8])
}

func (s *Service) cachePath(key string) string {
	return filepath.Join(s.cacheDir, key+".json")
}

func (s *Service) load(key string, out any) error {
	data, err := os.ReadFile(s.cachePath(key))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *Service) save(key string, v any) error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(s.cachePath(key), data, 0o644)
}

// invalidateClips removes cached clip lists. The clip ID alone doesn't
// identify the owning video, so all list caches are dropped.
func (s *Service) invalidateClips() {
	matches, err := filepath.Glob(filepath.Join(s.cacheDir, "clips-*.json"))
	if err != nil {
		return
	}
	for _, m := range matches {
		_ = os.Remove(m)
	}
}
