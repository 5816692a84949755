// Package clipview provides domain types for browsing and trimming viral clips.
package clipview

import (
	"context"
	"time"
)

// Clip is a detected sub-segment of a source video, as reported by the
// backend. Clip records are owned by the backend; this package only filters,
// sorts and projects them for display.
type Clip struct {
	ID            string     `json:"id"`
	VideoID       string     `json:"video_id"`
	Title         string     `json:"title"`
	ViralityScore int        `json:"virality_score"` // 0-100
	Duration      float64    `json:"duration"`       // Seconds
	Favorited     bool       `json:"favorited"`
	CreatedAt     time.Time  `json:"created_at"`
	Boundaries    Boundaries `json:"boundaries"`
}

// Boundaries is a clip's start/end position within its source video.
type Boundaries struct {
	Start float64 `json:"start"` // Seconds from the beginning of the video
	End   float64 `json:"end"`   // Seconds, always > Start for a valid clip
}

// Duration returns the clip length in seconds.
func (b Boundaries) Duration() float64 {
	return b.End - b.Start
}

// Video is the source video a clip belongs to.
type Video struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"` // Seconds
}

// Export is the backend's response to an export request.
type Export struct {
	ClipID string `json:"clip_id"`
	URL    string `json:"url"` // Download URL for the rendered clip
}

// ClipService is the remote backend boundary. Reads return backend-owned
// records; mutations are persisted remotely and may fail transiently.
type ClipService interface {
	// GetVideo returns the source video metadata.
	GetVideo(ctx context.Context, videoID string) (*Video, error)
	// ListClips returns all detected clips for a video.
	ListClips(ctx context.Context, videoID string) ([]Clip, error)
	// UpdateBoundaries persists trimmed clip boundaries.
	UpdateBoundaries(ctx context.Context, clipID string, b Boundaries) error
	// SetFavorited persists the favorited flag.
	SetFavorited(ctx context.Context, clipID string, favorited bool) error
	// ExportClip requests a render of the clip and returns the result.
	ExportClip(ctx context.Context, clipID string) (*Export, error)
}

// Viewer displays a video's clips and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, video *Video, clips []Clip) error
}

// Notifier is an injectable capability for user-visible messages.
// The core never renders messages itself; presentation belongs to callers.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Clipboard abstracts system clipboard access.
type Clipboard interface {
	Copy(content string) error
}

// ClipStore persists and retrieves clip library snapshots.
type ClipStore interface {
	Load(path string) ([]Clip, error)
	Save(path string, clips []Clip) error
}

// ExportSaver appends export results to a dataset file.
type ExportSaver interface {
	Save(path string, export Export) error
}
