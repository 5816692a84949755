package mock

import (
	"context"

	"github.com/pmazur/clipview"
)

// Compile-time interface verification.
var _ clipview.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of clipview.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, video *clipview.Video, clips []clipview.Clip) error
}

func (v *Viewer) View(ctx context.Context, video *clipview.Video, clips []clipview.Clip) error {
	return v.ViewFn(ctx, video, clips)
}
