package clipview

import "errors"

// ErrNotDragging is returned when drag updates arrive while no drag is
// active. Out-of-sequence calls are caller bugs and surface immediately
// rather than corrupting state.
var ErrNotDragging = errors.New("timeline: no drag in progress")

// DragHandle identifies which timeline element a drag gesture targets.
type DragHandle int

// Drag handles.
const (
	HandleStart DragHandle = iota
	HandleEnd
	HandlePlayhead
)

// DragMode is the timeline's interaction state.
type DragMode int

// Drag modes. A gesture moves idle -> dragging -> idle; no other
// transitions exist.
const (
	DragIdle DragMode = iota
	DragStart
	DragEnd
	DragPlayhead
)

// Timeline owns a clip's committed boundaries and playhead, and translates
// pointer-driven drag gestures into validated boundary candidates.
//
// During a drag the Timeline produces clamped live candidates so the gesture
// never leaves the video or inverts start/end; the duration policy is
// enforced only at commit time via ValidateDuration, by the caller. This
// keeps drag math continuous and validation centralized.
//
// A Timeline is driven synchronously from a single event loop and is not
// safe for concurrent use.
type Timeline struct {
	videoDuration float64
	pxPerSecond   float64

	boundaries Boundaries // committed
	playhead   float64    // committed, within [Start, End]

	// Transient drag state, valid only while mode != DragIdle.
	mode            DragMode
	anchor          Boundaries
	anchorPlayhead  float64
	originPx        float64
	current         Boundaries
	currentPlayhead float64
}

// NewTimeline creates a Timeline for a video of the given duration.
// pxPerSecond is the rendering scale used to convert pointer deltas to time.
func NewTimeline(videoDuration, pxPerSecond float64, b Boundaries) *Timeline {
	t := &Timeline{
		videoDuration: videoDuration,
		pxPerSecond:   pxPerSecond,
		boundaries:    b,
	}
	t.playhead = Clamp(b.Start, videoDuration)
	return t
}

// Mode returns the current interaction state.
func (t *Timeline) Mode() DragMode {
	return t.mode
}

// Boundaries returns the committed boundaries.
func (t *Timeline) Boundaries() Boundaries {
	return t.boundaries
}

// Playhead returns the committed playhead position.
func (t *Timeline) Playhead() float64 {
	return t.playhead
}

// VideoDuration returns the enclosing video's duration in seconds.
func (t *Timeline) VideoDuration() float64 {
	return t.videoDuration
}

// SetScale updates the pixels-per-second conversion factor, e.g. after a
// window resize. Changing scale mid-drag rebases the gesture cleanly because
// deltas are always computed from the recorded origin.
func (t *Timeline) SetScale(pxPerSecond float64) {
	t.pxPerSecond = pxPerSecond
}

// Preview returns the live candidate boundaries while a boundary drag is in
// progress, and the committed boundaries otherwise.
func (t *Timeline) Preview() Boundaries {
	if t.mode == DragStart || t.mode == DragEnd {
		return t.current
	}
	return t.boundaries
}

// PreviewPlayhead returns the live playhead while a playhead drag is in
// progress, and the committed playhead otherwise.
func (t *Timeline) PreviewPlayhead() float64 {
	if t.mode == DragPlayhead {
		return t.currentPlayhead
	}
	return t.playhead
}

// BeginDrag starts a drag gesture on the given handle, snapshotting the
// committed state as the gesture's anchor. Calling BeginDrag while a drag is
// already active is a no-op; duplicate pointer-down events from overlapping
// input devices must not restart the gesture.
func (t *Timeline) BeginDrag(handle DragHandle, pointerPx float64) {
	if t.mode != DragIdle {
		return
	}

	t.anchor = t.boundaries
	t.anchorPlayhead = t.playhead
	t.originPx = pointerPx
	t.current = t.boundaries
	t.currentPlayhead = t.playhead

	switch handle {
	case HandleStart:
		t.mode = DragStart
	case HandleEnd:
		t.mode = DragEnd
	case HandlePlayhead:
		t.mode = DragPlayhead
	}
}

// UpdateDrag converts the pointer position to a time delta from the gesture
// origin and produces a clamped, uncommitted candidate. The anchor is never
// modified. Returns ErrNotDragging when no drag is active.
func (t *Timeline) UpdateDrag(pointerPx float64) (Boundaries, error) {
	if t.mode == DragIdle {
		return t.boundaries, ErrNotDragging
	}

	delta := 0.0
	if t.pxPerSecond > 0 {
		delta = (pointerPx - t.originPx) / t.pxPerSecond
	}

	switch t.mode {
	case DragStart:
		candidate := Clamp(t.anchor.Start+delta, t.videoDuration)
		// Start can never cross within MinClipDuration of the end.
		if limit := t.current.End - MinClipDuration; candidate > limit {
			candidate = limit
		}
		if candidate < 0 {
			candidate = 0
		}
		t.current.Start = candidate
	case DragEnd:
		candidate := Clamp(t.anchor.End+delta, t.videoDuration)
		if limit := t.current.Start + MinClipDuration; candidate < limit {
			candidate = limit
		}
		if candidate > t.videoDuration {
			candidate = t.videoDuration
		}
		t.current.End = candidate
	case DragPlayhead:
		// Playhead motion is confined to the active clip, not the video.
		candidate := t.anchorPlayhead + delta
		if candidate < t.current.Start {
			candidate = t.current.Start
		}
		if candidate > t.current.End {
			candidate = t.current.End
		}
		t.currentPlayhead = candidate
	}

	return t.current, nil
}

// EndDrag finishes the gesture and returns the final candidate boundaries
// (the anchor, if no UpdateDrag occurred). Boundary drags are NOT committed
// here: the caller validates the result with ValidateDuration and calls
// Commit on success, or simply discards it, leaving the anchor committed.
// Playhead drags commit immediately since no duration policy applies.
func (t *Timeline) EndDrag() (Boundaries, error) {
	if t.mode == DragIdle {
		return t.boundaries, ErrNotDragging
	}

	if t.mode == DragPlayhead {
		t.playhead = t.currentPlayhead
	}
	final := t.current
	t.mode = DragIdle
	return final, nil
}

// CancelDrag aborts any in-progress gesture, discarding all uncommitted
// changes. Safe to call from any state; returns the committed boundaries.
func (t *Timeline) CancelDrag() Boundaries {
	t.mode = DragIdle
	return t.boundaries
}

// Commit accepts validated boundaries as the new committed state and keeps
// the playhead inside them. Callers must run ValidateDuration first;
// Commit is the single point where edited boundaries become authoritative.
func (t *Timeline) Commit(b Boundaries) {
	t.boundaries = b
	if t.playhead < b.Start {
		t.playhead = b.Start
	}
	if t.playhead > b.End {
		t.playhead = b.End
	}
}

// SetPlayhead moves the committed playhead, clamped to the clip boundaries.
func (t *Timeline) SetPlayhead(v float64) {
	if v < t.boundaries.Start {
		v = t.boundaries.Start
	}
	if v > t.boundaries.End {
		v = t.boundaries.End
	}
	t.playhead = v
}
