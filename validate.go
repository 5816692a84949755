package clipview

import "fmt"

// Clip duration policy bounds, in seconds. These are global policy values;
// consumers may read them but never redefine them per call.
const (
	MinClipDuration = 1.0
	MaxClipDuration = 600.0
)

// DurationReason identifies why a pair of boundaries is invalid.
type DurationReason string

// Duration validation reasons.
const (
	DurationInverted DurationReason = "inverted"
	DurationTooShort DurationReason = "too_short"
	DurationTooLong  DurationReason = "too_long"
)

// DurationError describes a duration validation failure. It is returned as a
// value, never panicked: a failed validation is an expected, recoverable
// outcome of editing.
type DurationError struct {
	Start  float64
	End    float64
	Reason DurationReason
}

// Error implements the error interface.
func (e *DurationError) Error() string {
	switch e.Reason {
	case DurationInverted:
		return fmt.Sprintf("clip end (%.2fs) must be after start (%.2fs)", e.End, e.Start)
	case DurationTooShort:
		return fmt.Sprintf("clip duration %.2fs is below the minimum of %gs", e.End-e.Start, MinClipDuration)
	case DurationTooLong:
		return fmt.Sprintf("clip duration %.2fs exceeds the maximum of %gs", e.End-e.Start, MaxClipDuration)
	default:
		return fmt.Sprintf("invalid clip boundaries [%.2f, %.2f]", e.Start, e.End)
	}
}

// ValidateDuration checks start/end against the clip duration policy.
// Returns nil when the boundaries are valid. Pure and deterministic.
func ValidateDuration(start, end float64) *DurationError {
	if end <= start {
		return &DurationError{Start: start, End: end, Reason: DurationInverted}
	}
	if end-start < MinClipDuration {
		return &DurationError{Start: start, End: end, Reason: DurationTooShort}
	}
	if end-start > MaxClipDuration {
		return &DurationError{Start: start, End: end, Reason: DurationTooLong}
	}
	return nil
}

// Clamp confines v to [0, max]. In-range values pass through unchanged, so
// Clamp(Clamp(v, max), max) == Clamp(v, max).
func Clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
