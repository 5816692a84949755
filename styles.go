package clipview

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements in the clip viewer.
type Styles struct {
	Title       ColorPair // Clip titles in the list
	Score       ColorPair // Virality score badges
	ScoreHigh   ColorPair // Scores at or above the highlight threshold
	Favorite    ColorPair // Favorite markers
	Track       ColorPair // The timeline track between the handles
	TrackOut    ColorPair // Video regions outside the clip
	Handle      ColorPair // Start/end trim handles
	Playhead    ColorPair // Playhead marker
	Selected    ColorPair // Selected list row
	StatusError ColorPair // Validation and persistence failures
}

// Palette contains semantic UI colors shared across views.
type Palette struct {
	Foreground   string // Default text
	Muted        string // De-emphasized text (counts, hints)
	UIBackground string // Status bar background
	UIForeground string // Status bar separators
	Accent       string // Active filter indicators
}

// Theme provides styles for rendering the clip viewer.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
