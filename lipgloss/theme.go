// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import "github.com/pmazur/clipview"

// Compile-time interface verification.
var _ clipview.Theme = (*Theme)(nil)

// Theme implements clipview.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  clipview.Styles
	palette clipview.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() clipview.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() clipview.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: clipview.Styles{
			Title: clipview.ColorPair{
				Foreground: "#cdd6f4", // Near-white
			},
			Score: clipview.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
			ScoreHigh: clipview.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#a6e3a1", // Bright green
			},
			Favorite: clipview.ColorPair{
				Foreground: "#f9e2af", // Yellow
			},
			Track: clipview.ColorPair{
				Foreground: "#a6e3a1", // Green, the kept region
			},
			TrackOut: clipview.ColorPair{
				Foreground: "#45475a", // Muted gray, trimmed away
			},
			Handle: clipview.ColorPair{
				Foreground: "#fab387", // Orange
			},
			Playhead: clipview.ColorPair{
				Foreground: "#f38ba8", // Red
			},
			Selected: clipview.ColorPair{
				Foreground: "#cdd6f4",
				Background: "#313244", // Dark surface
			},
			StatusError: clipview.ColorPair{
				Foreground: "#f38ba8", // Red
			},
		},
		palette: clipview.Palette{
			// Catppuccin Mocha
			Foreground:   "#cdd6f4",
			Muted:        "#6c7086",
			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			Accent:       "#89b4fa",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: clipview.Styles{
			Title: clipview.ColorPair{
				Foreground: "#4c4f69", // Near-black
			},
			Score: clipview.ColorPair{
				Foreground: "#1e66f5", // Blue
			},
			ScoreHigh: clipview.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#40a02b", // Bright green
			},
			Favorite: clipview.ColorPair{
				Foreground: "#df8e1d", // Yellow
			},
			Track: clipview.ColorPair{
				Foreground: "#40a02b", // Green, the kept region
			},
			TrackOut: clipview.ColorPair{
				Foreground: "#bcc0cc", // Muted gray, trimmed away
			},
			Handle: clipview.ColorPair{
				Foreground: "#fe640b", // Orange
			},
			Playhead: clipview.ColorPair{
				Foreground: "#d20f39", // Red
			},
			Selected: clipview.ColorPair{
				Foreground: "#4c4f69",
				Background: "#e6e9ef", // Light surface
			},
			StatusError: clipview.ColorPair{
				Foreground: "#d20f39", // Red
			},
		},
		palette: clipview.Palette{
			// Catppuccin Latte
			Foreground:   "#4c4f69",
			Muted:        "#9ca0b0",
			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			Accent:       "#1e66f5",
		},
	}
}
