package bubbletea

import "github.com/charmbracelet/bubbles/key"

// BrowseKeyMap defines the key bindings for the clip list.
type BrowseKeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Open           key.Binding
	ToggleFavorite key.Binding
	FavoritesOnly  key.Binding
	CycleSort      key.Binding
	ToggleOrder    key.Binding
	RaiseMinScore  key.Binding
	LowerMinScore  key.Binding
	Export         key.Binding
	Quit           key.Binding
}

// DefaultBrowseKeyMap returns the default key bindings for the clip list.
func DefaultBrowseKeyMap() BrowseKeyMap {
	return BrowseKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "trim clip"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle favorite"),
		),
		FavoritesOnly: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites only"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort key"),
		),
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort order"),
		),
		RaiseMinScore: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise min score"),
		),
		LowerMinScore: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "lower min score"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export clip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TimelineKeyMap defines the key bindings for the trim view.
type TimelineKeyMap struct {
	StartLeft     key.Binding
	StartRight    key.Binding
	EndLeft       key.Binding
	EndRight      key.Binding
	PlayheadLeft  key.Binding
	PlayheadRight key.Binding
	Back          key.Binding
	Quit          key.Binding
}

// DefaultTimelineKeyMap returns the default key bindings for the trim view.
func DefaultTimelineKeyMap() TimelineKeyMap {
	return TimelineKeyMap{
		StartLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "start earlier"),
		),
		StartRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "start later"),
		),
		EndLeft: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "end earlier"),
		),
		EndRight: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "end later"),
		),
		PlayheadLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "playhead back"),
		),
		PlayheadRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "playhead forward"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
