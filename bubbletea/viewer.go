// Package bubbletea provides a terminal UI for browsing and trimming clips
// using the Bubble Tea framework.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pmazur/clipview"
)

// viewMode selects which screen the root model shows.
type viewMode int

const (
	viewBrowse viewMode = iota
	viewTimeline
)

// Model is the root Bubble Tea model. It shows the clip list and switches to
// the trim view when a clip is opened.
type Model struct {
	mode     viewMode
	browse   BrowseModel
	timeline TimelineModel

	service clipview.ClipService
	video   *clipview.Video
	opts    modelOptions

	lastSize tea.WindowSizeMsg
}

type modelOptions struct {
	theme     clipview.Theme
	clipboard clipview.Clipboard
	notifier  clipview.Notifier
	retry     *clipview.RetryPolicy
}

// ModelOption configures a Model.
type ModelOption func(*modelOptions)

// WithTheme sets the theme for all views.
func WithTheme(t clipview.Theme) ModelOption {
	return func(o *modelOptions) {
		o.theme = t
	}
}

// WithClipboard sets the clipboard used for copying export URLs.
func WithClipboard(c clipview.Clipboard) ModelOption {
	return func(o *modelOptions) {
		o.clipboard = c
	}
}

// WithNotifier sets a notifier that also receives user-visible messages,
// in addition to the in-view status bars.
func WithNotifier(n clipview.Notifier) ModelOption {
	return func(o *modelOptions) {
		o.notifier = n
	}
}

// WithRetryPolicy sets the retry policy for persistence calls.
func WithRetryPolicy(p clipview.RetryPolicy) ModelOption {
	return func(o *modelOptions) {
		o.retry = &p
	}
}

// NewModel creates the root model for a video and its clips.
func NewModel(service clipview.ClipService, video *clipview.Video, clips []clipview.Clip, opts ...ModelOption) Model {
	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}

	browseOpts := []BrowseModelOption{}
	if o.theme != nil {
		browseOpts = append(browseOpts, WithBrowseTheme(o.theme))
	}
	if o.clipboard != nil {
		browseOpts = append(browseOpts, WithBrowseClipboard(o.clipboard))
	}
	if o.notifier != nil {
		browseOpts = append(browseOpts, WithBrowseNotifier(o.notifier))
	}
	if o.retry != nil {
		browseOpts = append(browseOpts, WithBrowseRetryPolicy(*o.retry))
	}

	return Model{
		browse:  NewBrowseModel(service, video, clips, browseOpts...),
		service: service,
		video:   video,
		opts:    o,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.lastSize = msg
	case openClipMsg:
		timelineOpts := []TimelineModelOption{}
		if m.opts.theme != nil {
			timelineOpts = append(timelineOpts, WithTimelineTheme(m.opts.theme))
		}
		if m.opts.notifier != nil {
			timelineOpts = append(timelineOpts, WithTimelineNotifier(m.opts.notifier))
		}
		if m.opts.retry != nil {
			timelineOpts = append(timelineOpts, WithTimelineRetryPolicy(*m.opts.retry))
		}
		m.timeline = NewTimelineModel(m.service, m.video, msg.clip, timelineOpts...)
		m.mode = viewTimeline

		// Replay the window size so the new view lays itself out.
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(m.lastSize)
		return m, cmd
	case backMsg:
		m.mode = viewBrowse
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case viewTimeline:
		m.timeline, cmd = m.timeline.Update(msg)
	default:
		m.browse, cmd = m.browse.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.mode == viewTimeline {
		return m.timeline.View()
	}
	return m.browse.View()
}

// Viewer implements clipview.Viewer using a Bubble Tea TUI.
type Viewer struct {
	service clipview.ClipService
	opts    []ModelOption
}

// NewViewer creates a new Viewer backed by the given service.
func NewViewer(service clipview.ClipService, opts ...ModelOption) *Viewer {
	return &Viewer{service: service, opts: opts}
}

// View displays the video's clips and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, video *clipview.Video, clips []clipview.Clip) error {
	m := NewModel(v.service, video, clips, v.opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
