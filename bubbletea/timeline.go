package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pmazur/clipview"
)

// NudgeStep is how far a keyboard nudge moves a trim handle, in seconds.
const NudgeStep = 0.5

// playheadStep is how far a keyboard press moves the playhead, in seconds.
const playheadStep = 1.0

// trackRow is the screen row the timeline track renders on, counted from the
// top of the view. Mouse hit testing depends on it.
const trackRow = 2

// grabTolerance is how many cells away from a handle a press still grabs it.
const grabTolerance = 2

// boundariesResultMsg reports the outcome of persisting trimmed boundaries.
type boundariesResultMsg struct {
	clipID   string
	previous clipview.Boundaries
	err      error
}

// backMsg asks the root model to return to the clip list.
type backMsg struct{}

// TimelineModel is the trim view: a proportional track with draggable start
// and end handles and a playhead.
type TimelineModel struct {
	service  clipview.ClipService
	notifier clipview.Notifier
	retry    clipview.RetryPolicy

	clip     clipview.Clip
	timeline *clipview.Timeline

	keymap   TimelineKeyMap
	styles   clipview.Styles
	palette  clipview.Palette
	renderer *lipgloss.Renderer
	width    int
	ready    bool

	status      string
	statusError bool
}

// TimelineModelOption configures a TimelineModel.
type TimelineModelOption func(*timelineModelConfig)

type timelineModelConfig struct {
	renderer *lipgloss.Renderer
	theme    clipview.Theme
	notifier clipview.Notifier
	retry    *clipview.RetryPolicy
}

// WithTimelineRenderer sets a custom lipgloss renderer for the model.
func WithTimelineRenderer(r *lipgloss.Renderer) TimelineModelOption {
	return func(cfg *timelineModelConfig) {
		cfg.renderer = r
	}
}

// WithTimelineTheme sets the theme for the model.
func WithTimelineTheme(t clipview.Theme) TimelineModelOption {
	return func(cfg *timelineModelConfig) {
		cfg.theme = t
	}
}

// WithTimelineNotifier sets a notifier that also receives user-visible
// messages, in addition to the status bar.
func WithTimelineNotifier(n clipview.Notifier) TimelineModelOption {
	return func(cfg *timelineModelConfig) {
		cfg.notifier = n
	}
}

// WithTimelineRetryPolicy sets the retry policy for persistence calls.
func WithTimelineRetryPolicy(p clipview.RetryPolicy) TimelineModelOption {
	return func(cfg *timelineModelConfig) {
		cfg.retry = &p
	}
}

// NewTimelineModel creates a trim view for a clip within its source video.
func NewTimelineModel(service clipview.ClipService, video *clipview.Video, clip clipview.Clip, opts ...TimelineModelOption) TimelineModel {
	cfg := &timelineModelConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var styles clipview.Styles
	var palette clipview.Palette
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
		palette = cfg.theme.Palette()
	}

	// Transport-level retries belong to the ClipService implementation;
	// by default the UI makes a single attempt per user action.
	retry := clipview.RetryPolicy{MaxRetries: 1}
	if cfg.retry != nil {
		retry = *cfg.retry
	}

	duration := clip.Boundaries.End
	if video != nil {
		duration = video.Duration
	}

	return TimelineModel{
		service:  service,
		notifier: cfg.notifier,
		retry:    retry,
		clip:     clip,
		timeline: clipview.NewTimeline(duration, 0, clip.Boundaries),
		keymap:   DefaultTimelineKeyMap(),
		styles:   styles,
		palette:  palette,
		renderer: cfg.renderer,
	}
}

// Timeline exposes the underlying timeline state.
func (m TimelineModel) Timeline() *clipview.Timeline {
	return m.timeline
}

// Init returns the model's initial command.
func (m TimelineModel) Init() tea.Cmd {
	return nil
}

// Update handles a message and returns the updated model.
func (m TimelineModel) Update(msg tea.Msg) (TimelineModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true
		if d := m.timeline.VideoDuration(); d > 0 && m.trackWidth() > 0 {
			m.timeline.SetScale(float64(m.trackWidth()) / d)
		}
	case boundariesResultMsg:
		if msg.err != nil {
			// The backend rejected the trim; fall back to what it last accepted.
			m.timeline.Commit(msg.previous)
			m.notifyError(fmt.Sprintf("trim not saved: %v", msg.err))
		}
	}
	return m, nil
}

func (m TimelineModel) updateKey(msg tea.KeyMsg) (TimelineModel, tea.Cmd) {
	m.status = ""
	m.statusError = false

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back):
		if m.timeline.Mode() != clipview.DragIdle {
			m.timeline.CancelDrag()
			m.status = "drag cancelled"
			return m, nil
		}
		return m, func() tea.Msg { return backMsg{} }
	case key.Matches(msg, m.keymap.StartLeft):
		return m.nudge(-NudgeStep, 0)
	case key.Matches(msg, m.keymap.StartRight):
		return m.nudge(NudgeStep, 0)
	case key.Matches(msg, m.keymap.EndLeft):
		return m.nudge(0, -NudgeStep)
	case key.Matches(msg, m.keymap.EndRight):
		return m.nudge(0, NudgeStep)
	case key.Matches(msg, m.keymap.PlayheadLeft):
		m.timeline.SetPlayhead(m.timeline.Playhead() - playheadStep)
	case key.Matches(msg, m.keymap.PlayheadRight):
		m.timeline.SetPlayhead(m.timeline.Playhead() + playheadStep)
	}
	return m, nil
}

func (m TimelineModel) updateMouse(msg tea.MouseMsg) (TimelineModel, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != trackRow {
			return m, nil
		}
		if handle, ok := m.handleAt(msg.X); ok {
			m.timeline.BeginDrag(handle, float64(msg.X))
		}
	case tea.MouseActionMotion:
		if m.timeline.Mode() != clipview.DragIdle {
			_, _ = m.timeline.UpdateDrag(float64(msg.X))
		}
	case tea.MouseActionRelease:
		return m.finishDrag()
	}
	return m, nil
}

// handleAt returns the handle nearest to a track cell, within grab tolerance.
func (m TimelineModel) handleAt(x int) (clipview.DragHandle, bool) {
	b := m.timeline.Boundaries()
	candidates := []struct {
		handle clipview.DragHandle
		px     int
	}{
		{clipview.HandleStart, m.cellFor(b.Start)},
		{clipview.HandleEnd, m.cellFor(b.End)},
		{clipview.HandlePlayhead, m.cellFor(m.timeline.Playhead())},
	}

	best := clipview.HandleStart
	bestDist := grabTolerance + 1
	found := false
	for _, c := range candidates {
		dist := x - c.px
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist, found = c.handle, dist, true
		}
	}
	return best, found
}

// finishDrag ends the gesture and, for boundary drags, runs the commit path:
// validate, commit, persist. An invalid result leaves the last committed
// boundaries in place.
func (m TimelineModel) finishDrag() (TimelineModel, tea.Cmd) {
	mode := m.timeline.Mode()
	final, err := m.timeline.EndDrag()
	if err != nil || mode == clipview.DragPlayhead || mode == clipview.DragIdle {
		return m, nil
	}
	return m.commitBoundaries(final)
}

// nudge adjusts the handles by keyboard and routes the result through the
// same commit path as a drag.
func (m TimelineModel) nudge(startDelta, endDelta float64) (TimelineModel, tea.Cmd) {
	b := m.timeline.Boundaries()
	d := m.timeline.VideoDuration()

	b.Start = clipview.Clamp(b.Start+startDelta, d)
	b.End = clipview.Clamp(b.End+endDelta, d)
	if limit := b.End - clipview.MinClipDuration; b.Start > limit {
		b.Start = limit
	}
	if limit := b.Start + clipview.MinClipDuration; b.End < limit {
		b.End = limit
	}
	if b.Start < 0 {
		b.Start = 0
	}

	return m.commitBoundaries(b)
}

// commitBoundaries is the single door through which edited boundaries become
// committed: validate, commit locally, persist in the background.
func (m TimelineModel) commitBoundaries(b clipview.Boundaries) (TimelineModel, tea.Cmd) {
	if verr := clipview.ValidateDuration(b.Start, b.End); verr != nil {
		m.notifyError(verr.Error())
		return m, nil
	}

	previous := m.timeline.Boundaries()
	if b == previous {
		return m, nil
	}
	m.timeline.Commit(b)

	service, retry, clipID := m.service, m.retry, m.clip.ID
	return m, func() tea.Msg {
		err := clipview.Do(context.Background(), func(ctx context.Context) error {
			return service.UpdateBoundaries(ctx, clipID, b)
		}, retry)
		return boundariesResultMsg{clipID: clipID, previous: previous, err: err}
	}
}

func (m *TimelineModel) notifyError(msg string) {
	m.status = msg
	m.statusError = true
	if m.notifier != nil {
		m.notifier.Error(msg)
	}
}

// trackWidth returns the number of cells the track occupies.
func (m TimelineModel) trackWidth() int {
	if m.width < 10 {
		return 10
	}
	return m.width
}

// cellFor maps a time position to a track cell.
func (m TimelineModel) cellFor(seconds float64) int {
	d := m.timeline.VideoDuration()
	w := m.trackWidth()
	if d <= 0 {
		return 0
	}
	cell := int(seconds / d * float64(w))
	if cell >= w {
		cell = w - 1
	}
	if cell < 0 {
		cell = 0
	}
	return cell
}

// View renders the trim view.
func (m TimelineModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.styleFor(m.styles.Title).Render(m.clip.Title))
	sb.WriteString("\n\n")
	sb.WriteString(m.trackView())
	sb.WriteString("\n")
	sb.WriteString(m.positionView())
	sb.WriteString("\n\n")
	sb.WriteString(m.statusBarView())
	return sb.String()
}

// trackView renders the proportional track with handles and playhead. While
// a drag is active it shows the live candidate, not the committed state.
func (m TimelineModel) trackView() string {
	w := m.trackWidth()
	b := m.timeline.Preview()
	startCell := m.cellFor(b.Start)
	endCell := m.cellFor(b.End)
	playheadCell := m.cellFor(m.timeline.PreviewPlayhead())

	var sb strings.Builder
	for i := 0; i < w; i++ {
		switch {
		case i == playheadCell && i >= startCell && i <= endCell:
			sb.WriteString(m.styleFor(m.styles.Playhead).Render("┃"))
		case i == startCell:
			sb.WriteString(m.styleFor(m.styles.Handle).Render("▐"))
		case i == endCell:
			sb.WriteString(m.styleFor(m.styles.Handle).Render("▌"))
		case i > startCell && i < endCell:
			sb.WriteString(m.styleFor(m.styles.Track).Render("█"))
		default:
			sb.WriteString(m.styleFor(m.styles.TrackOut).Render("─"))
		}
	}
	return sb.String()
}

func (m TimelineModel) positionView() string {
	b := m.timeline.Preview()
	return fmt.Sprintf("start %.1fs  end %.1fs  len %.1fs  playhead %.1fs",
		b.Start, b.End, b.Duration(), m.timeline.PreviewPlayhead())
}

func (m TimelineModel) statusBarView() string {
	barStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.Foreground))
	dimStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.Muted))

	content := dimStyle.Render("drag handles  [/]:start  {/}:end  h/l:playhead  esc:back  q:quit")
	if m.status != "" {
		statusStyle := barStyle
		if m.statusError {
			statusStyle = m.newStyle().
				Background(lipgloss.Color(m.palette.UIBackground)).
				Foreground(lipgloss.Color(m.styles.StatusError.Foreground))
		}
		content = statusStyle.Render(m.status) + dimStyle.Render("  ") + content
	}

	contentWidth := lipgloss.Width(content)
	if m.width > contentWidth {
		content += barStyle.Render(strings.Repeat(" ", m.width-contentWidth))
	}
	return content
}

// newStyle creates a new lipgloss style using the model's renderer.
func (m TimelineModel) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

func (m TimelineModel) styleFor(pair clipview.ColorPair) lipgloss.Style {
	s := m.newStyle()
	if pair.Foreground != "" {
		s = s.Foreground(lipgloss.Color(pair.Foreground))
	}
	if pair.Background != "" {
		s = s.Background(lipgloss.Color(pair.Background))
	}
	return s
}
