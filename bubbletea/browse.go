package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pmazur/clipview"
)

// ScoreHighThreshold is the virality score at or above which a clip's score
// badge gets the highlight style.
const ScoreHighThreshold = 80

// browseChromeHeight is the number of rows around the list viewport:
// title, blank line, blank line, status bar.
const browseChromeHeight = 4

// favoriteResultMsg reports the outcome of persisting a favorite toggle.
type favoriteResultMsg struct {
	clipID   string
	previous bool
	err      error
}

// exportResultMsg reports the outcome of an export request.
type exportResultMsg struct {
	clipID string
	url    string
	err    error
}

// openClipMsg asks the root model to open the trim view for a clip.
type openClipMsg struct {
	clip clipview.Clip
}

// BrowseModel displays a video's clips as a filterable, sortable list.
type BrowseModel struct {
	service   clipview.ClipService
	clipboard clipview.Clipboard
	notifier  clipview.Notifier
	retry     clipview.RetryPolicy

	video    *clipview.Video
	clips    []clipview.Clip
	filtered []clipview.Clip
	spec     clipview.FilterSpec
	cursor   int

	viewport viewport.Model
	keymap   BrowseKeyMap
	styles   clipview.Styles
	palette  clipview.Palette
	renderer *lipgloss.Renderer
	width    int
	ready    bool

	status      string
	statusError bool
}

// BrowseModelOption configures a BrowseModel.
type BrowseModelOption func(*browseModelConfig)

type browseModelConfig struct {
	renderer  *lipgloss.Renderer
	theme     clipview.Theme
	clipboard clipview.Clipboard
	notifier  clipview.Notifier
	retry     *clipview.RetryPolicy
}

// WithBrowseRenderer sets a custom lipgloss renderer for the model.
func WithBrowseRenderer(r *lipgloss.Renderer) BrowseModelOption {
	return func(cfg *browseModelConfig) {
		cfg.renderer = r
	}
}

// WithBrowseTheme sets the theme for the model.
func WithBrowseTheme(t clipview.Theme) BrowseModelOption {
	return func(cfg *browseModelConfig) {
		cfg.theme = t
	}
}

// WithBrowseClipboard sets the clipboard used for copying export URLs.
func WithBrowseClipboard(c clipview.Clipboard) BrowseModelOption {
	return func(cfg *browseModelConfig) {
		cfg.clipboard = c
	}
}

// WithBrowseNotifier sets a notifier that also receives user-visible
// messages, in addition to the status bar.
func WithBrowseNotifier(n clipview.Notifier) BrowseModelOption {
	return func(cfg *browseModelConfig) {
		cfg.notifier = n
	}
}

// WithBrowseRetryPolicy sets the retry policy for persistence calls.
func WithBrowseRetryPolicy(p clipview.RetryPolicy) BrowseModelOption {
	return func(cfg *browseModelConfig) {
		cfg.retry = &p
	}
}

// NewBrowseModel creates a BrowseModel over the given video and clips.
func NewBrowseModel(service clipview.ClipService, video *clipview.Video, clips []clipview.Clip, opts ...BrowseModelOption) BrowseModel {
	cfg := &browseModelConfig{}
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

	m := BrowseModel{
		service:   service,
		clipboard: cfg.clipboard,
		notifier:  cfg.notifier,
		retry:     retry,
		video:     video,
		clips:     clips,
		spec:      clipview.DefaultFilterSpec(),
		keymap:    DefaultBrowseKeyMap(),
		styles:    styles,
		palette:   palette,
		renderer:  cfg.renderer,
	}
	m.applyFilter()
	return m
}

// Selected returns the clip under the cursor, if any.
func (m BrowseModel) Selected() (clipview.Clip, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return clipview.Clip{}, false
	}
	return m.filtered[m.cursor], true
}

// Spec returns the active filter spec.
func (m BrowseModel) Spec() clipview.FilterSpec {
	return m.spec
}

// Counts returns the visible and total clip counts.
func (m BrowseModel) Counts() (visible, total int) {
	return len(m.filtered), len(m.clips)
}

// Init returns the model's initial command.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles a message and returns the updated model.
func (m BrowseModel) Update(msg tea.Msg) (BrowseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		listHeight := msg.Height - browseChromeHeight
		if listHeight < 1 {
			listHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, listHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = listHeight
		}
		m.syncList()
	case favoriteResultMsg:
		if msg.err != nil {
			// The optimistic flip didn't stick; restore the backend's truth.
			m.setFavorited(msg.clipID, msg.previous)
			m.applyFilter()
			m.syncList()
			m.notifyError(fmt.Sprintf("favorite not saved: %v", msg.err))
		}
	case exportResultMsg:
		if msg.err != nil {
			m.notifyError(fmt.Sprintf("export failed: %v", msg.err))
			return m, nil
		}
		m.setStatus("export ready: " + msg.url)
		if m.clipboard != nil {
			if err := m.clipboard.Copy(msg.url); err == nil {
				m.setStatus("export ready, URL copied")
			}
		}
	}
	return m, nil
}

func (m BrowseModel) updateKey(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	m.status = ""
	m.statusError = false

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncList()
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		m.syncList()
	case key.Matches(msg, m.keymap.Open):
		if clip, ok := m.Selected(); ok {
			return m, func() tea.Msg { return openClipMsg{clip: clip} }
		}
	case key.Matches(msg, m.keymap.ToggleFavorite):
		return m.toggleFavorite()
	case key.Matches(msg, m.keymap.FavoritesOnly):
		if m.spec.Favorited == nil {
			on := true
			m.spec.Favorited = &on
		} else {
			m.spec.Favorited = nil
		}
		m.applyFilter()
		m.syncList()
	case key.Matches(msg, m.keymap.CycleSort):
		m.spec.SortBy = nextSortKey(m.spec.SortBy)
		m.applyFilter()
		m.syncList()
	case key.Matches(msg, m.keymap.ToggleOrder):
		if m.spec.SortOrder == clipview.SortDesc {
			m.spec.SortOrder = clipview.SortAsc
		} else {
			m.spec.SortOrder = clipview.SortDesc
		}
		m.applyFilter()
		m.syncList()
	case key.Matches(msg, m.keymap.RaiseMinScore):
		if m.spec.MinScore < 100 {
			m.spec.MinScore += 10
		}
		m.applyFilter()
		m.syncList()
	case key.Matches(msg, m.keymap.LowerMinScore):
		if m.spec.MinScore > 0 {
			m.spec.MinScore -= 10
		}
		m.applyFilter()
		m.syncList()
	case key.Matches(msg, m.keymap.Export):
		return m.exportSelected()
	}
	return m, nil
}

// applyFilter re-evaluates the filtered view and keeps the cursor in range.
func (m *BrowseModel) applyFilter() {
	m.filtered = clipview.Evaluate(m.clips, m.spec.Normalize())
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// syncList refreshes the viewport content and keeps the cursor row visible.
func (m *BrowseModel) syncList() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.listView())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// setFavorited updates the local copy of a clip.
func (m *BrowseModel) setFavorited(clipID string, favorited bool) {
	for i := range m.clips {
		if m.clips[i].ID == clipID {
			m.clips[i].Favorited = favorited
			return
		}
	}
}

func (m *BrowseModel) setStatus(msg string) {
	m.status = msg
	m.statusError = false
}

func (m *BrowseModel) notifyError(msg string) {
	m.status = msg
	m.statusError = true
	if m.notifier != nil {
		m.notifier.Error(msg)
	}
}

// toggleFavorite flips the selected clip's favorite flag locally and persists
// it in the background. The flip is reverted if persistence fails.
func (m BrowseModel) toggleFavorite() (BrowseModel, tea.Cmd) {
	clip, ok := m.Selected()
	if !ok {
		return m, nil
	}

	previous := clip.Favorited
	next := !previous
	m.setFavorited(clip.ID, next)
	m.applyFilter()
	m.syncList()

	service, retry := m.service, m.retry
	return m, func() tea.Msg {
		err := clipview.Do(context.Background(), func(ctx context.Context) error {
			return service.SetFavorited(ctx, clip.ID, next)
		}, retry)
		return favoriteResultMsg{clipID: clip.ID, previous: previous, err: err}
	}
}

// exportSelected requests a render of the selected clip in the background.
func (m BrowseModel) exportSelected() (BrowseModel, tea.Cmd) {
	clip, ok := m.Selected()
	if !ok {
		return m, nil
	}

	m.setStatus("exporting " + clip.ID + "...")

	service, retry := m.service, m.retry
	return m, func() tea.Msg {
		export, err := clipview.WithRetry(context.Background(), func(ctx context.Context) (*clipview.Export, error) {
			return service.ExportClip(ctx, clip.ID)
		}, retry)
		if err != nil {
			return exportResultMsg{clipID: clip.ID, err: err}
		}
		return exportResultMsg{clipID: clip.ID, url: export.URL}
	}
}

// View renders the clip list.
func (m BrowseModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	title := "clips"
	if m.video != nil {
		title = m.video.Title
	}
	b.WriteString(m.styleFor(m.styles.Title).Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusBarView())
	return b.String()
}

// listView renders all visible rows; the viewport handles scrolling.
func (m BrowseModel) listView() string {
	if len(m.filtered) == 0 {
		return m.mutedStyle().Render("no clips match the current filters")
	}

	rows := make([]string, len(m.filtered))
	for i, clip := range m.filtered {
		rows[i] = m.renderRow(clip, i == m.cursor)
	}
	return strings.Join(rows, "\n")
}

func (m BrowseModel) renderRow(clip clipview.Clip, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	star := " "
	if clip.Favorited {
		star = m.styleFor(m.styles.Favorite).Render("★")
	}

	scoreStyle := m.styleFor(m.styles.Score)
	if clip.ViralityScore >= ScoreHighThreshold {
		scoreStyle = m.styleFor(m.styles.ScoreHigh)
	}
	score := scoreStyle.Render(fmt.Sprintf("%3d", clip.ViralityScore))

	row := fmt.Sprintf("%s%s %s  %-40s %6.1fs", cursor, star, score, clip.Title, clip.Duration)
	if selected {
		return m.styleFor(m.styles.Selected).Render(row)
	}
	return row
}

func (m BrowseModel) statusBarView() string {
	barStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.Foreground))
	sepStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.UIForeground))
	accentStyle := m.newStyle().
		Background(lipgloss.Color(m.palette.UIBackground)).
		Foreground(lipgloss.Color(m.palette.Accent))

	sep := sepStyle.Render(" │ ")
	content := barStyle.Render(fmt.Sprintf("%d/%d clips", len(m.filtered), len(m.clips))) + sep +
		barStyle.Render(fmt.Sprintf("sort: %s %s", m.spec.SortBy, m.spec.SortOrder))

	if m.spec.MinScore > 0 || m.spec.MaxScore < 100 {
		content += sep + accentStyle.Render(fmt.Sprintf("score %d-%d", m.spec.MinScore, m.spec.MaxScore))
	}
	if m.spec.Favorited != nil && *m.spec.Favorited {
		content += sep + accentStyle.Render("★ only")
	}

	if m.status != "" {
		statusStyle := barStyle
		if m.statusError {
			statusStyle = m.newStyle().
				Background(lipgloss.Color(m.palette.UIBackground)).
				Foreground(lipgloss.Color(m.styles.StatusError.Foreground))
		}
		content += sep + statusStyle.Render(m.status)
	}

	contentWidth := lipgloss.Width(content)
	if m.width > contentWidth {
		content += barStyle.Render(strings.Repeat(" ", m.width-contentWidth))
	}
	return content
}

// newStyle creates a new lipgloss style using the model's renderer.
func (m BrowseModel) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

func (m BrowseModel) styleFor(pair clipview.ColorPair) lipgloss.Style {
	s := m.newStyle()
	if pair.Foreground != "" {
		s = s.Foreground(lipgloss.Color(pair.Foreground))
	}
	if pair.Background != "" {
		s = s.Background(lipgloss.Color(pair.Background))
	}
	return s
}

func (m BrowseModel) mutedStyle() lipgloss.Style {
	s := m.newStyle()
	if m.palette.Muted != "" {
		s = s.Foreground(lipgloss.Color(m.palette.Muted))
	}
	return s
}

func nextSortKey(key clipview.SortKey) clipview.SortKey {
	switch key {
	case clipview.SortByScore:
		return clipview.SortByDuration
	case clipview.SortByDuration:
		return clipview.SortByCreatedAt
	default:
		return clipview.SortByScore
	}
}
