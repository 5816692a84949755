package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pmazur/clipview"
	"github.com/pmazur/clipview/api"
	"github.com/pmazur/clipview/bubbletea"
	"github.com/pmazur/clipview/clipboard"
	"github.com/pmazur/clipview/fs"
	"github.com/pmazur/clipview/lipgloss"
)

// ErrNoClips is returned when the video has no detected clips to display.
var ErrNoClips = errors.New("no clips to display")

// App encapsulates the application logic for testing.
type App struct {
	Service clipview.ClipService
	Viewer  clipview.Viewer
	VideoID string
}

// Run fetches the video and its clips and displays them.
func (a *App) Run(ctx context.Context) error {
	video, err := a.Service.GetVideo(ctx, a.VideoID)
	if err != nil {
		return fmt.Errorf("loading video: %w", err)
	}

	clips, err := a.Service.ListClips(ctx, a.VideoID)
	if err != nil {
		return fmt.Errorf("loading clips: %w", err)
	}
	if len(clips) == 0 {
		return ErrNoClips
	}

	return a.Viewer.View(ctx, video, clips)
}

func main() {
	videoID := flag.String("video", "", "ID of the video to browse (required)")
	light := flag.Bool("light", false, "Use the light terminal theme")
	flag.Parse()

	if *videoID == "" {
		fmt.Fprintln(os.Stderr, "Usage: clipview -video <video-id>")
		os.Exit(1)
	}

	baseURL := os.Getenv("CLIPVIEW_API_URL")
	if baseURL == "" {
		fmt.Fprintln(os.Stderr, "CLIPVIEW_API_URL must be set")
		os.Exit(1)
	}
	token := os.Getenv("CLIPVIEW_API_TOKEN")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	retry := clipview.DefaultRetryPolicy(api.IsRetryable)
	service := fs.NewService(
		api.NewClient(baseURL, token, api.WithRetryPolicy(retry)),
		fs.DefaultCacheDir(),
	)

	theme := lipgloss.DefaultTheme()
	if *light {
		theme = lipgloss.LightTheme()
	}

	// Collect notifications while the alternate screen is active and
	// replay them on stderr once the UI has exited.
	notifier := &bufferedNotifier{}

	viewerOpts := []bubbletea.ModelOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithNotifier(notifier),
	}
	if cb, err := clipboard.New(); err == nil {
		viewerOpts = append(viewerOpts, bubbletea.WithClipboard(cb))
	}

	app := &App{
		Service: service,
		Viewer:  bubbletea.NewViewer(service, viewerOpts...),
		VideoID: *videoID,
	}

	err := app.Run(ctx)
	notifier.Flush(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bufferedNotifier implements clipview.Notifier by collecting messages for
// replay after the TUI releases the terminal.
type bufferedNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *bufferedNotifier) Info(msg string) {
	n.append(msg)
}

func (n *bufferedNotifier) Error(msg string) {
	n.append("error: " + msg)
}

func (n *bufferedNotifier) append(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

// Flush writes all collected messages to w.
func (n *bufferedNotifier) Flush(w io.Writer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, msg := range n.messages {
		fmt.Fprintln(w, msg)
	}
}
