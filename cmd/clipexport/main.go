package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmazur/clipview"
	"github.com/pmazur/clipview/api"
	"github.com/pmazur/clipview/jsonl"
	"golang.org/x/sync/errgroup"
)

// ErrNoClips is returned when no clips match the export filters.
var ErrNoClips = errors.New("no clips to export")

// ExportRunner exports clips through the backend and writes the resulting
// URLs as JSONL.
type ExportRunner struct {
	Output     io.Writer
	ErrOutput  io.Writer
	Service    clipview.ClipService
	Clips      []clipview.Clip
	MaxRetries int
	// Workers sets the number of parallel workers. If <= 1, runs sequentially.
	Workers int
	// BackoffFn overrides the retry backoff schedule. Used in tests.
	BackoffFn func(attempt int) time.Duration
	// Saver, if set, appends each export to a dataset file as well.
	Saver     clipview.ExportSaver
	SaverPath string
}

type exportResult struct {
	export  *clipview.Export
	skipped bool
	skipMsg string
}

// Run exports all clips and writes results in input order.
func (r *ExportRunner) Run(ctx context.Context) error {
	if r.Workers > 1 {
		return r.runParallel(ctx)
	}
	return r.runSequential(ctx)
}

func (r *ExportRunner) runSequential(ctx context.Context) error {
	encoder := json.NewEncoder(r.Output)

	for _, clip := range r.Clips {
		result := r.exportOne(ctx, clip)
		if err := r.emit(encoder, result); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExportRunner) runParallel(ctx context.Context) error {
	// Collect results indexed by original position
	results := make([]exportResult, len(r.Clips))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for i := range r.Clips {
		clip := r.Clips[i]
		g.Go(func() error {
			results[i] = r.exportOne(ctx, clip)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Write results in order
	encoder := json.NewEncoder(r.Output)
	for _, result := range results {
		if err := r.emit(encoder, result); err != nil {
			return err
		}
	}
	return nil
}

// exportOne requests a render of a single clip, retrying transient failures.
// A clip that keeps failing is skipped so the rest of the batch survives.
func (r *ExportRunner) exportOne(ctx context.Context, clip clipview.Clip) exportResult {
	maxRetries := r.MaxRetries
	if maxRetries == 0 {
		maxRetries = clipview.DefaultMaxRetries
	}

	policy := clipview.RetryPolicy{
		MaxRetries:  maxRetries,
		RetryDelay:  time.Second,
		ShouldRetry: api.IsRetryable,
		BackoffFn:   r.BackoffFn,
	}

	export, err := clipview.WithRetry(ctx, func(ctx context.Context) (*clipview.Export, error) {
		return r.Service.ExportClip(ctx, clip.ID)
	}, policy)
	if err != nil {
		return exportResult{
			skipped: true,
			skipMsg: fmt.Sprintf("warning: skipping clip %s after %d attempts: %v\n", clip.ID, maxRetries, err),
		}
	}
	return exportResult{export: export}
}

func (r *ExportRunner) emit(encoder *json.Encoder, result exportResult) error {
	if result.skipped {
		errOut := r.ErrOutput
		if errOut == nil {
			errOut = os.Stderr
		}
		fmt.Fprint(errOut, result.skipMsg)
		return nil
	}

	if err := encoder.Encode(result.export); err != nil {
		return err
	}
	if r.Saver != nil && r.SaverPath != "" {
		if err := r.Saver.Save(r.SaverPath, *result.export); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	videoID := flag.String("video", "", "ID of the video whose clips to export")
	input := flag.String("input", "", "Read clips from a JSONL snapshot instead of the API")
	workers := flag.Int("workers", 4, "Number of parallel workers (1 = sequential)")
	minScore := flag.Int("min-score", 0, "Keep clips scoring at least this")
	maxScore := flag.Int("max-score", 100, "Keep clips scoring at most this")
	favorited := flag.Bool("favorited", false, "Export only favorited clips")
	sortBy := flag.String("sort", string(clipview.SortByScore), "Sort key: score, duration or created_at")
	order := flag.String("order", string(clipview.SortDesc), "Sort order: asc or desc")
	appendTo := flag.String("append", "", "Also append exports to this JSONL file")
	snapshot := flag.String("snapshot", "", "Save the fetched clip library to this JSONL file for offline runs")
	flag.Parse()

	if *videoID == "" && *input == "" {
		return fmt.Errorf("usage: clipexport -video <video-id> [flags]\n   or: clipexport -input <clips.jsonl> [flags]")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service, err := newService()
	if err != nil {
		return err
	}

	clips, err := loadClips(ctx, service, *videoID, *input)
	if err != nil {
		return err
	}

	if *snapshot != "" {
		if err := jsonl.NewStore().Save(*snapshot, clips); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	spec := clipview.FilterSpec{
		MinScore:  *minScore,
		MaxScore:  *maxScore,
		SortBy:    clipview.SortKey(*sortBy),
		SortOrder: clipview.SortOrder(*order),
	}
	if *favorited {
		on := true
		spec.Favorited = &on
	}

	selected := clipview.Evaluate(clips, spec.Normalize())
	if len(selected) == 0 {
		return ErrNoClips
	}

	runner := &ExportRunner{
		Output:  os.Stdout,
		Service: service,
		Clips:   selected,
		Workers: *workers,
	}
	if *appendTo != "" {
		runner.Saver = jsonl.NewSaver()
		runner.SaverPath = *appendTo
	}

	return runner.Run(ctx)
}

func newService() (clipview.ClipService, error) {
	baseURL := os.Getenv("CLIPVIEW_API_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("CLIPVIEW_API_URL must be set")
	}
	token := os.Getenv("CLIPVIEW_API_TOKEN")
	// The runner owns the retry budget, so the client gets a single attempt.
	return api.NewClient(baseURL, token, api.WithRetryPolicy(clipview.RetryPolicy{MaxRetries: 1})), nil
}

// loadClips reads the clip set from a local snapshot when one is given, and
// from the backend otherwise.
func loadClips(ctx context.Context, service clipview.ClipService, videoID, input string) ([]clipview.Clip, error) {
	if input != "" {
		clips, err := jsonl.NewStore().Load(input)
		if err != nil {
			return nil, fmt.Errorf("loading clips from %s: %w", input, err)
		}
		return clips, nil
	}

	clips, err := service.ListClips(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("loading clips: %w", err)
	}
	return clips, nil
}
