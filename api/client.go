// Package api provides the HTTP client for the clipview backend service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pmazur/clipview"
)

// Compile-time interface verification.
var _ clipview.ClipService = (*Client)(nil)

// DefaultRequestTimeout is the default timeout for a single API call.
const DefaultRequestTimeout = 30 * time.Second

// APIError represents an error response from the backend.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend request failed: HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRetryable returns true for server errors (5xx) and throttling (429).
// Other client errors (4xx) are considered permanent.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsRetryable classifies an error for retry purposes: API errors according
// to their status code, context errors as permanent, anything else (network
// failures) as transient.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Client talks to the clipview backend REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	timeout    time.Duration
	retry      clipview.RetryPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryPolicy overrides the retry policy used for mutations.
func WithRetryPolicy(p clipview.RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the backend at baseURL, authenticating
// with the given bearer token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		timeout: DefaultRequestTimeout,
		retry:   clipview.DefaultRetryPolicy(IsRetryable),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetVideo returns the source video metadata.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*clipview.Video, error) {
	var video clipview.Video
	if err := c.do(ctx, http.MethodGet, "/api/videos/"+videoID, nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// ListClips returns all detected clips for a video.
func (c *Client) ListClips(ctx context.Context, videoID string) ([]clipview.Clip, error) {
	var resp struct {
		Clips []clipview.Clip `json:"clips"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/videos/"+videoID+"/clips", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clips, nil
}

// UpdateBoundaries persists trimmed clip boundaries. Transient failures are
// retried with exponential backoff.
func (c *Client) UpdateBoundaries(ctx context.Context, clipID string, b clipview.Boundaries) error {
	return clipview.Do(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPatch, "/api/clips/"+clipID, b, nil)
	}, c.retry)
}

// SetFavorited persists the favorited flag. Transient failures are retried.
func (c *Client) SetFavorited(ctx context.Context, clipID string, favorited bool) error {
	body := struct {
		Favorited bool `json:"favorited"`
	}{Favorited: favorited}
	return clipview.Do(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPut, "/api/clips/"+clipID+"/favorite", body, nil)
	}, c.retry)
}

// ExportClip requests a render of the clip. Transient failures are retried.
func (c *Client) ExportClip(ctx context.Context, clipID string) (*clipview.Export, error) {
	return clipview.WithRetry(ctx, func(ctx context.Context) (*clipview.Export, error) {
		var export clipview.Export
		if err := c.do(ctx, http.MethodPost, "/api/clips/"+clipID+"/export", nil, &export); err != nil {
			return nil, err
		}
		return &export, nil
	}, c.retry)
}

// do performs a single JSON request against the backend. Non-2xx responses
// become *APIError with a truncated body for diagnostics.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Clipview-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies are only diagnostic, so a capped read is enough.
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
