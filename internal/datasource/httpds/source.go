// Package httpds fetches pipeline input over HTTP. A Source wraps one GET
// with exponential backoff on transient failures, so a flaky dataset mirror
// does not abort a batch run. Backoff waits respect context cancellation.
package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config tunes the fetch. Zero values get defaults: 30s timeout, 3 retries,
// 200ms initial backoff doubling up to 5s.
type Config struct {
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source is a datasource that GETs a URL.
type Source struct {
	url            string
	client         *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// New builds a Source for url, applying defaults for zero Config fields.
func New(url string, cfg Config) *Source {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return &Source{
		url:            url,
		client:         &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
}

// IsURL reports whether path names an HTTP or HTTPS resource rather than a
// local file.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Open fetches the URL and returns the response body. Transport errors and
// retryable statuses (429, 5xx) are retried with backoff; any other non-2xx
// status fails immediately. The caller must close the reader.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	attempts := s.maxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", s.url, err)
		}

		resp, err := s.client.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode/100 == 2:
			return resp.Body, nil
		case retryable(resp.StatusCode):
			drain(resp.Body)
			lastErr = fmt.Errorf("fetch %s: retryable status %s", s.url, resp.Status)
		default:
			drain(resp.Body)
			return nil, fmt.Errorf("fetch %s: unexpected status %s", s.url, resp.Status)
		}

		if attempt+1 >= attempts {
			break
		}
		if err := wait(ctx, backoff(s.initialBackoff, attempt, s.maxBackoff)); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", s.url, lastErr)
}

// retryable treats 429 and 5xx as transient; everything else is final.
func retryable(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

// backoff returns initial*2^attempt clamped to max.
func backoff(initial time.Duration, attempt int, max time.Duration) time.Duration {
	d := initial << attempt
	if d > max || d <= 0 {
		return max
	}
	return d
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
