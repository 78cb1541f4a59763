package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/band-recaps/internal/logger"
)

const (
	UserAgent      = "band-recaps/1.0 (github.com/pfrederiksen/band-recaps)"
	Timeout        = 30 * time.Second
	DefaultRetries = 3
)

// StatusError reports a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Scraper fetches pages over HTTP
type Scraper struct {
	client     *http.Client
	userAgent  string
	retries    uint64
	newBackOff func() backoff.BackOff
}

// New creates a Scraper with the default timeout, User-Agent and retries
func New() *Scraper {
	return NewWithConfig(Timeout, UserAgent, DefaultRetries)
}

// NewWithConfig creates a Scraper. An empty userAgent uses UserAgent.
func NewWithConfig(timeout time.Duration, userAgent string, retries int) *Scraper {
	if userAgent == "" {
		userAgent = UserAgent
	}
	if retries < 0 {
		retries = 0
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent:  userAgent,
		retries:    uint64(retries),
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
}

// Fetch returns the body of url, retrying transient failures.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	attempts := 0

	op := func() error {
		attempts++
		b, err := s.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.retries), ctx)
	notify := func(err error, wait time.Duration) {
		logger.Warn("Retrying fetch", logger.Fields{
			"url":     url,
			"attempt": attempts,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return body, nil
}

func (s *Scraper) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{URL: url, Code: resp.StatusCode}
		if statusErr.Retryable() {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}
