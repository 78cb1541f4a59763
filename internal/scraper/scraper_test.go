package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func newTestScraper(retries int) *Scraper {
	s := NewWithConfig(5*time.Second, "", retries)
	s.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return s
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int // served in order, the last one repeats
		retries   int
		wantError bool
		wantCode  int
		wantCalls int32
	}{
		{
			name:      "successful fetch",
			statuses:  []int{http.StatusOK},
			retries:   3,
			wantCalls: 1,
		},
		{
			name:      "not found is not retried",
			statuses:  []int{http.StatusNotFound},
			retries:   3,
			wantError: true,
			wantCode:  http.StatusNotFound,
			wantCalls: 1,
		},
		{
			name:      "transient errors recover",
			statuses:  []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusOK},
			retries:   3,
			wantCalls: 3,
		},
		{
			name:      "retries exhausted",
			statuses:  []int{http.StatusInternalServerError},
			retries:   2,
			wantError: true,
			wantCode:  http.StatusInternalServerError,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Verify User-Agent is set
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "band-recaps") {
					t.Errorf("User-Agent = %q, should contain 'band-recaps'", userAgent)
				}

				n := int(atomic.AddInt32(&calls, 1))
				status := tt.statuses[min(n, len(tt.statuses))-1]
				w.WriteHeader(status)
				w.Write([]byte("<html><body>recap</body></html>"))
			}))
			defer server.Close()

			body, err := newTestScraper(tt.retries).Fetch(context.Background(), server.URL)

			if tt.wantError {
				if err == nil {
					t.Fatal("Fetch() expected error, got nil")
				}
				if !IsStatus(err, tt.wantCode) {
					t.Errorf("Fetch() error = %v, want status %d", err, tt.wantCode)
				}
			} else {
				if err != nil {
					t.Fatalf("Fetch() unexpected error: %v", err)
				}
				if !strings.Contains(string(body), "recap") {
					t.Errorf("Fetch() body = %q", body)
				}
			}

			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("server saw %d requests, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestScraper(3).Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestStatusError_Retryable(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
	}

	for _, tt := range tests {
		if got := (&StatusError{Code: tt.code}).Retryable(); got != tt.want {
			t.Errorf("Retryable(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
