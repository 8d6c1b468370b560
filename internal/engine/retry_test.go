package engine

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetry(n int) RetryConfig {
	rc := DefaultRetryConfig
	rc.MaxRetries = n
	rc.InitialWait = time.Millisecond
	rc.MaxWait = 5 * time.Millisecond
	return rc
}

func statusServer(t *testing.T, codes ...int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		code := codes[len(codes)-1]
		if n < len(codes) {
			code = codes[n]
		}
		w.WriteHeader(code)
		io.WriteString(w, "<p>busy</p>")
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestDefaultRetryConfigSingleAttempt(t *testing.T) {
	if DefaultRetryConfig.MaxRetries != 0 {
		t.Errorf("DefaultRetryConfig.MaxRetries = %d, want 0", DefaultRetryConfig.MaxRetries)
	}
}

func TestRetryHTTP(t *testing.T) {
	tests := []struct {
		name       string
		codes      []int
		retries    int
		wantCalls  int32
		wantStatus int // 0 means success
	}{
		{"ok first try", []int{200}, 2, 1, 0},
		{"single attempt by default", []int{503}, 0, 1, 503},
		{"retry then ok", []int{503, 502, 200}, 3, 3, 0},
		{"exhausted", []int{429}, 2, 3, 429},
		{"not retryable", []int{404}, 3, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := statusServer(t, tt.codes...)
			before := metrics.Retries.Load()

			resp, err := RetryHTTP(context.Background(), fastRetry(tt.retries), func() (*http.Response, error) {
				return srv.Client().Get(srv.URL)
			})

			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if got := metrics.Retries.Load() - before; got != int64(tt.wantCalls-1) {
				t.Errorf("retries counted = %d, want %d", got, tt.wantCalls-1)
			}
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("RetryHTTP() error = %v", err)
				}
				resp.Body.Close()
				return
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != tt.wantStatus || statusErr.Snippet != "busy" {
				t.Errorf("StatusError = %+v, want code %d with snippet %q", statusErr, tt.wantStatus, "busy")
			}
		})
	}
}

func TestRetryHTTPContextCanceled(t *testing.T) {
	srv, _ := statusServer(t, 503)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryHTTP(ctx, fastRetry(3), func() (*http.Response, error) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
		return srv.Client().Do(req)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
