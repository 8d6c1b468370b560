package engine

import (
	"context"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// RetryConfig controls retry behavior (attempts and exponential backoff).
type RetryConfig = stealth.RetryConfig

// DefaultRetryConfig keeps go-stealth's backoff schedule but makes a single attempt.
// Retries are opt-in via FETCH_RETRIES.
var DefaultRetryConfig = singleAttempt(stealth.DefaultRetryConfig)

func singleAttempt(rc RetryConfig) RetryConfig {
	rc.MaxRetries = 0
	return rc
}

// RetryHTTP sends requests through go-stealth's retry loop. A retryable status on the
// final attempt is reported as *StatusError with a body snippet; other non-200
// responses are returned to the caller unchanged.
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	var attempts int
	var lastStatus *StatusError

	resp, err := stealth.RetryHTTP(ctx, rc, func() (*http.Response, error) {
		attempts++
		lastStatus = nil
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if IsRetryableStatus(resp.StatusCode) {
			lastStatus = &StatusError{StatusCode: resp.StatusCode, Snippet: readSnippet(resp.Body)}
		}
		return resp, nil
	})
	if attempts > 1 {
		metrics.Retries.Add(int64(attempts - 1))
	}

	if lastStatus != nil {
		if resp != nil {
			resp.Body.Close()
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, lastStatus
	}
	return resp, err
}
