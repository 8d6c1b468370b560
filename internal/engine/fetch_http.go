package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// maxBodyBytes caps any single response; watch pages run to ~1.5 MB.
const maxBodyBytes = 8 * 1024 * 1024

// StatusError is returned for non-200 HTTP responses.
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Snippet)
}

var (
	limiterMu sync.Mutex
	limiter   = rate.NewLimiter(rate.Inf, 1)
)

// resetLimiter replaces the shared request limiter. rps <= 0 disables pacing.
func resetLimiter(rps float64) {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	if rps <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

func currentLimiter() *rate.Limiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	return limiter
}

// HTTPFetcher performs paced, optionally retried requests with engine.Cfg.HTTPClient.
type HTTPFetcher struct{}

// NewHTTPFetcher returns a fetcher bound to the current engine configuration.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{}
}

// Get fetches url and returns the (decompressed) body of a 200 response.
func (f *HTTPFetcher) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	return f.do(ctx, http.MethodGet, url, header, nil)
}

// PostJSON marshals payload, POSTs it to url and returns the body of a 200 response.
func (f *HTTPFetcher) PostJSON(ctx context.Context, url string, header http.Header, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set("Content-Type", "application/json")
	return f.do(ctx, http.MethodPost, url, h, body)
}

func (f *HTTPFetcher) do(ctx context.Context, method, url string, header http.Header, body []byte) ([]byte, error) {
	metrics.HTTPRequests.Add(1)

	resp, err := RetryHTTP(ctx, Cfg.Retry, func() (*http.Response, error) {
		if err := currentLimiter().Wait(ctx); err != nil {
			return nil, err
		}
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, err
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", RandomUserAgent())
		}
		return Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		metrics.HTTPErrors.Add(1)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.HTTPErrors.Add(1)
		return nil, &StatusError{StatusCode: resp.StatusCode, Snippet: readSnippet(resp.Body)}
	}

	data, err := readResponseBody(resp)
	if err != nil {
		metrics.HTTPErrors.Add(1)
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxBodyBytes))
}

// readSnippet returns a short, single-line preview of an error response body.
func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 1024))
	s := strings.Join(strings.Fields(CleanHTML(string(b))), " ")
	return TruncateRunes(s, 160, "...")
}
