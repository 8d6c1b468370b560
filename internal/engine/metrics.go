package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	HTTPRequests         atomic.Int64
	HTTPErrors           atomic.Int64
	Retries              atomic.Int64
	TranscriptRequests   atomic.Int64
	TranscriptErrors     atomic.Int64
	PlayerFallbacks      atomic.Int64
	ConsentCookieRetries atomic.Int64
}

var metricKeys = []string{
	"http_requests", "http_errors", "retries",
	"transcript_requests", "transcript_errors",
	"player_fallbacks", "consent_cookie_retries",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"http_requests":          metrics.HTTPRequests.Load(),
		"http_errors":            metrics.HTTPErrors.Load(),
		"retries":                metrics.Retries.Load(),
		"transcript_requests":    metrics.TranscriptRequests.Load(),
		"transcript_errors":      metrics.TranscriptErrors.Load(),
		"player_fallbacks":       metrics.PlayerFallbacks.Load(),
		"consent_cookie_retries": metrics.ConsentCookieRetries.Load(),
	}
}

// LogMetrics writes the counters as a single debug record.
func LogMetrics() {
	m := GetMetrics()
	attrs := make([]any, 0, len(metricKeys))
	for _, k := range metricKeys {
		attrs = append(attrs, slog.Int64(k, m[k]))
	}
	slog.Debug("metrics", attrs...)
}

// Incrementors for sources/ sub-package.
func IncrTranscriptRequests()   { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()     { metrics.TranscriptErrors.Add(1) }
func IncrPlayerFallbacks()      { metrics.PlayerFallbacks.Add(1) }
func IncrConsentCookieRetries() { metrics.ConsentCookieRetries.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
