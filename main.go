// Command get_transcript prints the transcript of a YouTube video as one JSON value.
//
//	get_transcript <video_id> [<language_code>]
//
// Prints the caption entries as a JSON array, or {"error": "..."} on any failure.
// The exit code is always 0; diagnostics go to stderr via slog.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_transcript/internal/cli"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	initLogger()
	initEngine()
	defer engine.LogMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d := env.Duration("RUN_TIMEOUT", 0); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	provider := sources.NewYouTube(engine.NewHTTPFetcher())
	return cli.Main(ctx, os.Args[1:], os.Stdout, os.Stderr, provider)
}

func initLogger() {
	slog.SetDefault(slog.New(newLogHandler(os.Stderr)))
}

// newLogHandler builds the stderr handler from LOG_LEVEL and LOG_FORMAT.
func newLogHandler(w io.Writer) slog.Handler {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.Str("LOG_LEVEL", "warn"))); err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(env.Str("LOG_FORMAT", "text"), "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func initEngine() {
	c := engineConfig()
	engine.Init(c)

	slog.Debug("engine initialized",
		slog.Duration("fetch_timeout", c.FetchTimeout),
		slog.Int("retries", c.Retry.MaxRetries),
		slog.Any("default_languages", engine.Cfg.DefaultLanguages),
	)
}

// engineConfig reads the engine settings from the environment.
func engineConfig() engine.Config {
	timeout := env.Duration("FETCH_TIMEOUT", 30*time.Second)

	retry := engine.DefaultRetryConfig
	retry.MaxRetries = max(env.Int("FETCH_RETRIES", 0), 0)

	return engine.Config{
		FetchTimeout:     timeout,
		Retry:            retry,
		RequestsPerSec:   env.Float("FETCH_RPS", 0),
		AcceptLanguage:   env.Str("YT_ACCEPT_LANGUAGE", "en-US"),
		DefaultLanguages: env.List("YT_DEFAULT_LANGUAGES", "en"),
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 15 * time.Second,
			},
		},
	}
}
