package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	FetchTimeout     time.Duration
	Retry            RetryConfig
	RequestsPerSec   float64  // 0 = unlimited
	AcceptLanguage   string   // Accept-Language sent with the watch page request
	DefaultLanguages []string // transcript languages tried when the caller gives none
	HTTPClient       *http.Client
}

var cfg = Config{
	FetchTimeout:     30 * time.Second,
	Retry:            DefaultRetryConfig,
	AcceptLanguage:   "en-US",
	DefaultLanguages: []string{"en"},
	HTTPClient:       &http.Client{Timeout: 30 * time.Second},
}

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero fields fall back to the defaults above.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	if c.AcceptLanguage == "" {
		c.AcceptLanguage = "en-US"
	}
	if len(c.DefaultLanguages) == 0 {
		c.DefaultLanguages = []string{"en"}
	}
	cfg = c
	Cfg = &cfg
	resetLimiter(c.RequestsPerSec)
}
