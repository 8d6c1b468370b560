package engine

import (
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

func RandomUserAgent() string         { return stealth.RandomUserAgent() }
func IsRetryableStatus(code int) bool { return stealth.IsRetryableStatus(code) }

// BrowserHeader returns Chrome-like request headers with a random User-Agent.
// Accept-Encoding is left to the transport so gzip stays transparent.
func BrowserHeader() http.Header {
	h := http.Header{}
	for k, v := range stealth.ChromeHeaders() {
		h.Set(k, v)
	}
	h.Del("Accept-Encoding")
	if h.Get("User-Agent") == "" {
		h.Set("User-Agent", RandomUserAgent())
	}
	return h
}
