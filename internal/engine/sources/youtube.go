package sources

// YouTube transcript source is split across files by responsibility:
//   youtube_innertube.go:  player response types, constants, ANDROID /player request
//   youtube_watch.go:      watch page scrape, consent cookie, ytInitialPlayerResponse
//   youtube_tracks.go:     playability checks and caption track selection
//   youtube_timedtext.go:  timedtext / srv3 / TTML caption parsing
//   youtube_transcript.go: YouTube type tying the steps together

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// Fetcher is the HTTP surface the YouTube source needs. engine.HTTPFetcher implements it.
type Fetcher interface {
	Get(ctx context.Context, url string, header http.Header) ([]byte, error)
	PostJSON(ctx context.Context, url string, header http.Header, payload any) ([]byte, error)
}

const ytWatchURL = "https://www.youtube.com/watch?v="

var (
	bareVideoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	// Path forms: youtu.be/<id>, /shorts/<id>, /embed/<id>, /live/<id>, /v/<id>.
	pathVideoIDRE = regexp.MustCompile(`^/(?:shorts/|embed/|live/|v/)?([A-Za-z0-9_-]{11})(?:[/?#]|$)`)
)

func watchURL(videoID string) string {
	return ytWatchURL + videoID
}

// ParseVideoID returns the 11-character video ID for a bare ID or a YouTube URL.
func ParseVideoID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if bareVideoIDRE.MatchString(s) {
		return s, nil
	}

	if !strings.Contains(s, "://") {
		if strings.HasPrefix(s, "www.") || strings.HasPrefix(s, "youtube.com") ||
			strings.HasPrefix(s, "m.youtube.com") || strings.HasPrefix(s, "youtu.be") {
			s = "https://" + s
		} else {
			return "", ErrInvalidVideoID
		}
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", ErrInvalidVideoID
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	host = strings.TrimPrefix(host, "music.")

	switch host {
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); bareVideoIDRE.MatchString(v) {
			return v, nil
		}
		if m := pathVideoIDRE.FindStringSubmatch(u.Path); m != nil {
			return m[1], nil
		}
	case "youtu.be":
		if m := pathVideoIDRE.FindStringSubmatch(u.Path); m != nil {
			return m[1], nil
		}
	}
	return "", ErrInvalidVideoID
}
