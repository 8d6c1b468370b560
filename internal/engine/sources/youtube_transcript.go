package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// YouTube fetches transcripts by scraping the watch page, falling back to the
// ANDROID innertube player when the page carries no caption tracks.
type YouTube struct {
	fetcher   Fetcher
	languages []string
	watchURL  string
	playerURL string
}

// YouTubeOption configures a YouTube source.
type YouTubeOption func(*YouTube)

// WithDefaultLanguages sets the languages tried when Fetch is called without any.
func WithDefaultLanguages(langs ...string) YouTubeOption {
	return func(y *YouTube) {
		if n := engine.NormalizeLanguages(langs); len(n) > 0 {
			y.languages = n
		}
	}
}

// WithEndpoints overrides the watch page prefix and the innertube /player URL.
func WithEndpoints(watchURL, playerURL string) YouTubeOption {
	return func(y *YouTube) {
		y.watchURL = watchURL
		y.playerURL = playerURL
	}
}

// NewYouTube creates a YouTube source. Default languages come from engine.Cfg.
func NewYouTube(fetcher Fetcher, opts ...YouTubeOption) *YouTube {
	y := &YouTube{
		fetcher:   fetcher,
		languages: engine.NormalizeLanguages(engine.Cfg.DefaultLanguages),
		watchURL:  ytWatchURL,
		playerURL: ytInnertubePlayerURL,
	}
	if len(y.languages) == 0 {
		y.languages = []string{"en"}
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Fetch returns the caption entries of one video. languages lists preferred
// language codes in priority order; nil or empty means the default languages.
// Every failure is a *RetrieveError.
func (y *YouTube) Fetch(ctx context.Context, videoID string, languages []string) ([]engine.CaptionEntry, error) {
	engine.IncrTranscriptRequests()

	var entries []engine.CaptionEntry
	id, err := ParseVideoID(videoID)
	if err == nil {
		err = engine.TrackOperation(ctx, "youtube_transcript", func(ctx context.Context) error {
			var ferr error
			entries, ferr = y.fetch(ctx, id, languages)
			return ferr
		})
	}
	if err != nil {
		engine.IncrTranscriptErrors()
		return nil, &RetrieveError{VideoID: id, Cause: mapTransportError(err)}
	}
	return entries, nil
}

func (y *YouTube) fetch(ctx context.Context, videoID string, languages []string) ([]engine.CaptionEntry, error) {
	langs := engine.NormalizeLanguages(languages)
	if len(langs) == 0 {
		langs = y.languages
	}

	tracks, err := y.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := selectTrack(tracks, langs)
	if err != nil {
		return nil, err
	}
	slog.Debug("youtube: caption track selected",
		slog.String("id", videoID),
		slog.String("lang", track.LanguageCode),
		slog.String("kind", track.Kind))

	return y.fetchCaptions(ctx, track)
}

// captionTracks lists the caption tracks of a playable video.
func (y *YouTube) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	page, err := y.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if page.recaptcha {
		return nil, ErrTooManyRequests
	}

	if page.player != nil {
		if err := checkPlayability(page.player.PlayabilityStatus); err != nil {
			return nil, err
		}
		if tracks := page.player.tracks(); len(tracks) > 0 {
			slog.Debug("youtube: tracks from watch page",
				slog.String("id", videoID), slog.String("title", page.title), slog.Int("tracks", len(tracks)))
			return tracks, nil
		}
	}

	engine.IncrPlayerFallbacks()
	slog.Debug("youtube: no caption tracks on watch page, trying player", slog.String("id", videoID))

	player, err := y.fetchAndroidPlayer(ctx, videoID)
	if err != nil {
		if page.player == nil {
			return nil, err
		}
		slog.Warn("youtube: player fallback failed", slog.String("id", videoID), slog.Any("error", err))
		return nil, ErrTranscriptsDisabled
	}
	if err := checkPlayability(player.PlayabilityStatus); err != nil {
		return nil, err
	}
	tracks := player.tracks()
	if len(tracks) == 0 {
		if page.player == nil && player.PlayabilityStatus == nil {
			return nil, ErrVideoUnavailable
		}
		return nil, ErrTranscriptsDisabled
	}
	return tracks, nil
}

// mapTransportError turns an HTTP 429 into ErrTooManyRequests; other errors pass through.
func mapTransportError(err error) error {
	var statusErr *engine.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrTooManyRequests, err)
	}
	return err
}
