// Package fixtures holds test doubles and canned YouTube payloads for the sources package.
package fixtures

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockFetcher implements sources.Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	args := m.Called(url, header)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockFetcher) PostJSON(ctx context.Context, url string, header http.Header, payload any) ([]byte, error) {
	args := m.Called(url, payload)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// WatchPage wraps a player response JSON the way the watch page embeds it.
func WatchPage(title, playerJSON string) []byte {
	return []byte(`<!DOCTYPE html><html><head><title>` + title + ` - YouTube</title></head><body>` +
		`<script>var ytInitialPlayerResponse = ` + playerJSON + `;var meta = {};</script></body></html>`)
}

// PlayerWithTracks is a playable player response listing English (manual),
// English (auto-generated) and German (manual) tracks.
const PlayerWithTracks = `{
	"playabilityStatus": {"status": "OK"},
	"videoDetails": {"videoId": "dQw4w9WgXcQ", "title": "Test {Video}"},
	"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
		{"baseUrl": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en&fmt=srv3", "name": {"simpleText": "English"}, "languageCode": "en", "isTranslatable": true},
		{"baseUrl": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en&kind=asr", "name": {"runs": [{"text": "English (auto-generated)"}]}, "languageCode": "en", "kind": "asr", "isTranslatable": true},
		{"baseUrl": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=de", "name": {"simpleText": "Deutsch"}, "languageCode": "de", "isTranslatable": true}
	]}}
}`

// PlayerNoCaptions is a playable player response without captions.
const PlayerNoCaptions = `{"playabilityStatus": {"status": "OK"}, "videoDetails": {"videoId": "dQw4w9WgXcQ"}}`

// PlayerUnavailable is the player response of a removed video.
const PlayerUnavailable = `{"playabilityStatus": {"status": "ERROR", "reason": "This video is unavailable"}}`

// TimedTextEN is a classic timedtext payload.
const TimedTextEN = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0" dur="1.54">Hey there</text>` +
	`<text start="1.54" dur="4.16">how are you &amp;amp; co</text>` +
	`<text start="5.7" dur="1"></text>` +
	`</transcript>`

// TimedTextDE is a German timedtext payload with non-ASCII text.
const TimedTextDE = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="2">Grüße aus Köln</text>` +
	`</transcript>`
