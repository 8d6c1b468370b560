package sources

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/engine/sources/fixtures"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: `{"a":1};var x`, want: `{"a":1}`},
		{name: "nested", input: `{"a":{"b":{}}} trailing`, want: `{"a":{"b":{}}}`},
		{name: "braces in strings", input: `{"t":"} {"};`, want: `{"t":"} {"}`},
		{name: "escaped quote", input: `{"t":"say \"}\""};`, want: `{"t":"say \"}\""}`},
		{name: "escaped backslash", input: `{"t":"C:\\"}{"u":1}`, want: `{"t":"C:\\"}`},
		{name: "unterminated", input: `{"a":{"b":1}`, want: ""},
		{name: "not an object", input: `[1,2]`, want: ""},
		{name: "empty", input: ``, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(extractJSON([]byte(tt.input))))
		})
	}
}

func TestParseWatchPage(t *testing.T) {
	t.Run("player response", func(t *testing.T) {
		page, err := parseWatchPage(fixtures.WatchPage("Never Gonna", fixtures.PlayerWithTracks))
		require.NoError(t, err)
		assert.Equal(t, "Never Gonna", page.title)
		assert.False(t, page.consentRequired)
		assert.False(t, page.recaptcha)
		require.NotNil(t, page.player)
		assert.Len(t, page.player.tracks(), 3)
		assert.Equal(t, "English (auto-generated)", page.player.tracks()[1].Name.String())
	})

	t.Run("consent wall", func(t *testing.T) {
		html := `<html><body><form action="https://consent.youtube.com/s" method="POST">` +
			`<input type="hidden" name="gl" value="DE"><input type="hidden" name="v" value="cb.20210328-17-p0.de+FX+123">` +
			`</form></body></html>`
		page, err := parseWatchPage([]byte(html))
		require.NoError(t, err)
		assert.True(t, page.consentRequired)
		assert.Equal(t, "cb.20210328-17-p0.de+FX+123", page.consentValue)
	})

	t.Run("recaptcha", func(t *testing.T) {
		page, err := parseWatchPage([]byte(`<html><body><div class="g-recaptcha" data-sitekey="x"></div></body></html>`))
		require.NoError(t, err)
		assert.True(t, page.recaptcha)
		assert.Nil(t, page.player)
	})

	t.Run("no player response", func(t *testing.T) {
		page, err := parseWatchPage([]byte(`<html><head><title>YouTube</title></head></html>`))
		require.NoError(t, err)
		assert.Nil(t, page.player)
	})

	t.Run("truncated player response", func(t *testing.T) {
		_, err := parseWatchPage([]byte(`<script>var ytInitialPlayerResponse = {"captions": {`))
		assert.ErrorIs(t, err, ErrTranscriptParse)
	})
}

func TestFetchWatchPageConsent(t *testing.T) {
	consent := `<html><body><form action="https://consent.youtube.com/s"><input name="v" value="abc"></form></body></html>`
	noCookie := mock.MatchedBy(func(h http.Header) bool { return h.Get("Cookie") == "" })
	withCookie := mock.MatchedBy(func(h http.Header) bool { return h.Get("Cookie") == "CONSENT=YES+abc" })

	t.Run("cookie accepted", func(t *testing.T) {
		fetcher := &fixtures.MockFetcher{}
		fetcher.On("Get", ytWatchURL+"dQw4w9WgXcQ", noCookie).Return([]byte(consent), nil).Once()
		fetcher.On("Get", ytWatchURL+"dQw4w9WgXcQ", withCookie).
			Return(fixtures.WatchPage("Video", fixtures.PlayerWithTracks), nil).Once()

		page, err := NewYouTube(fetcher).fetchWatchPage(context.Background(), "dQw4w9WgXcQ")
		require.NoError(t, err)
		assert.NotNil(t, page.player)
		fetcher.AssertExpectations(t)
	})

	t.Run("cookie rejected", func(t *testing.T) {
		fetcher := &fixtures.MockFetcher{}
		fetcher.On("Get", ytWatchURL+"dQw4w9WgXcQ", mock.Anything).Return([]byte(consent), nil).Twice()

		_, err := NewYouTube(fetcher).fetchWatchPage(context.Background(), "dQw4w9WgXcQ")
		assert.ErrorIs(t, err, ErrConsentCookie)
		fetcher.AssertExpectations(t)
	})
}
