package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

const ytConsentAction = "https://consent.youtube.com/s"

// watchPage is what a single watch page fetch tells us.
type watchPage struct {
	title           string
	consentRequired bool
	consentValue    string
	recaptcha       bool
	player          *playerResponse // nil when the page carries no player response
}

// fetchWatchPage downloads the watch page, passing the EU cookie consent wall if shown.
func (y *YouTube) fetchWatchPage(ctx context.Context, videoID string) (*watchPage, error) {
	header := engine.BrowserHeader()
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	header.Set("Accept-Language", engine.Cfg.AcceptLanguage)

	page, err := y.getWatchPage(ctx, videoID, header)
	if err != nil {
		return nil, err
	}
	if !page.consentRequired {
		return page, nil
	}

	if page.consentValue == "" {
		return nil, ErrConsentCookie
	}
	engine.IncrConsentCookieRetries()
	header.Set("Cookie", "CONSENT=YES+"+page.consentValue)

	page, err = y.getWatchPage(ctx, videoID, header)
	if err != nil {
		return nil, err
	}
	if page.consentRequired {
		return nil, ErrConsentCookie
	}
	return page, nil
}

func (y *YouTube) getWatchPage(ctx context.Context, videoID string, header http.Header) (*watchPage, error) {
	body, err := y.fetcher.Get(ctx, y.watchURL+videoID, header)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	return parseWatchPage(body)
}

// parseWatchPage inspects raw watch page HTML.
func parseWatchPage(body []byte) (*watchPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	page := &watchPage{title: pageTitle(doc)}

	consent := doc.Find(`form[action^="` + ytConsentAction + `"]`)
	if consent.Length() > 0 {
		page.consentRequired = true
		page.consentValue, _ = consent.Find(`input[name="v"]`).Attr("value")
		return page, nil
	}

	page.recaptcha = doc.Find(".g-recaptcha").Length() > 0

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return page, nil
	}
	raw := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if raw == nil {
		return nil, fmt.Errorf("%w (unterminated ytInitialPlayerResponse)", ErrTranscriptParse)
	}
	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	page.player = &player
	return page, nil
}

// pageTitle returns the text of the first <title> element, minus the " - YouTube" suffix.
func pageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(strings.TrimSuffix(title, "- YouTube"))
}

// extractJSON returns the leading brace-balanced JSON object of b, or nil.
// Braces inside string literals (including escaped quotes) are ignored.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
