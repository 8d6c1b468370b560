package sources

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Caption payload formats:
//   timedtext (srv1): <transcript><text start="1.2" dur="3.4">...</text></transcript>
//   srv3:             <timedtext format="3"><body><p t="1200" d="3400">...</p></body></timedtext>
//   TTML:             <tt><body><div><p begin="00:00:01.200" end="00:00:04.600">...</p></div></body></tt>

type ytTimedText struct {
	Lines []struct {
		Text     string `xml:",chardata"`
		Start    string `xml:"start,attr"`
		Duration string `xml:"dur,attr"`
	} `xml:"text"`
}

type ytSrv3 struct {
	Body struct {
		Paragraphs []struct {
			Inner    string `xml:",innerxml"`
			Start    string `xml:"t,attr"`
			Duration string `xml:"d,attr"`
		} `xml:"p"`
	} `xml:"body"`
}

type ytTTML struct {
	Body struct {
		Divs []struct {
			Paragraphs []struct {
				Inner string `xml:",innerxml"`
				Begin string `xml:"begin,attr"`
				End   string `xml:"end,attr"`
				Dur   string `xml:"dur,attr"`
			} `xml:"p"`
		} `xml:"div"`
	} `xml:"body"`
}

var brTagRe = regexp.MustCompile(`(?i)<br\s*/?>`)

// parseCaptions decodes any supported caption payload into entries.
func parseCaptions(data []byte) ([]engine.CaptionEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, withDetail(ErrTranscriptParse, "empty caption payload")
	}
	root, err := rootElement(data)
	if err != nil {
		return nil, withDetail(ErrTranscriptParse, "%v", err)
	}

	switch root {
	case "transcript":
		return parseTimedText(data)
	case "timedtext":
		return parseSrv3(data)
	case "tt":
		return parseTTML(data)
	}
	return nil, withDetail(ErrTranscriptParse, "unknown caption format <%s>", root)
}

// rootElement returns the local name of the first element in data.
func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", errors.New("no root element")
			}
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

func parseTimedText(data []byte) ([]engine.CaptionEntry, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, withDetail(ErrTranscriptParse, "%v", err)
	}
	entries := make([]engine.CaptionEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CaptionText(line.Text)
		if text == "" {
			continue
		}
		entries = append(entries, engine.CaptionEntry{
			Text:     text,
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Duration),
		})
	}
	return entries, nil
}

func parseSrv3(data []byte) ([]engine.CaptionEntry, error) {
	var doc ytSrv3
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, withDetail(ErrTranscriptParse, "%v", err)
	}
	entries := make([]engine.CaptionEntry, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		text := innerText(p.Inner)
		if text == "" {
			continue
		}
		entries = append(entries, engine.CaptionEntry{
			Text:     text,
			Start:    parseSeconds(p.Start) / 1000,
			Duration: parseSeconds(p.Duration) / 1000,
		})
	}
	return entries, nil
}

func parseTTML(data []byte) ([]engine.CaptionEntry, error) {
	var doc ytTTML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, withDetail(ErrTranscriptParse, "%v", err)
	}
	var entries []engine.CaptionEntry
	for _, div := range doc.Body.Divs {
		for _, p := range div.Paragraphs {
			text := innerText(p.Inner)
			if text == "" {
				continue
			}
			start := parseClock(p.Begin)
			dur := parseClock(p.Dur)
			if p.Dur == "" && p.End != "" {
				dur = math.Max(0, parseClock(p.End)-start)
			}
			entries = append(entries, engine.CaptionEntry{Text: text, Start: start, Duration: dur})
		}
	}
	if entries == nil {
		entries = []engine.CaptionEntry{}
	}
	return entries, nil
}

// innerText flattens raw inner XML of a caption paragraph to display text.
// Raw markup goes first, then entities are decoded.
func innerText(inner string) string {
	return engine.CaptionText(engine.CleanHTML(brTagRe.ReplaceAllString(inner, "\n")))
}

// parseSeconds parses a decimal attribute; anything unusable is 0.
func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseClock parses TTML time expressions: "12.5s", "1500ms", "00:01:02.500", "01:02.5".
func parseClock(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return 0
	case strings.HasSuffix(s, "ms"):
		return parseSeconds(strings.TrimSuffix(s, "ms")) / 1000
	case strings.HasSuffix(s, "s"):
		return parseSeconds(strings.TrimSuffix(s, "s"))
	case strings.Contains(s, ":"):
		var total float64
		for _, part := range strings.Split(s, ":") {
			total = total*60 + parseSeconds(part)
		}
		return total
	}
	return parseSeconds(s)
}

// timedTextURL drops the srv3 format switch so the classic <transcript> payload is served.
func timedTextURL(baseURL string) string {
	return strings.Replace(baseURL, "&fmt=srv3", "", 1)
}

func (y *YouTube) fetchCaptions(ctx context.Context, track captionTrack) ([]engine.CaptionEntry, error) {
	data, err := y.fetcher.Get(ctx, timedTextURL(track.BaseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	return parseCaptions(data)
}
