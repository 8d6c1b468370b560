package sources

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

const (
	reasonBotCheck      = "confirm you're not a bot"
	reasonBotCheckCurly = "confirm you’re not a bot"
	reasonAgeRestricted = "inappropriate for some users"
	reasonUnavailable   = "unavailable"
)

// checkPlayability maps a non-OK playability status onto a sentinel cause.
func checkPlayability(ps *playabilityStatus) error {
	if ps == nil || ps.Status == "" || ps.Status == "OK" {
		return nil
	}
	reason := ps.Reason
	switch ps.Status {
	case "LOGIN_REQUIRED":
		if strings.Contains(reason, reasonBotCheck) || strings.Contains(reason, reasonBotCheckCurly) {
			return ErrRequestBlocked
		}
		if strings.Contains(reason, reasonAgeRestricted) {
			return ErrAgeRestricted
		}
	case "ERROR":
		if strings.Contains(strings.ToLower(reason), reasonUnavailable) {
			return ErrVideoUnavailable
		}
	}

	detail := ps.Status
	if reason != "" {
		detail = reason
	}
	if sub := ps.ErrorScreen.subreason(); sub != "" {
		detail += "; " + sub
	}
	return withDetail(ErrVideoUnplayable, "%s", detail)
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// selectTrack picks the caption track for the given language preferences.
// Languages are tried in order; within a language a manually created track
// beats an auto-generated one.
func selectTrack(tracks []captionTrack, langs []string) (captionTrack, error) {
	blocked := false
	for _, lang := range langs {
		for _, generated := range []bool{false, true} {
			for _, t := range tracks {
				if (t.Kind == "asr") != generated || !engine.SameLanguage(t.LanguageCode, lang) {
					continue
				}
				if needsPoToken(t.BaseURL) {
					blocked = true
					continue
				}
				return t, nil
			}
		}
	}
	if blocked {
		return captionTrack{}, ErrPoTokenRequired
	}
	return captionTrack{}, withDetail(ErrNoTranscriptFound,
		"requested: %s; available: %s", strings.Join(langs, ", "), describeTracks(tracks))
}

// describeTracks lists tracks as `en ("English")`, marking auto-generated ones.
func describeTracks(tracks []captionTrack) string {
	if len(tracks) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(tracks))
	for _, t := range tracks {
		s := fmt.Sprintf("%s (%q)", t.LanguageCode, t.Name.String())
		if t.Kind == "asr" {
			s += " auto-generated"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
