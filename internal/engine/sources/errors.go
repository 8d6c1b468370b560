package sources

import (
	"fmt"
)

// TranscriptError is a sentinel cause reported by the YouTube source.
type TranscriptError string

func (e TranscriptError) Error() string {
	return string(e)
}

const (
	ErrInvalidVideoID      = TranscriptError("invalid video ID: expected an 11-character YouTube video ID or a YouTube video URL")
	ErrVideoUnavailable    = TranscriptError("the video is no longer available")
	ErrVideoUnplayable     = TranscriptError("the video is unplayable")
	ErrAgeRestricted       = TranscriptError("the video is age-restricted and requires authentication")
	ErrRequestBlocked      = TranscriptError("YouTube is blocking requests from this IP")
	ErrTooManyRequests     = TranscriptError("YouTube is receiving too many requests from this IP and now requires solving a captcha")
	ErrConsentCookie       = TranscriptError("failed to automatically give consent to saving cookies")
	ErrTranscriptsDisabled = TranscriptError("subtitles are disabled for this video")
	ErrNoTranscriptFound   = TranscriptError("no transcript found for the requested languages")
	ErrPoTokenRequired     = TranscriptError("the requested transcript requires a PO token")
	ErrTranscriptParse     = TranscriptError("failed to parse the transcript data")
)

// detailError attaches context to a sentinel cause while keeping it matchable with errors.Is.
type detailError struct {
	cause  TranscriptError
	detail string
}

func (e *detailError) Error() string {
	return fmt.Sprintf("%s (%s)", e.cause, e.detail)
}

func (e *detailError) Unwrap() error {
	return e.cause
}

func withDetail(cause TranscriptError, format string, args ...any) error {
	return &detailError{cause: cause, detail: fmt.Sprintf(format, args...)}
}

// RetrieveError is the single error type returned by YouTube.Fetch.
type RetrieveError struct {
	VideoID string
	Cause   error
}

func (e *RetrieveError) Error() string {
	if e.VideoID == "" {
		return fmt.Sprintf("could not retrieve a transcript: %v", e.Cause)
	}
	return fmt.Sprintf("could not retrieve a transcript for the video %s: %v", watchURL(e.VideoID), e.Cause)
}

func (e *RetrieveError) Unwrap() error {
	return e.Cause
}
