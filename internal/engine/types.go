package engine

// CaptionEntry is one timed unit of transcript text. Start and Duration are seconds.
type CaptionEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// ErrorOutput is the JSON shape printed for every failure.
type ErrorOutput struct {
	Error string `json:"error"`
}
