package engine

import (
	"bytes"
	"encoding/json"
)

// EncodeLine encodes v as one line of JSON terminated by '\n', using ", " and ": "
// as separators. Non-ASCII text stays literal and <, >, & are not \u-escaped.
func EncodeLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return spaceSeparators(buf.Bytes()), nil
}

// spaceSeparators inserts a space after every ',' and ':' outside string literals
// of compact JSON. Inside strings it turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into literal characters.
func spaceSeparators(compact []byte) []byte {
	out := make([]byte, 0, len(compact)+len(compact)/8)
	inStr := false
	for i := 0; i < len(compact); i++ {
		c := compact[i]
		if inStr {
			switch c {
			case '\\':
				if r, ok := lineSeparatorEscape(compact[i:]); ok {
					out = append(out, r...)
					i += len(`\u2028`) - 1
					continue
				}
				out = append(out, c)
				if i+1 < len(compact) {
					i++
					out = append(out, compact[i])
				}
			case '"':
				inStr = false
				out = append(out, c)
			default:
				out = append(out, c)
			}
			continue
		}
		out = append(out, c)
		switch c {
		case '"':
			inStr = true
		case ',', ':':
			out = append(out, ' ')
		}
	}
	return out
}

// lineSeparatorEscape reports whether b starts with \u2028 or \u2029 and returns the
// UTF-8 encoding of that character.
func lineSeparatorEscape(b []byte) ([]byte, bool) {
	switch {
	case bytes.HasPrefix(b, []byte(`\u2028`)):
		return []byte("\u2028"), true
	case bytes.HasPrefix(b, []byte(`\u2029`)):
		return []byte("\u2029"), true
	}
	return nil, false
}
