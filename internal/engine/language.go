package engine

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLanguage canonicalizes the casing and separators of a language tag
// ("EN" → "en", "pt_br" → "pt-BR") without rewriting deprecated subtags:
// YouTube still lists Hebrew as "iw".
// Unparseable input is returned trimmed but otherwise untouched.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Raw.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}

// NormalizeLanguages normalizes every code and drops empty entries and duplicates,
// keeping the first occurrence's position.
func NormalizeLanguages(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		n := NormalizeLanguage(c)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// SameLanguage reports whether two tags name the same language after normalization.
func SameLanguage(a, b string) bool {
	return strings.EqualFold(NormalizeLanguage(a), NormalizeLanguage(b))
}
