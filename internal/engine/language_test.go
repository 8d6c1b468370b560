package engine

import (
	"reflect"
	"testing"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{" de ", "de"},
		{"pt_br", "pt-BR"},
		{"zh-hans", "zh-Hans"},
		{"iw", "iw"},
		{"", ""},
		{"not a tag!", "not a tag!"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeLanguage(tt.in); got != tt.want {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLanguages(t *testing.T) {
	got := NormalizeLanguages([]string{"EN", "", "de", "en", "fr"})
	want := []string{"en", "de", "fr"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeLanguages() = %v, want %v", got, want)
	}
	if got := NormalizeLanguages(nil); len(got) != 0 {
		t.Errorf("NormalizeLanguages(nil) = %v, want empty", got)
	}
}

func TestSameLanguage(t *testing.T) {
	if !SameLanguage("en-us", "en-US") {
		t.Error("expected en-us and en-US to match")
	}
	if SameLanguage("en", "en-US") {
		t.Error("expected en and en-US to differ")
	}
}
