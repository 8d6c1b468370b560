package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare ID", input: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "bare ID with dash prefix", input: "-abcdefghij", want: "-abcdefghij"},
		{name: "surrounding spaces", input: "  dQw4w9WgXcQ ", want: "dQw4w9WgXcQ"},
		{name: "watch URL", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch URL with params", input: "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42s", want: "dQw4w9WgXcQ"},
		{name: "mobile URL", input: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link", input: "https://youtu.be/dQw4w9WgXcQ?si=abc", want: "dQw4w9WgXcQ"},
		{name: "scheme-less", input: "youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "shorts", input: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed", input: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "live", input: "https://www.youtube.com/live/dQw4w9WgXcQ?feature=shared", want: "dQw4w9WgXcQ"},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "abc123", wantErr: true},
		{name: "bad characters", input: "dQw4w9WgXc!", wantErr: true},
		{name: "foreign host", input: "https://example.com/watch?v=dQw4w9WgXcQ", wantErr: true},
		{name: "watch without v", input: "https://www.youtube.com/watch?list=PL123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVideoID)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
