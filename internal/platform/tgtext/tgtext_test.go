package tgtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ascii", input: "Naruto", want: 6},
		{name: "cyrillic", input: "Аниме", want: 5},
		{name: "emoji surrogate pair", input: "📺", want: 2},
		{name: "mixed", input: "ok 🎞", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Len(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "fits", input: "short", limit: 10, want: "short"},
		{name: "exact", input: "abcde", limit: 5, want: "abcde"},
		{name: "cut", input: "abcdefgh", limit: 5, want: "abcd…"},
		{name: "does not split emoji", input: "ab📺cd", limit: 4, want: "ab…"},
		{name: "zero limit", input: "abc", limit: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, Len(got), max(tt.limit, 0))
		})
	}
}

func TestTruncateCaption(t *testing.T) {
	long := strings.Repeat("🎞", MaxCaptionLen)

	got := Truncate(long, MaxCaptionLen)

	assert.LessOrEqual(t, Len(got), MaxCaptionLen)
	assert.True(t, strings.HasSuffix(got, "…"))
}
