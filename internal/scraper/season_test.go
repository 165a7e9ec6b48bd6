package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSeason(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"word form", "Season 2 Complete", "2"},
		{"hyphenated", "Season-3 720p Links", "3"},
		{"ordinal form", "2nd Season Hindi Dubbed", "2"},
		{"parenthesized", "Show Name (Season 4)", "4"},
		{"bare number parens", "Show Name (3)", "3"},
		{"s prefix", "Show S2 Complete", "2"},
		{"s prefix padded", "S 04 Links", "04"},
		{"no season", "Movie Title 2024", ""},
		{"word form beats s prefix", "S5 pack for Season 1", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSeason(tt.text))
		})
	}
}

func TestMentionsSeason(t *testing.T) {
	assert.True(t, mentionsSeason("Season 2 720p"))
	assert.True(t, mentionsSeason("complete season pack"))
	assert.False(t, mentionsSeason("S2 720p"))
	assert.False(t, mentionsSeason("seasonal greetings"))
}
