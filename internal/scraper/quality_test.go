package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchQualityPriority(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		quality string
		hq      bool
		ok      bool
	}{
		{"hq before plain", "HQ 1080p WEB-DL Links [2.1GB]", "1080p", true, true},
		{"hq hyphenated", "HQ-720p HEVC [650MB]", "720p", true, true},
		{"plain 1080p", "1080p BluRay Links", "1080p", false, true},
		{"higher tier wins", "2160p 4K HDR Links", "2160p", false, true},
		{"4k alone", "4K Dolby Vision", "4K", false, true},
		{"480p", "480p x264 [300MB]", "480p", false, true},
		{"no quality", "Download Links Below", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := MatchQuality(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.quality, info.Quality)
			assert.Equal(t, tt.hq, info.HQ)
		})
	}
}

func TestExtractSize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bracketed", "720p Links [900MB]", "900MB"},
		{"bracketed with suffix", "1080p [1.3GB each]", "1.3GB each"},
		{"missing open bracket", "720p Links 2.1GB]", "2.1GB"},
		{"bare token", "size is 650MB approx", "650MB"},
		{"none", "720p Links", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSize(tt.text))
		})
	}
}

func TestIsQualityHeading(t *testing.T) {
	assert.True(t, IsQualityHeading("Season 2 720p HEVC Links [800MB]"))
	assert.True(t, IsQualityHeading("HQ 1080p Links"))
	assert.False(t, IsQualityHeading("Screenshots"))
	assert.False(t, IsQualityHeading("Storyline"))
}

func TestCodecTag(t *testing.T) {
	assert.Equal(t, "HEVC", CodecTag("720p HEVC x265 Links"))
	assert.Equal(t, "", CodecTag("720p Links"))
}
