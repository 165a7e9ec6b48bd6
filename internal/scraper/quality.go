package scraper

import (
	"regexp"
	"strings"
)

// QualityInfo is the result of matching a quality marker in heading or
// label text.
type QualityInfo struct {
	Quality string
	HQ      bool
	Size    string
}

// qualityTiers in matching priority. Higher tiers first so "2160p" is never
// half-matched, and for each tier the HQ-prefixed form is tried before the
// bare token (patterns overlap, so order is load-bearing).
var qualityTiers = []struct {
	canonical string
	hq        *regexp.Regexp
	plain     *regexp.Regexp
}{
	{"2160p", regexp.MustCompile(`(?i)\bHQ[\s-]*2160p\b`), regexp.MustCompile(`(?i)\b2160p\b`)},
	{"4K", regexp.MustCompile(`(?i)\bHQ[\s-]*4K\b`), regexp.MustCompile(`(?i)\b4K\b`)},
	{"1080p", regexp.MustCompile(`(?i)\bHQ[\s-]*1080p\b`), regexp.MustCompile(`(?i)\b1080p\b`)},
	{"720p", regexp.MustCompile(`(?i)\bHQ[\s-]*720p\b`), regexp.MustCompile(`(?i)\b720p\b`)},
	{"480p", regexp.MustCompile(`(?i)\bHQ[\s-]*480p\b`), regexp.MustCompile(`(?i)\b480p\b`)},
}

var (
	// Bracketed size, e.g. "[1.3GB]" or "[900MB each]"
	bracketSizeRegex = regexp.MustCompile(`\[([^\[\]]*?\d[^\[\]]*?(?:GB|MB)[^\[\]]*?)\]`)

	// Malformed size missing the opening bracket, e.g. "720p 2.1GB]"
	danglingSizeRegex = regexp.MustCompile(`([\d.]+\s*(?:GB|MB)[^\[\]]*?)\]`)

	// Bare size token anywhere in text
	bareSizeRegex = regexp.MustCompile(`(\d+(?:\.\d+)?\s*(?:GB|MB))`)

	codecRegex = regexp.MustCompile(`(?i)\b(HEVC|x264|x265|10bit|WEB-DL|BluRay|HDRip|WEBRip)\b`)
)

// MatchQuality finds the first quality marker in text, trying patterns in
// fixed priority order. ok is false when no tier matches.
func MatchQuality(text string) (info QualityInfo, ok bool) {
	for _, tier := range qualityTiers {
		if tier.hq.MatchString(text) {
			return QualityInfo{Quality: tier.canonical, HQ: true, Size: ExtractSize(text)}, true
		}
		if tier.plain.MatchString(text) {
			return QualityInfo{Quality: tier.canonical, Size: ExtractSize(text)}, true
		}
	}
	return QualityInfo{}, false
}

// ExtractSize pulls a human-readable size out of heading text. Bracketed
// sizes win; a trailing bracket with no opening bracket is still recognized
// and cleaned. Returns "" when nothing looks like a size.
func ExtractSize(text string) string {
	if m := bracketSizeRegex.FindStringSubmatch(text); m != nil {
		return cleanSize(m[1])
	}
	if m := danglingSizeRegex.FindStringSubmatch(text); m != nil {
		return cleanSize(m[1])
	}
	if m := bareSizeRegex.FindStringSubmatch(text); m != nil {
		return cleanSize(m[1])
	}
	return ""
}

func cleanSize(s string) string {
	s = strings.Trim(s, "[] \t")
	return strings.TrimSpace(s)
}

// IsQualityHeading reports whether heading text carries a quality marker,
// optionally wrapped with HQ prefixes, codec tags or a bracketed size.
func IsQualityHeading(text string) bool {
	_, ok := MatchQuality(text)
	return ok
}

// CodecTag returns the first codec token in text, or "".
func CodecTag(text string) string {
	if m := codecRegex.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
