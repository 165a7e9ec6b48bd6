package scraper

import "regexp"

// Season patterns in priority order. The first match wins, so the explicit
// "season" spellings are tried before the bare s-prefix shorthand.
//
// The final pattern is known to be ambiguous: an "s" followed by digits
// appears in plenty of ordinary release text. The word-boundary guard keeps
// the worst misfires out; source templates rely on the remaining behavior,
// so it is deliberately not tightened further.
var seasonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)season[-_\s]*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)?\s*season`),
	regexp.MustCompile(`(?i)\(\s*(?:season\s*)?(\d+)\s*\)`),
	regexp.MustCompile(`(?i)\bs[-_\s]*(\d+)\b`),
}

// ExtractSeason pulls a numeric season label out of free text. Returns ""
// when no pattern matches. The result is always a bare digit string.
func ExtractSeason(text string) string {
	for _, p := range seasonPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

var seasonWordRegex = regexp.MustCompile(`(?i)\bseason\b`)

// mentionsSeason reports whether text already spells out "season", which
// controls whether group titles get a season prefix.
func mentionsSeason(text string) bool {
	return seasonWordRegex.MatchString(text)
}
