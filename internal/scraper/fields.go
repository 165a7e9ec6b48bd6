package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/models"
)

// Field extractors never fail: absence of a match yields the zero value.
// Source HTML is wildly inconsistent, so every extractor works through an
// ordered selector list and stops at the first plausible hit.

// ExtractTitle tries the template's selectors from most specific to the
// generic entry-title fallback.
func ExtractTitle(doc *goquery.Document, tpl *Template) string {
	for _, sel := range tpl.TitleSelectors {
		title := strings.TrimSpace(doc.Find(sel).First().Text())
		if title != "" {
			return collapseWhitespace(title)
		}
	}
	return ""
}

var base64ImageRegex = regexp.MustCompile(`^data:image/[^;]+;base64,`)

// ExtractPoster finds the poster image, skipping screenshot-host images and
// resolving lazy-load placeholder attributes.
func ExtractPoster(doc *goquery.Document, tpl *Template) string {
	for _, sel := range tpl.PosterSelectors {
		var poster string
		doc.Find(sel).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src := imageSource(img)
			if src == "" {
				return true
			}
			if isScreenshotHost(src) {
				return true
			}
			poster = normalizeImageURL(src)
			return false
		})
		if poster != "" {
			return poster
		}
	}
	return ""
}

// imageSource resolves the usable source of an img element. Lazy-loading
// themes put a base64 placeholder in src and the real URL in data-src or
// srcset.
func imageSource(img *goquery.Selection) string {
	src, _ := img.Attr("src")
	if src != "" && !base64ImageRegex.MatchString(src) {
		return src
	}

	if dataSrc, ok := img.Attr("data-src"); ok && dataSrc != "" {
		return dataSrc
	}

	if srcset, ok := img.Attr("srcset"); ok && srcset != "" {
		first := strings.Fields(strings.SplitN(srcset, ",", 2)[0])
		if len(first) > 0 {
			return first[0]
		}
	}

	return ""
}

// normalizeImageURL upgrades protocol-relative URLs to https.
func normalizeImageURL(src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}

func isScreenshotHost(src string) bool {
	lower := strings.ToLower(src)
	for _, h := range constants.TrustedScreenshotHosts {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// ExtractMetadata applies the template's label vocabulary against the page's
// flattened text. Each label is anchored with a Label: value regex; captured
// values are trimmed. Missing labels leave fields empty.
func ExtractMetadata(pageText string, tpl *Template) models.Metadata {
	meta := models.Metadata{}

	assign := map[string]*string{
		"language": &meta.Language,
		"year":     &meta.ReleaseYear,
		"quality":  &meta.Quality,
		"size":     &meta.Size,
		"format":   &meta.Format,
		"subtitle": &meta.Subtitle,
	}

	for field, labels := range tpl.Labels {
		target, ok := assign[field]
		if !ok {
			continue
		}
		for _, label := range labels {
			if v := matchLabel(pageText, label); v != "" {
				*target = v
				break
			}
		}
	}

	return meta
}

func matchLabel(text, label string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*[:\-]\s*([^\n\r]+)`)
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractSynopsis captures everything between a synopsis label and the next
// section heading, collapsing whitespace.
func ExtractSynopsis(pageText string, tpl *Template) string {
	stops := strings.Join(escapeAll(tpl.SectionStops), "|")
	for _, label := range tpl.SynopsisLabels {
		re := regexp.MustCompile(`(?is)` + regexp.QuoteMeta(label) + `\s*[:\-]?\s*(.+?)(?:` + stops + `|$)`)
		if m := re.FindStringSubmatch(pageText); m != nil {
			synopsis := collapseWhitespace(m[1])
			if len(synopsis) > 20 {
				return synopsis
			}
		}
	}
	return ""
}

func escapeAll(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = regexp.QuoteMeta(p)
	}
	return out
}

var (
	imdbLinkSelector = `a[href*="imdb.com/title"]`
	ratingRegex      = regexp.MustCompile(`(\d{1,2}(?:\.\d)?)\s*/\s*10`)
)

// ExtractRating finds an external rating and its link, typically an IMDb
// badge near the top of the page.
func ExtractRating(doc *goquery.Document) (rating, link string) {
	anchor := doc.Find(imdbLinkSelector).First()
	if anchor.Length() > 0 {
		link, _ = anchor.Attr("href")
		if m := ratingRegex.FindStringSubmatch(anchor.Text()); m != nil {
			rating = m[1] + "/10"
		}
	}

	if rating == "" {
		if m := ratingRegex.FindStringSubmatch(doc.Text()); m != nil {
			rating = m[1] + "/10"
		}
	}

	return rating, link
}

// ExtractScreenshots scans the template's image selectors and buckets every
// image into trusted gallery hosts versus the rest. The trusted bucket wins
// wholesale when non-empty. The poster and base64 data URIs are always
// excluded, and the result is deduplicated in document order.
func ExtractScreenshots(doc *goquery.Document, tpl *Template, posterURL string) []string {
	var trusted, other []string
	seen := make(map[string]bool)

	for _, sel := range tpl.ScreenshotSelectors {
		doc.Find(sel).Each(func(_ int, img *goquery.Selection) {
			src := imageSource(img)
			if src == "" || base64ImageRegex.MatchString(src) {
				return
			}
			src = normalizeImageURL(src)
			if src == posterURL || seen[src] {
				return
			}
			seen[src] = true

			if isScreenshotHost(src) {
				trusted = append(trusted, src)
			} else {
				other = append(other, src)
			}
		})
	}

	if len(trusted) > 0 {
		return trusted
	}
	return other
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
