package scraper

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/links"
	"github.com/netvlyx/netvlyx/internal/models"
)

// Episode number patterns in priority order. The first pattern that matches
// an element's text wins; later patterns only run when earlier ones found
// nothing anywhere in the document.
var episodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Episode[\s\-:]*(\d+)`),
	regexp.MustCompile(`(?i)\bEP[\s\-:]*(\d+)`),
	regexp.MustCompile(`(?i)\bE(\d+)\b`),
}

var episodeTitleRegex = regexp.MustCompile(`(?i)Episode[\s\-:]*\d+[\s\-–—:.]*(.{0,80})`)

// ExtractEpisodes finds per-episode link blocks in the document. When the
// template names episode section markers, the scan is restricted to content
// after the first marker; otherwise the whole document is scanned. Episodes
// sharing a number are merged, links deduplicated by URL, and the result is
// sorted by episode number ascending.
func ExtractEpisodes(doc *goquery.Document, tpl *Template, cls *links.Classifier) []models.EpisodeRecord {
	pageQuality := ""
	if qi, ok := MatchQuality(doc.Text()); ok {
		pageQuality = qi.Quality
	}

	scope := episodeScope(doc, tpl)

	byNumber := make(map[int]*models.EpisodeRecord)
	var numbers []int

	for _, pattern := range episodePatterns {
		scope.Find("h3, h4, h5, p, strong, b, span, div").Each(func(_ int, s *goquery.Selection) {
			// Skip container elements whose children also match; the
			// innermost marker carries the links.
			if s.Children().Filter("h3, h4, h5, p, strong, b, span, div").Length() > 0 && !s.Is("h3, h4, h5, p") {
				return
			}

			text := collapseWhitespace(s.Text())
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				return
			}
			number, err := strconv.Atoi(m[1])
			if err != nil || number <= 0 {
				return
			}

			epLinks := collectEpisodeLinks(s, cls, pattern, number, pageQuality)
			if len(epLinks) == 0 {
				return
			}

			rec, ok := byNumber[number]
			if !ok {
				rec = &models.EpisodeRecord{
					EpisodeNumber: number,
					Title:         episodeTitle(text, number),
				}
				byNumber[number] = rec
				numbers = append(numbers, number)
			}
			for _, l := range epLinks {
				if links.ContainsURL(rec.DownloadLinks, l.URL) {
					continue
				}
				rec.DownloadLinks = append(rec.DownloadLinks, l)
			}
		})

		if len(byNumber) > 0 {
			break
		}
	}

	sort.Ints(numbers)
	out := make([]models.EpisodeRecord, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, *byNumber[n])
	}
	return out
}

// episodeScope narrows the scan to everything after the template's first
// episode section marker. Only episode-style templates carry markers worth
// honoring; on other templates matching text is ordinary page copy.
func episodeScope(doc *goquery.Document, tpl *Template) *goquery.Selection {
	body := doc.Find("body")
	if !tpl.EpisodeStyle || len(tpl.EpisodeSectionMarkers) == 0 {
		return body
	}

	var marker *goquery.Selection
	body.Find("h2, h3, h4, h5, p, strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(collapseWhitespace(s.Text()))
		for _, m := range tpl.EpisodeSectionMarkers {
			if strings.Contains(text, m) {
				marker = s
				return false
			}
		}
		return true
	})
	if marker == nil {
		return body
	}

	// The marker plus everything after it, so links inside the marker's
	// own block are not lost.
	return marker.AddSelection(marker.NextAll())
}

// collectEpisodeLinks pulls anchors from the marker element itself and from
// a bounded number of following siblings, stopping when a sibling marks a
// different episode.
func collectEpisodeLinks(marker *goquery.Selection, cls *links.Classifier, pattern *regexp.Regexp, number int, pageQuality string) []models.DownloadLink {
	var out []models.DownloadLink

	appendAnchor := func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		label := collapseWhitespace(anchor.Text())
		link, ok := cls.Build(label, href, "")
		if !ok || links.ContainsURL(out, link.URL) {
			return
		}
		link.Quality = linkQuality(label, pageQuality)
		out = append(out, link)
	}

	marker.Find("a[href]").Each(appendAnchor)
	if marker.Is("a") {
		appendAnchor(0, marker)
	}

	sib := marker.Next()
	for scanned := 0; scanned < constants.MaxEpisodeSiblingScan && sib.Length() > 0; scanned++ {
		if m := pattern.FindStringSubmatch(collapseWhitespace(sib.Text())); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n != number {
				break
			}
		}
		if sib.Is("a") {
			appendAnchor(0, sib)
		}
		sib.Find("a[href]").Each(appendAnchor)
		sib = sib.Next()
	}

	return out
}

func linkQuality(label, pageQuality string) string {
	if qi, ok := MatchQuality(label); ok {
		return qi.Quality
	}
	if info := links.ParseLabel(label); info.Quality != "" {
		return info.Quality
	}
	if pageQuality != "" {
		return pageQuality
	}
	return unknownSize
}

func episodeTitle(text string, number int) string {
	if m := episodeTitleRegex.FindStringSubmatch(text); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" && !strings.EqualFold(title, "download") {
			return title
		}
	}
	return "Episode " + strconv.Itoa(number)
}
