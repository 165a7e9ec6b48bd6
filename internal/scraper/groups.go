package scraper

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/links"
	"github.com/netvlyx/netvlyx/internal/models"
)

const (
	headingSelector   = "h3, h4, h5"
	sectionStopSelect = "h3, h4, h5, hr"
	unknownSize       = "Unknown"
	flatGroupTitle    = "Downloads"
)

var downloadKeywordRegex = regexp.MustCompile(`(?i)\b(download|g-?drive|direct|links?|watch|stream|batch|zip)\b`)

// ExtractDownloadGroups walks the document for quality headings and groups
// the links that follow each one under the right season and quality. Three
// passes run in order: the heading-based walk, a permissive button scan for
// templates where links are not siblings of their heading, and a last-resort
// flat pass. Deterministic for a given document; returns an empty slice when
// nothing matches.
func ExtractDownloadGroups(doc *goquery.Document, tpl *Template, cls *links.Classifier) []models.DownloadGroup {
	acc := newGroupAccumulator()
	seenURLs := make(map[string]bool)

	// Pass 1: quality headings in document order.
	doc.Find(headingSelector).Each(func(_ int, heading *goquery.Selection) {
		text := collapseWhitespace(heading.Text())
		qi, ok := MatchQuality(text)
		if !ok {
			return
		}

		// The heading's own text outranks any backward search: a heading
		// may combine season and quality ("Season 3 720p Links").
		season := ExtractSeason(text)
		if season == "" {
			season = seasonFromContext(heading)
		}

		sectionLinks := collectSectionLinks(heading, cls, season, qi.Quality)
		for _, l := range sectionLinks {
			seenURLs[l.URL] = true
		}

		acc.add(groupTitle(text, season), season, qi.Quality, sizeOrUnknown(qi.Size), CodecTag(text), sectionLinks)
	})

	// Pass 2: permissive button scan. Some templates render download
	// controls far from their heading; infer context symmetrically.
	for _, sel := range tpl.ButtonSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			anchor := s
			if !s.Is("a") {
				anchor = s.ParentsFiltered("a").First()
			}
			href, ok := anchor.Attr("href")
			if !ok {
				return
			}

			label := collapseWhitespace(anchor.Text())
			block := anchor.Closest("p, div, h3, h4, h5, li")

			season := ExtractSeason(label)
			if season == "" {
				season = seasonFromContext(block)
			}

			quality, size, headingText := qualityFromContext(label, block)
			if quality == "" {
				if info := links.ParseLabel(label); info.Quality != "" {
					quality = info.Quality
					if season == "" {
						season = info.Season
					}
				}
			}
			if quality == "" {
				quality = unknownSize
			}

			link, ok := cls.Build(label, href, season)
			if !ok || seenURLs[link.URL] {
				return
			}
			link.Quality = quality
			seenURLs[link.URL] = true

			title := flatGroupTitle
			if headingText != "" {
				title = groupTitle(headingText, season)
			} else if season != "" {
				title = fmt.Sprintf("Season %s - %s", season, flatGroupTitle)
			}

			codec := CodecTag(label)
			if codec == "" {
				codec = CodecTag(headingText)
			}

			acc.add(title, season, quality, sizeOrUnknown(size), codec, []models.DownloadLink{link})
		})
	}

	// Pass 3: flat last resort, no season attribution.
	if acc.empty() {
		pageQuality := ""
		if qi, ok := MatchQuality(doc.Text()); ok {
			pageQuality = qi.Quality
		}

		doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
			href, _ := anchor.Attr("href")
			label := collapseWhitespace(anchor.Text())

			if !downloadKeywordRegex.MatchString(label) {
				if _, ok := MatchQuality(label); !ok {
					return
				}
			}

			link, ok := cls.Build(label, href, "")
			if !ok || seenURLs[link.URL] {
				return
			}
			seenURLs[link.URL] = true

			quality := pageQuality
			size := ""
			if qi, ok := MatchQuality(label); ok {
				quality = qi.Quality
				size = qi.Size
			}
			if quality == "" {
				quality = unknownSize
			}
			link.Quality = quality

			acc.add(flatGroupTitle, "", quality, sizeOrUnknown(size), CodecTag(label), []models.DownloadLink{link})
		})
	}

	return links.RemoveBatchDuplicates(acc.result())
}

// collectSectionLinks gathers every anchor between a heading and the next
// heading-like element, plus anchors inside the heading itself. Labels come
// from the anchor text, which already includes nested button text.
func collectSectionLinks(heading *goquery.Selection, cls *links.Classifier, season, quality string) []models.DownloadLink {
	var out []models.DownloadLink

	appendAnchor := func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		link, ok := cls.Build(collapseWhitespace(anchor.Text()), href, season)
		if !ok || links.ContainsURL(out, link.URL) {
			return
		}
		link.Quality = quality
		out = append(out, link)
	}

	heading.Find("a[href]").Each(appendAnchor)
	heading.NextUntil(sectionStopSelect).Each(func(_ int, sib *goquery.Selection) {
		if sib.Is("a") {
			appendAnchor(0, sib)
			return
		}
		sib.Find("a[href]").Each(appendAnchor)
	})

	return out
}

// seasonFromContext walks backward through preceding siblings in strict
// reverse document order, bounded by MaxBackwardSearchHops. Another quality
// heading signals overshoot and stops the search. An <hr> is a season
// boundary marker: the element immediately before it is inspected.
func seasonFromContext(sel *goquery.Selection) string {
	prev := sel.Prev()
	for hops := 0; hops < constants.MaxBackwardSearchHops && prev.Length() > 0; hops++ {
		text := collapseWhitespace(prev.Text())

		if prev.Is(headingSelector) && IsQualityHeading(text) {
			return ""
		}

		if goquery.NodeName(prev) == "hr" {
			before := prev.Prev()
			if s := ExtractSeason(collapseWhitespace(before.Text())); s != "" {
				return s
			}
			return ""
		}

		if s := ExtractSeason(text); s != "" {
			return s
		}

		prev = prev.Prev()
	}
	return ""
}

// qualityFromContext infers a button's quality from its label first, then
// from the nearest preceding quality heading. Returns the heading text when
// one supplied the answer so the caller can title the group after it.
func qualityFromContext(label string, block *goquery.Selection) (quality, size, headingText string) {
	if qi, ok := MatchQuality(label); ok {
		return qi.Quality, qi.Size, ""
	}

	if block == nil || block.Length() == 0 {
		return "", "", ""
	}

	prev := block.Prev()
	for hops := 0; hops < constants.MaxBackwardSearchHops && prev.Length() > 0; hops++ {
		text := collapseWhitespace(prev.Text())
		if prev.Is(headingSelector) {
			if qi, ok := MatchQuality(text); ok {
				return qi.Quality, qi.Size, text
			}
		}
		prev = prev.Prev()
	}

	return "", "", ""
}

// groupTitle prefixes the heading text with the season unless the heading
// already mentions one.
func groupTitle(headingText, season string) string {
	if season != "" && !mentionsSeason(headingText) {
		return fmt.Sprintf("Season %s - %s", season, headingText)
	}
	return headingText
}

func sizeOrUnknown(size string) string {
	if strings.TrimSpace(size) == "" {
		return unknownSize
	}
	return size
}

// groupAccumulator merges groups by title+season and variants by
// quality+size, always deduplicating URLs within a variant.
type groupAccumulator struct {
	order  []string
	groups map[string]*models.DownloadGroup
}

func newGroupAccumulator() *groupAccumulator {
	return &groupAccumulator{groups: make(map[string]*models.DownloadGroup)}
}

func (a *groupAccumulator) add(title, season, quality, size, codec string, newLinks []models.DownloadLink) {
	if len(newLinks) == 0 {
		return
	}

	key := title + "|" + season
	group, ok := a.groups[key]
	if !ok {
		group = &models.DownloadGroup{Title: title, Season: season}
		a.groups[key] = group
		a.order = append(a.order, key)
	}

	var variant *models.QualityVariant
	for i := range group.QualityVariants {
		v := &group.QualityVariants[i]
		if v.Quality == quality && v.Size == size {
			variant = v
			break
		}
	}
	if variant == nil {
		group.QualityVariants = append(group.QualityVariants, models.QualityVariant{
			Quality: quality,
			Size:    size,
		})
		variant = &group.QualityVariants[len(group.QualityVariants)-1]
	}

	if variant.Codec == "" {
		variant.Codec = codec
	}

	variant.Links = links.DedupeLinks(append(variant.Links, newLinks...))
}

func (a *groupAccumulator) empty() bool {
	for _, g := range a.groups {
		for _, v := range g.QualityVariants {
			if len(v.Links) > 0 {
				return false
			}
		}
	}
	return true
}

func (a *groupAccumulator) result() []models.DownloadGroup {
	out := make([]models.DownloadGroup, 0, len(a.order))
	for _, key := range a.order {
		g := a.groups[key]
		if len(g.QualityVariants) == 0 {
			continue
		}
		// Best quality first; unrecognized tiers keep document order at
		// the back.
		sort.SliceStable(g.QualityVariants, func(i, j int) bool {
			return qualityRank(g.QualityVariants[i].Quality) < qualityRank(g.QualityVariants[j].Quality)
		})
		out = append(out, *g)
	}
	return out
}

func qualityRank(quality string) int {
	for i, q := range constants.DefaultQualities {
		if q == quality {
			return i
		}
	}
	return len(constants.DefaultQualities)
}
