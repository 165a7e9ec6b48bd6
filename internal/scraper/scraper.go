package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/netvlyx/netvlyx/internal/links"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/pkg/logger"
)

const (
	maxSampleHeadings = 8
	maxSampleLinks    = 8
)

// Scraper turns raw HTML into normalized content or episode records using a
// site template and the link classifier.
type Scraper struct {
	logger     logger.Logger
	classifier *links.Classifier
}

func New(log logger.Logger, cls *links.Classifier) *Scraper {
	return &Scraper{
		logger:     log,
		classifier: cls,
	}
}

// Parse builds a queryable document from raw HTML. goquery tolerates
// malformed markup, so errors here are limited to reader failures.
func (s *Scraper) Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractContent runs the full field and structural extraction for a page.
// A page yielding zero links is still a valid result; DownloadGroups and
// Images are never nil.
func (s *Scraper) ExtractContent(doc *goquery.Document, tpl *Template, debug bool) *models.ContentRecord {
	pageText := doc.Text()

	title := ExtractTitle(doc, tpl)
	poster := ExtractPoster(doc, tpl)
	rating, ratingLink := ExtractRating(doc)
	groups := ExtractDownloadGroups(doc, tpl, s.classifier)

	record := &models.ContentRecord{
		Title:              title,
		PosterURL:          poster,
		ExternalRating:     rating,
		ExternalRatingLink: ratingLink,
		Metadata:           ExtractMetadata(pageText, tpl),
		Synopsis:           ExtractSynopsis(pageText, tpl),
		Images:             ExtractScreenshots(doc, tpl, poster),
		DownloadGroups:     groups,
	}
	if record.Images == nil {
		record.Images = []string{}
	}
	if record.DownloadGroups == nil {
		record.DownloadGroups = []models.DownloadGroup{}
	}

	s.logger.Debugf("scraper: template=%s title=%q groups=%d images=%d",
		tpl.Name, record.Title, len(record.DownloadGroups), len(record.Images))

	if debug {
		record.Debug = s.buildDebug(doc, tpl, flattenGroupLinks(groups))
	}

	return record
}

// ExtractEpisodeResponse runs episode extraction and wraps it in the API
// shape. Batch-season groups found on the same page are kept out of the
// per-episode lists by the classifier's URL filter.
func (s *Scraper) ExtractEpisodeResponse(doc *goquery.Document, tpl *Template, debug bool) *models.EpisodeResponse {
	episodes := ExtractEpisodes(doc, tpl, s.classifier)
	if episodes == nil {
		episodes = []models.EpisodeRecord{}
	}

	resp := &models.EpisodeResponse{
		Title:    ExtractTitle(doc, tpl),
		Type:     "series",
		Episodes: episodes,
	}

	// Season bundles on the same page are kept, minus any URL an episode
	// entry already holds.
	var batch []models.DownloadGroup
	for _, g := range ExtractDownloadGroups(doc, tpl, s.classifier) {
		if links.IsBatchTitle(g.Title) {
			batch = append(batch, g)
		}
	}
	resp.BatchGroups = links.FilterBatchAgainstEpisodes(batch, episodes)

	s.logger.Debugf("scraper: template=%s episodes=%d", tpl.Name, len(resp.Episodes))

	if debug {
		var assembled []models.DownloadLink
		for _, ep := range episodes {
			assembled = append(assembled, ep.DownloadLinks...)
		}
		resp.Debug = s.buildDebug(doc, tpl, assembled)
	}

	return resp
}

// buildDebug assembles the additive debug payload: selector hit counts and
// samples of what the structural pass saw, so a template mismatch can be
// diagnosed from the response alone. Assembled links are sampled when any
// exist; otherwise raw anchors are, since those show what the selectors
// missed.
func (s *Scraper) buildDebug(doc *goquery.Document, tpl *Template, assembled []models.DownloadLink) *models.DebugInfo {
	info := &models.DebugInfo{
		Template: tpl.Name,
		SelectorCounts: map[string]int{
			"headings": doc.Find(headingSelector).Length(),
			"anchors":  doc.Find("a[href]").Length(),
			"images":   doc.Find("img").Length(),
		},
	}
	for _, sel := range tpl.ButtonSelectors {
		info.SelectorCounts["buttons:"+sel] = doc.Find(sel).Length()
	}

	doc.Find(headingSelector).EachWithBreak(func(i int, h *goquery.Selection) bool {
		info.SampleHeadings = append(info.SampleHeadings, collapseWhitespace(h.Text()))
		return i < maxSampleHeadings-1
	})
	if len(assembled) > 0 {
		for i, l := range assembled {
			if i == maxSampleLinks {
				break
			}
			info.SampleLinks = append(info.SampleLinks, links.LinkSummary(l))
		}
	} else {
		doc.Find("a[href]").EachWithBreak(func(i int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			info.SampleLinks = append(info.SampleLinks, collapseWhitespace(a.Text())+" -> "+href)
			return i < maxSampleLinks-1
		})
		info.Note = "no links resolved; check template selectors against the sampled headings and anchors"
	}

	return info
}

func flattenGroupLinks(groups []models.DownloadGroup) []models.DownloadLink {
	var out []models.DownloadLink
	for _, g := range groups {
		for _, v := range g.QualityVariants {
			out = append(out, v.Links...)
		}
	}
	return out
}
