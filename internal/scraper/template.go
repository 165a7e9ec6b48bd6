// Package scraper turns fetched aggregator HTML into the normalized domain
// model: scalar metadata, screenshot galleries and download/stream links
// grouped by season and quality. One extraction engine serves every source
// site; per-site differences live in Template configuration objects.
package scraper

import (
	"net/url"
	"strings"
)

// Template describes one source-site family: which selectors locate its
// fields and which label vocabulary its metadata blocks use. Sites sharing a
// WordPress theme share a template.
type Template struct {
	Name  string
	Hosts []string

	TitleSelectors      []string
	PosterSelectors     []string
	ScreenshotSelectors []string
	ButtonSelectors     []string

	// Labels maps canonical metadata fields to the label variants the
	// site's info blocks use, e.g. "language" -> {"Language", "Audio"}.
	Labels map[string][]string

	// SynopsisLabels start a plot block; SectionStops end one.
	SynopsisLabels []string
	SectionStops   []string

	// EpisodeStyle marks templates whose pages list per-episode links
	// instead of quality sections.
	EpisodeStyle bool

	// EpisodeSectionMarkers locate a dedicated single-episode block.
	EpisodeSectionMarkers []string
}

var defaultLabels = map[string][]string{
	"language": {"Language", "Audio", "Language/Audio"},
	"year":     {"Released Year", "Release Year", "Year"},
	"quality":  {"Quality"},
	"size":     {"Size", "Total Size"},
	"format":   {"Format", "File Format"},
	"subtitle": {"Subtitle", "Subtitles"},
}

var defaultSectionStops = []string{
	"Screenshots",
	"Screen-Shots",
	"Download Links",
	"Download Now",
	"Winding Up",
}

// templates is the registry, ordered so host matching prefers the more
// specific entries. The last entry is the generic fallback.
var templates = []*Template{
	{
		Name:  "vega",
		Hosts: []string{"vegamovies", "rogmovies", "luxmovies"},
		TitleSelectors: []string{
			".entry-content h3 span strong",
			".post-inner h1.entry-title",
			".entry-title",
		},
		PosterSelectors: []string{
			".entry-content img.aligncenter",
			".entry-content p img",
			".post-thumbnail img",
		},
		ScreenshotSelectors: []string{
			".entry-content p img",
			".entry-content figure img",
			".entry-content img",
		},
		ButtonSelectors: []string{
			"a.maxbutton",
			"a.maxbutton-1",
			"a.dl",
			"p > a > button",
		},
		Labels:         defaultLabels,
		SynopsisLabels: []string{"Movie-SYNOPSIS/PLOT", "SYNOPSIS/PLOT", "Synopsis", "Plot"},
		SectionStops:   defaultSectionStops,
	},
	{
		Name:  "hdhub",
		Hosts: []string{"hdhub4u", "hdhub"},
		TitleSelectors: []string{
			".page-body h2 strong",
			"h1.entry-title",
			".entry-title",
		},
		PosterSelectors: []string{
			".page-body img.alignnone",
			".page-body p img",
			".entry-content img",
		},
		ScreenshotSelectors: []string{
			".page-body img",
			".entry-content img",
		},
		ButtonSelectors: []string{
			"h4 a",
			"h3 a",
			"a > button",
		},
		Labels:                defaultLabels,
		SynopsisLabels:        []string{"Storyline", "Synopsis", "Plot"},
		SectionStops:          defaultSectionStops,
		EpisodeStyle:          true,
		EpisodeSectionMarkers: []string{"single episode", "episode wise", "episode links"},
	},
	{
		Name:  "generic",
		Hosts: nil,
		TitleSelectors: []string{
			"h1.entry-title",
			".entry-title",
			"h1",
		},
		PosterSelectors: []string{
			".entry-content img",
			"article img",
			"img",
		},
		ScreenshotSelectors: []string{
			".entry-content img",
			"article img",
		},
		ButtonSelectors: []string{
			"a.maxbutton",
			"a.btn",
			"a > button",
		},
		Labels:         defaultLabels,
		SynopsisLabels: []string{"Synopsis", "Plot", "Storyline"},
		SectionStops:   defaultSectionStops,
	},
}

// TemplateByName returns a registered template, or nil.
func TemplateByName(name string) *Template {
	for _, t := range templates {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TemplateForURL picks the template whose host list matches the page URL.
// Unknown hosts get the generic template.
func TemplateForURL(raw string) *Template {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return TemplateByName("generic")
	}

	host := strings.ToLower(u.Host)
	for _, t := range templates {
		for _, h := range t.Hosts {
			if strings.Contains(host, h) {
				return t
			}
		}
	}
	return TemplateByName("generic")
}
