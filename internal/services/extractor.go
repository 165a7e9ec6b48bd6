package services

import (
	"context"

	"github.com/netvlyx/netvlyx/internal/cache"
	"github.com/netvlyx/netvlyx/internal/errors"
	"github.com/netvlyx/netvlyx/internal/fetch"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/internal/scraper"
	"github.com/netvlyx/netvlyx/pkg/logger"
)

// Extractor coordinates the fetch chain, the HTML parser and the response
// assembly for one source page. Successful non-debug results are cached in
// memory so repeated requests for the same page skip the network.
type Extractor struct {
	fetcher *fetch.Fetcher
	scraper *scraper.Scraper
	cache   *cache.LRUCache
	logger  logger.Logger
}

func NewExtractor(f *fetch.Fetcher, s *scraper.Scraper, c *cache.LRUCache, log logger.Logger) *Extractor {
	return &Extractor{
		fetcher: f,
		scraper: s,
		cache:   c,
		logger:  log,
	}
}

// ExtractContent fetches and parses a page into a content record. The
// template is resolved from the override name when given, otherwise from
// the page host. Debug requests bypass the cache so the fetch attempt log
// reflects the actual request.
func (e *Extractor) ExtractContent(ctx context.Context, pageURL, templateName string, debug bool) (*models.ContentRecord, error) {
	if err := fetch.ValidateURL(pageURL); err != nil {
		return nil, err
	}

	tpl := e.resolveTemplate(pageURL, templateName)
	cacheKey := "extract:" + tpl.Name + ":" + pageURL

	if !debug {
		if data, found := e.cache.Get(cacheKey); found {
			return data.(*models.ContentRecord), nil
		}
	}

	result, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := e.scraper.Parse(result.HTML)
	if err != nil {
		return nil, errors.NewFetchExhaustedError([]string{result.Strategy}, err)
	}

	record := e.scraper.ExtractContent(doc, tpl, debug)
	if debug && record.Debug != nil {
		record.Debug.StrategyUsed = result.Strategy
		record.Debug.FetchAttempts = result.Attempts
	}

	if !debug {
		e.cache.Set(cacheKey, record)
	}
	return record, nil
}

// ExtractEpisodes fetches and parses a page into the episode response
// shape. Batch season groups on the same page never leak into the
// per-episode link lists.
func (e *Extractor) ExtractEpisodes(ctx context.Context, pageURL string, debug bool) (*models.EpisodeResponse, error) {
	if err := fetch.ValidateURL(pageURL); err != nil {
		return nil, err
	}

	tpl := e.resolveTemplate(pageURL, "")
	cacheKey := "episodes:" + tpl.Name + ":" + pageURL

	if !debug {
		if data, found := e.cache.Get(cacheKey); found {
			return data.(*models.EpisodeResponse), nil
		}
	}

	result, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := e.scraper.Parse(result.HTML)
	if err != nil {
		return nil, errors.NewFetchExhaustedError([]string{result.Strategy}, err)
	}

	resp := e.scraper.ExtractEpisodeResponse(doc, tpl, debug)
	if debug && resp.Debug != nil {
		resp.Debug.StrategyUsed = result.Strategy
		resp.Debug.FetchAttempts = result.Attempts
	}

	if !debug {
		e.cache.Set(cacheKey, resp)
	}
	return resp, nil
}

func (e *Extractor) resolveTemplate(pageURL, templateName string) *scraper.Template {
	if templateName != "" {
		if tpl := scraper.TemplateByName(templateName); tpl != nil {
			return tpl
		}
		e.logger.Warnf("extractor: unknown template %q, falling back to host match", templateName)
	}
	return scraper.TemplateForURL(pageURL)
}
