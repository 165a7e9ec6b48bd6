// Package fetch implements the fallback chain that turns a source-page URL
// into raw HTML: direct requests rotating realistic browser header profiles,
// third-party CORS proxies in fixed priority order, then an external scraping
// microservice for the domains that need it. Strategies run strictly in
// order; the first plausible HTML document wins.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/errors"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/pkg/httputil"
	"github.com/netvlyx/netvlyx/pkg/logger"
	"github.com/netvlyx/netvlyx/pkg/ratelimiter"
)

const (
	maxRedirectHops = 5

	// Bodies smaller than this are never a real aggregator page
	minPlausibleHTML = 512
)

// Result is the outcome of a successful fetch.
type Result struct {
	HTML     string
	Strategy string
	Attempts []models.FetchAttempt
}

// Fetcher runs the strategy chain. It is stateless across requests; the
// proxy endpoints and header profiles are read-only configuration.
type Fetcher struct {
	client         *http.Client
	proxyEndpoints []string
	headerProfiles []HeaderProfile
	scrapeURL      string
	scrapeDomains  []string
	scrapeLimiter  *ratelimiter.TokenBucket
	logger         logger.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient overrides the HTTP client used for every attempt.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithProxyEndpoints overrides the CORS proxy chain. Each entry must carry a
// %s placeholder for the URL-encoded target.
func WithProxyEndpoints(endpoints []string) Option {
	return func(f *Fetcher) { f.proxyEndpoints = endpoints }
}

// WithHeaderProfiles overrides the rotating browser header bundles.
func WithHeaderProfiles(profiles []HeaderProfile) Option {
	return func(f *Fetcher) { f.headerProfiles = profiles }
}

// WithScrapeService enables the external scraping microservice fallback for
// the given target domains. A nil domain list keeps the defaults.
func WithScrapeService(baseURL string, domains []string) Option {
	return func(f *Fetcher) {
		f.scrapeURL = strings.TrimSuffix(baseURL, "/")
		if domains != nil {
			f.scrapeDomains = domains
		}
	}
}

// New creates a Fetcher with the default strategy chain.
func New(log logger.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:         httputil.NewNoRedirectClient(constants.ScrapeFetchTimeout),
		proxyEndpoints: constants.CORSProxyTemplates,
		headerProfiles: DefaultHeaderProfiles,
		scrapeDomains:  constants.ScrapeServiceDomains,
		scrapeLimiter:  ratelimiter.NewTokenBucket(constants.ScrapeClientRateLimit, constants.ScrapeClientRateBurst),
		logger:         log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ValidateURL rejects anything that is not a plain http(s) URL before a
// single network call is made.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewInvalidInputURLError(raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewInvalidInputURLError(raw)
	}
	if u.Host == "" {
		return errors.NewInvalidInputURLError(raw)
	}
	return nil
}

// Fetch tries every strategy in priority order and returns the first
// plausible HTML document. When the chain is exhausted it returns a single
// aggregated error naming the attempted strategies and the last failure.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*Result, error) {
	if err := ValidateURL(target); err != nil {
		return nil, err
	}

	var (
		attempts []models.FetchAttempt
		tried    []string
		lastErr  error
	)

	for _, s := range f.strategies(target) {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		html, attempt, err := f.attempt(attemptCtx, s)
		cancel()

		attempts = append(attempts, attempt)
		tried = append(tried, s.name)

		if err != nil {
			lastErr = err
			f.logger.Debugf("[Fetch] strategy %s failed for %s: %v", s.name, target, err)
			continue
		}

		f.logger.Infof("[Fetch] strategy %s succeeded for %s (%d bytes)", s.name, target, len(html))
		return &Result{HTML: html, Strategy: s.name, Attempts: attempts}, nil
	}

	return &Result{Attempts: attempts}, errors.NewFetchExhaustedError(tried, lastErr)
}

// strategy is one prepared attempt: the actual URL to request and the
// headers to send.
type strategy struct {
	name       string
	requestURL string
	headers    map[string]string
	timeout    time.Duration
	rateLimit  *ratelimiter.TokenBucket
}

// strategies builds the ordered attempt list for a target URL.
func (f *Fetcher) strategies(target string) []strategy {
	var out []strategy

	for _, profile := range f.headerProfiles {
		out = append(out, strategy{
			name:       "direct/" + profile.Name,
			requestURL: target,
			headers:    profile.Headers,
			timeout:    constants.DirectFetchTimeout,
		})
	}

	// Each proxy wraps the target per its own encoding convention; all of
	// them take the encoded URL through the %s placeholder. Proxies reuse
	// the first profile's headers when one is configured.
	var proxyHeaders map[string]string
	if len(f.headerProfiles) > 0 {
		proxyHeaders = f.headerProfiles[0].Headers
	}
	encoded := url.QueryEscape(target)
	for _, tpl := range f.proxyEndpoints {
		out = append(out, strategy{
			name:       "proxy/" + proxyLabel(tpl),
			requestURL: fmt.Sprintf(tpl, encoded),
			headers:    proxyHeaders,
			timeout:    constants.ProxyFetchTimeout,
		})
	}

	if f.scrapeURL != "" && f.domainUsesScrapeService(target) {
		out = append(out, strategy{
			name:       "scrape-service",
			requestURL: fmt.Sprintf("%s/scrape?url=%s", f.scrapeURL, encoded),
			headers:    nil,
			timeout:    constants.ScrapeFetchTimeout,
			rateLimit:  f.scrapeLimiter,
		})
	}

	return out
}

func (f *Fetcher) domainUsesScrapeService(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, d := range f.scrapeDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

// attempt performs one strategy request, following redirects manually so a
// missing Location header can be retried with the trailing slash toggled.
func (f *Fetcher) attempt(ctx context.Context, s strategy) (string, models.FetchAttempt, error) {
	if s.rateLimit != nil {
		s.rateLimit.Wait()
	}

	attempt := models.FetchAttempt{Strategy: s.name, URL: s.requestURL}

	currentURL := s.requestURL
	slashToggled := false

	for hop := 0; hop <= maxRedirectHops; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, currentURL, nil)
		if err != nil {
			attempt.Error = err.Error()
			return "", attempt, err
		}
		for k, v := range s.headers {
			req.Header.Set(k, v)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			attempt.Error = err.Error()
			return "", attempt, err
		}

		attempt.StatusCode = resp.StatusCode

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			resp.Body.Close()
			attempt.Redirected = true

			if loc == "" {
				// Some hosts answer an empty redirect when the path's
				// trailing slash is wrong; toggle it once before giving up.
				if slashToggled {
					err := fmt.Errorf("redirect without Location header at %s", currentURL)
					attempt.Error = err.Error()
					return "", attempt, err
				}
				slashToggled = true
				currentURL = toggleTrailingSlash(currentURL)
				continue
			}

			next, err := url.Parse(loc)
			if err != nil {
				attempt.Error = err.Error()
				return "", attempt, err
			}
			base, _ := url.Parse(currentURL)
			currentURL = base.ResolveReference(next).String()
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			err := fmt.Errorf("status %d from %s", resp.StatusCode, s.name)
			attempt.Error = err.Error()
			return "", attempt, err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			attempt.Error = err.Error()
			return "", attempt, err
		}

		html := string(body)
		if err := checkPlausibleHTML(html); err != nil {
			attempt.Error = err.Error()
			return "", attempt, err
		}

		return html, attempt, nil
	}

	err := fmt.Errorf("too many redirects for %s", s.requestURL)
	attempt.Error = err.Error()
	return "", attempt, err
}

// checkPlausibleHTML rejects bot-challenge interstitials and bodies too
// small to be a real page.
func checkPlausibleHTML(html string) error {
	if len(html) < minPlausibleHTML {
		return fmt.Errorf("response too small to be a page (%d bytes)", len(html))
	}
	for _, sig := range constants.BotChallengeSignatures {
		if strings.Contains(html, sig) {
			return fmt.Errorf("bot challenge page detected (%q)", sig)
		}
	}
	return nil
}

func toggleTrailingSlash(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	} else {
		u.Path += "/"
	}
	return u.String()
}

// proxyLabel derives a short strategy name from a proxy URL template.
func proxyLabel(tpl string) string {
	u, err := url.Parse(strings.SplitN(tpl, "%s", 2)[0])
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
