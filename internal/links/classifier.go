// Package links classifies resolved download URLs into logical server names,
// validates candidates against the domain allow-list, rewrites known URL
// shapes onto the internal download-resolution route and removes duplicate
// entries across groupings.
package links

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/cehbz/torrentname"

	"github.com/netvlyx/netvlyx/internal/cache"
	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/models"
)

// serverRule maps URL substrings to a display server name. Rules are matched
// in order; more specific rules must come before their host-only fallback.
type serverRule struct {
	hostPart string
	pathPart string
	server   string
}

var serverRules = []serverRule{
	{"hubcloud", "/file/", "VlyxDrive"},
	{"hubcloud", "", "HubCloud"},
	{"vcloud", "", "V-Cloud"},
	{"gdflix", "", "GDFlix"},
	{"gdtot", "", "GDToT"},
	{"filepress", "", "FilePress"},
	{"filebee", "", "FileBee"},
	{"driveseed", "", "DriveSeed"},
	{"driveleech", "", "DriveLeech"},
	{"fastdl", "", "FastDL"},
	{"pixeldrain", "", "PixelDrain"},
	{"gofile", "", "GoFile"},
	{"streamtape", "", "Streamtape"},
	{"vidstream", "", "Vidstream"},
	{"hubstream", "", "HubStream"},
	{"mega.nz", "", "Mega"},
	{"drive.google.com", "", "Google Drive"},
	{"workers.dev", "", "Worker Stream"},
}

// DefaultServer is assigned when no rule matches an allow-listed URL.
const DefaultServer = "Direct Link"

var (
	// file-viewer shapes rewritten onto the internal /dl/ route
	fileViewerRegex = regexp.MustCompile(`(?i)/(?:file|drive|embed)/([A-Za-z0-9_-]{4,})`)

	streamingLabelRegex = regexp.MustCompile(`(?i)\b(watch|stream|online|play)\b`)
)

// AllowlistFunc reports whether a host is an acceptable download domain.
type AllowlistFunc func(host string) bool

// Classifier owns server classification and URL rewriting. The rewrite
// cache remembers viewer IDs so the /dl/ route can resolve them back.
type Classifier struct {
	allowed      AllowlistFunc
	rewriteCache *cache.LRUCache
}

// NewClassifier creates a Classifier. rewriteCache may be nil when the
// caller does not serve the internal redirect route.
func NewClassifier(allowed AllowlistFunc, rewriteCache *cache.LRUCache) *Classifier {
	return &Classifier{allowed: allowed, rewriteCache: rewriteCache}
}

// Classify maps a resolved URL to a logical server name.
func Classify(raw string) string {
	lower := strings.ToLower(raw)

	u, err := url.Parse(raw)
	path := ""
	host := lower
	if err == nil && u.Host != "" {
		host = strings.ToLower(u.Host)
		path = strings.ToLower(u.Path)
	}

	for _, rule := range serverRules {
		if !strings.Contains(host, rule.hostPart) && !strings.Contains(lower, rule.hostPart) {
			continue
		}
		if rule.pathPart != "" && !strings.Contains(path, rule.pathPart) {
			continue
		}
		return rule.server
	}

	return DefaultServer
}

var streamingServers = func() map[string]bool {
	m := make(map[string]bool, len(constants.StreamingServers))
	for _, s := range constants.StreamingServers {
		m[s] = true
	}
	return m
}()

// IsStreamingServer reports whether a classified server name serves playable
// streams rather than downloads.
func IsStreamingServer(server string) bool {
	return streamingServers[server]
}

// IsValidDownloadURL rejects placeholder links and anything outside the
// domain allow-list. Rejection here is the expected high-frequency case and
// is never surfaced as an error.
func (c *Classifier) IsValidDownloadURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "#" {
		return false
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return c.allowed(u.Host)
}

// Rewrite converts known file-viewer URL shapes into the internal
// download-resolution route so the presentation layer routes through one
// unified page. Unrecognized URLs pass through unchanged.
func (c *Classifier) Rewrite(raw string) string {
	m := fileViewerRegex.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}

	id := m[1]
	if c.rewriteCache != nil {
		c.rewriteCache.Set("dl:"+id, raw)
	}
	return "/dl/" + id
}

// ResolveRewritten returns the original third-party URL for a viewer ID
// previously rewritten by Rewrite.
func (c *Classifier) ResolveRewritten(id string) (string, bool) {
	if c.rewriteCache == nil {
		return "", false
	}
	v, ok := c.rewriteCache.Get("dl:" + id)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Build assembles a DownloadLink from a candidate anchor, or reports false
// when the candidate fails validation.
func (c *Classifier) Build(label, rawURL, season string) (models.DownloadLink, bool) {
	if !c.IsValidDownloadURL(rawURL) {
		return models.DownloadLink{}, false
	}

	server := Classify(rawURL)
	streaming := IsStreamingServer(server) || streamingLabelRegex.MatchString(label)

	status := models.LinkStatusActive
	if streaming {
		status = models.LinkStatusStream
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = server
	}

	return models.DownloadLink{
		Label:       label,
		URL:         c.Rewrite(rawURL),
		Server:      server,
		Season:      season,
		IsStreaming: streaming,
		Status:      status,
	}, true
}

// LabelInfo is quality/season information recovered from a release-style
// link label when the surrounding page context provides none.
type LabelInfo struct {
	Quality string
	Season  string
}

// ParseLabel runs a release-name parser over a link label. Labels on these
// pages frequently embed the original file name, which carries resolution
// and season markers the DOM context lost.
func ParseLabel(label string) LabelInfo {
	parsed := torrentname.Parse(label)
	if parsed == nil {
		return LabelInfo{}
	}

	info := LabelInfo{}
	if parsed.Resolution != "" {
		info.Quality = parsed.Resolution
	}
	if parsed.Season > 0 {
		info.Season = strconv.Itoa(parsed.Season)
	}
	return info
}

// DedupeLinks removes exact URL duplicates within one grouping while
// preserving order.
func DedupeLinks(links []models.DownloadLink) []models.DownloadLink {
	seen := make(map[string]bool, len(links))
	out := links[:0]
	for _, l := range links {
		if seen[l.URL] {
			continue
		}
		seen[l.URL] = true
		out = append(out, l)
	}
	return out
}

// ContainsURL reports whether a variant already carries the URL.
func ContainsURL(links []models.DownloadLink, url string) bool {
	for _, l := range links {
		if l.URL == url {
			return true
		}
	}
	return false
}

var batchTitleRegex = regexp.MustCompile(`(?i)\b(batch|complete|zip|pack|all episodes)\b`)

// IsBatchTitle reports whether a group title describes a batch/season bundle
// rather than episode-specific links.
func IsBatchTitle(title string) bool {
	return batchTitleRegex.MatchString(title)
}

// RemoveBatchDuplicates drops, from batch/complete groups, any URL that a
// more specific non-batch group already carries. The specific copy wins.
func RemoveBatchDuplicates(groups []models.DownloadGroup) []models.DownloadGroup {
	specific := make(map[string]bool)
	for _, g := range groups {
		if IsBatchTitle(g.Title) {
			continue
		}
		for _, v := range g.QualityVariants {
			for _, l := range v.Links {
				specific[l.URL] = true
			}
		}
	}

	if len(specific) == 0 {
		return groups
	}

	out := groups[:0]
	for _, g := range groups {
		if !IsBatchTitle(g.Title) {
			out = append(out, g)
			continue
		}

		var variants []models.QualityVariant
		for _, v := range g.QualityVariants {
			var kept []models.DownloadLink
			for _, l := range v.Links {
				if !specific[l.URL] {
					kept = append(kept, l)
				}
			}
			if len(kept) > 0 {
				v.Links = kept
				variants = append(variants, v)
			}
		}
		if len(variants) > 0 {
			g.QualityVariants = variants
			out = append(out, g)
		}
	}
	return out
}

// FilterBatchAgainstEpisodes removes, from batch groups, URLs already held
// by an episode-level record.
func FilterBatchAgainstEpisodes(groups []models.DownloadGroup, episodes []models.EpisodeRecord) []models.DownloadGroup {
	held := make(map[string]bool)
	for _, ep := range episodes {
		for _, l := range ep.DownloadLinks {
			held[l.URL] = true
		}
	}
	if len(held) == 0 {
		return groups
	}

	out := groups[:0]
	for _, g := range groups {
		var variants []models.QualityVariant
		for _, v := range g.QualityVariants {
			var kept []models.DownloadLink
			for _, l := range v.Links {
				if !held[l.URL] {
					kept = append(kept, l)
				}
			}
			if len(kept) > 0 {
				v.Links = kept
				variants = append(variants, v)
			}
		}
		if len(variants) > 0 {
			g.QualityVariants = variants
			out = append(out, g)
		}
	}
	return out
}

// LinkSummary renders one assembled link as a debug sample line.
func LinkSummary(l models.DownloadLink) string {
	return fmt.Sprintf("%s -> %s [%s]", l.Label, l.URL, l.Server)
}
