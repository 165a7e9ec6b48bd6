package models

// LinkStatus classifies the usability of a download link.
type LinkStatus string

const (
	LinkStatusActive  LinkStatus = "Active"
	LinkStatusStream  LinkStatus = "Stream"
	LinkStatusUnknown LinkStatus = "Unknown"
)

// DownloadLink is a single resolved link with its classified server.
// URL may point at an internal redirect route rather than the third-party host.
type DownloadLink struct {
	Label       string     `json:"label"`
	URL         string     `json:"url"`
	Server      string     `json:"server"`
	Season      string     `json:"season,omitempty"`
	Quality     string     `json:"quality,omitempty"`
	IsStreaming bool       `json:"isStreaming"`
	Status      LinkStatus `json:"status"`
}

// QualityVariant groups links of one resolution tier and size.
type QualityVariant struct {
	Quality string         `json:"quality"`
	Size    string         `json:"size"`
	Codec   string         `json:"codec,omitempty"`
	Links   []DownloadLink `json:"links"`
}

// DownloadGroup represents one logical section of the source page,
// e.g. "Season 2 - 720p Links".
type DownloadGroup struct {
	Title           string           `json:"title"`
	Season          string           `json:"season,omitempty"`
	QualityVariants []QualityVariant `json:"qualityVariants"`
}

// Metadata holds scalar fields scraped from label-anchored text.
// All fields are optional; absent labels stay empty.
type Metadata struct {
	Language    string `json:"language,omitempty"`
	ReleaseYear string `json:"releaseYear,omitempty"`
	Quality     string `json:"quality,omitempty"`
	Size        string `json:"size,omitempty"`
	Format      string `json:"format,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
}

// ContentRecord is the normalized result of parsing one source page.
// A record with zero resolvable links is valid; DownloadGroups is then empty,
// never null.
type ContentRecord struct {
	Title              string          `json:"title"`
	PosterURL          string          `json:"posterUrl,omitempty"`
	ExternalRating     string          `json:"externalRating,omitempty"`
	ExternalRatingLink string          `json:"externalRatingLink,omitempty"`
	Metadata           Metadata        `json:"metadata"`
	Synopsis           string          `json:"synopsis,omitempty"`
	Images             []string        `json:"images"`
	DownloadGroups     []DownloadGroup `json:"downloadGroups"`
	Debug              *DebugInfo      `json:"debug,omitempty"`
}

// EpisodeRecord is the alternate shape for per-episode source templates.
type EpisodeRecord struct {
	EpisodeNumber int            `json:"episodeNumber"`
	Title         string         `json:"title,omitempty"`
	Description   string         `json:"description,omitempty"`
	Duration      string         `json:"duration,omitempty"`
	DownloadLinks []DownloadLink `json:"downloadLinks"`
}

// EpisodeResponse is the API shape for episode-template extractions.
// BatchGroups carries whole-season bundles found on the same page; any URL
// already held by an episode entry is removed from them first.
type EpisodeResponse struct {
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	Episodes    []EpisodeRecord `json:"episodes"`
	BatchGroups []DownloadGroup `json:"batchGroups,omitempty"`
	Debug       *DebugInfo      `json:"debug,omitempty"`
}

// DegradedEpisodeResponse preserves the expected response shape for a
// degraded UI when an episode-template extraction fails outright.
type DegradedEpisodeResponse struct {
	Error string       `json:"error"`
	Type  string       `json:"type"`
	Title string       `json:"title"`
	Movie MovieServers `json:"movie"`
}

type MovieServers struct {
	Servers []DownloadLink `json:"servers"`
}

// FetchAttempt records one fetch strategy attempt for debug output.
type FetchAttempt struct {
	Strategy   string `json:"strategy"`
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
	Redirected bool   `json:"redirected,omitempty"`
}

// DebugInfo is the additive sibling field returned when debug=1.
// It never alters the primary result shape.
type DebugInfo struct {
	Template       string         `json:"template"`
	StrategyUsed   string         `json:"strategyUsed"`
	FetchAttempts  []FetchAttempt `json:"fetchAttempts"`
	SelectorCounts map[string]int `json:"selectorCounts,omitempty"`
	SampleHeadings []string       `json:"sampleHeadings,omitempty"`
	SampleLinks    []string       `json:"sampleLinks,omitempty"`
	Note           string         `json:"note,omitempty"`
}

// MetaInfo is the external metadata lookup shape (rating/poster enrichment).
type MetaInfo struct {
	Rating      string   `json:"rating,omitempty"`
	Poster      string   `json:"poster,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	TrailerKey  string   `json:"trailerKey,omitempty"`
	ContentType string   `json:"contentType,omitempty"`
}

// ErrorResponse is the uniform hard-failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}
