// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName        = "NetVlyx"
	AppVersion     = "1.0.0"
	AppDescription = "Media discovery backend that normalizes aggregator pages into structured download and stream links"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// Cache settings
	DefaultCacheSize = 2000
	DefaultCacheTTL  = 6 // hours

	// Rate limiting
	TMDBRateLimit         = 20 // requests per second
	TMDBRateBurst         = 5  // burst capacity
	ScrapeClientRateLimit = 5  // requests per second against the scrape service
	ScrapeClientRateBurst = 2  // burst capacity
)

// DefaultQualities lists recognized resolution tiers in order of preference.
var DefaultQualities = []string{
	"2160p",
	"4K",
	"1080p",
	"720p",
	"480p",
}
