// Package constants defines timeout values and retry limits used throughout the application.
// These constants help maintain consistent behavior and make the codebase more maintainable.
package constants

import "time"

// Timeout constants for various operations
const (
	// Request timeout for an entire extraction request
	RequestTimeout = 90 * time.Second

	// Per-strategy fetch timeouts
	DirectFetchTimeout = 15 * time.Second
	ProxyFetchTimeout  = 20 * time.Second
	ScrapeFetchTimeout = 30 * time.Second
	MetaLookupTimeout  = 10 * time.Second

	// Backward sibling search depth when attributing seasons to headings
	MaxBackwardSearchHops = 10

	// Following sibling elements scanned for episode links
	MaxEpisodeSiblingScan = 3
)
