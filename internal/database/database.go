// Package database provides document persistence using BoltDB.
package database

import (
	"time"

	"github.com/netvlyx/netvlyx/internal/models"
)

// TMDBCache represents cached metadata lookups keyed by external content ID.
type TMDBCache struct {
	IMDBId      string
	ContentType string // "movie" or "series"
	Rating      string
	Poster      string
	Overview    string
	Cast        []string
	TrailerKey  string
	CreatedAt   time.Time
}

// Database defines the interface for data persistence operations.
type Database interface {
	// GetCachedTMDB retrieves cached TMDB data by IMDB ID
	GetCachedTMDB(imdbID string) (*TMDBCache, error)
	// StoreTMDBCache stores TMDB metadata
	StoreTMDBCache(cache *TMDBCache) error

	// StoreBugReport persists a public bug submission
	StoreBugReport(report *models.BugReport) error
	// GetBugReports retrieves all bug reports, newest first
	GetBugReports() ([]models.BugReport, error)
	// UpdateBugReportStatus transitions a report's status
	UpdateBugReportStatus(id, status string) error
	// ClearBugReports removes every bug report (explicit admin flow only)
	ClearBugReports() (int, error)

	// StoreFeedback persists a public feedback review
	StoreFeedback(review *models.FeedbackReview) error
	// GetFeedback retrieves all feedback reviews, newest first
	GetFeedback() ([]models.FeedbackReview, error)
	// UpdateFeedbackStatus transitions a review's status
	UpdateFeedbackStatus(id, status string) error

	// StoreVisitorHit records one tracked page view
	StoreVisitorHit(hit *models.VisitorHit) error
	// GetVisitorHits retrieves hits newer than the given time
	GetVisitorHits(since time.Time) ([]models.VisitorHit, error)

	// Close closes the database connection
	Close() error
}
