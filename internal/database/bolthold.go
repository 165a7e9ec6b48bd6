package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/timshannon/bolthold"

	"github.com/netvlyx/netvlyx/internal/models"
)

const (
	// Default database file permissions
	dbFileMode = 0600
	dbDirMode  = 0755

	// Default database filename
	defaultDBFile = "netvlyx.db"
)

// BoltDB implements the Database interface using BoltDB.
type BoltDB struct {
	store *bolthold.Store
}

// BoltTMDBCache is the BoltDB-specific structure for TMDB cache storage.
type BoltTMDBCache struct {
	IMDBId      string `boltholdKey:"IMDBId"`
	ContentType string
	Rating      string
	Poster      string
	Overview    string
	Cast        []string
	TrailerKey  string
	CreatedAt   time.Time
}

// BoltBugReport is the BoltDB-specific structure for bug report storage.
type BoltBugReport struct {
	ID          string `boltholdKey:"ID"`
	Email       string
	PageURL     string
	Description string
	Status      string
	CreatedAt   time.Time
}

// BoltFeedback is the BoltDB-specific structure for feedback storage.
type BoltFeedback struct {
	ID        string `boltholdKey:"ID"`
	Email     string
	Rating    int
	Message   string
	Status    string
	CreatedAt time.Time
}

// BoltVisitorHit is the BoltDB-specific structure for visitor tracking.
type BoltVisitorHit struct {
	ID        string `boltholdKey:"ID"`
	Path      string
	Referrer  string
	UserAgent string
	Timestamp time.Time
}

// NewBolt creates a new BoltDB database instance.
// If dbPath is empty, uses the default database file in current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	// Ensure database directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := bolthold.Open(dbPath, dbFileMode, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	return &BoltDB{store: store}, nil
}

// Close closes the database connection.
func (db *BoltDB) Close() error {
	return db.store.Close()
}

// GetCachedTMDB retrieves cached TMDB data by IMDB ID.
// Returns nil if not found, without error.
func (db *BoltDB) GetCachedTMDB(imdbID string) (*TMDBCache, error) {
	var cached BoltTMDBCache
	err := db.store.Get(imdbID, &cached)
	if err == bolthold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get TMDB cache: %w", err)
	}

	return &TMDBCache{
		IMDBId:      cached.IMDBId,
		ContentType: cached.ContentType,
		Rating:      cached.Rating,
		Poster:      cached.Poster,
		Overview:    cached.Overview,
		Cast:        cached.Cast,
		TrailerKey:  cached.TrailerKey,
		CreatedAt:   cached.CreatedAt,
	}, nil
}

// StoreTMDBCache stores TMDB metadata in the database.
// Updates existing entries or creates new ones.
func (db *BoltDB) StoreTMDBCache(cache *TMDBCache) error {
	boltCache := &BoltTMDBCache{
		IMDBId:      cache.IMDBId,
		ContentType: cache.ContentType,
		Rating:      cache.Rating,
		Poster:      cache.Poster,
		Overview:    cache.Overview,
		Cast:        cache.Cast,
		TrailerKey:  cache.TrailerKey,
		CreatedAt:   time.Now(),
	}

	if err := db.store.Upsert(cache.IMDBId, boltCache); err != nil {
		return fmt.Errorf("failed to store TMDB cache: %w", err)
	}

	return nil
}

// StoreBugReport persists a bug report document.
func (db *BoltDB) StoreBugReport(report *models.BugReport) error {
	boltReport := &BoltBugReport{
		ID:          report.ID,
		Email:       report.Email,
		PageURL:     report.PageURL,
		Description: report.Description,
		Status:      report.Status,
		CreatedAt:   report.CreatedAt,
	}

	if err := db.store.Insert(report.ID, boltReport); err != nil {
		return fmt.Errorf("failed to store bug report: %w", err)
	}

	return nil
}

// GetBugReports retrieves all bug reports, newest first.
func (db *BoltDB) GetBugReports() ([]models.BugReport, error) {
	var boltReports []BoltBugReport
	if err := db.store.Find(&boltReports, nil); err != nil {
		return nil, fmt.Errorf("failed to get bug reports: %w", err)
	}

	reports := make([]models.BugReport, len(boltReports))
	for i, br := range boltReports {
		reports[i] = models.BugReport{
			ID:          br.ID,
			Email:       br.Email,
			PageURL:     br.PageURL,
			Description: br.Description,
			Status:      br.Status,
			CreatedAt:   br.CreatedAt,
		}
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})

	return reports, nil
}

// UpdateBugReportStatus transitions a report's status.
// Returns bolthold.ErrNotFound if the report doesn't exist.
func (db *BoltDB) UpdateBugReportStatus(id, status string) error {
	var report BoltBugReport
	if err := db.store.Get(id, &report); err != nil {
		return fmt.Errorf("failed to load bug report: %w", err)
	}

	report.Status = status
	if err := db.store.Update(id, &report); err != nil {
		return fmt.Errorf("failed to update bug report: %w", err)
	}

	return nil
}

// ClearBugReports removes every bug report and returns how many were deleted.
// Only the explicit multi-step admin flow calls this.
func (db *BoltDB) ClearBugReports() (int, error) {
	var boltReports []BoltBugReport
	if err := db.store.Find(&boltReports, nil); err != nil {
		return 0, fmt.Errorf("failed to enumerate bug reports: %w", err)
	}

	for _, br := range boltReports {
		if err := db.store.Delete(br.ID, BoltBugReport{}); err != nil && err != bolthold.ErrNotFound {
			return 0, fmt.Errorf("failed to delete bug report %s: %w", br.ID, err)
		}
	}

	return len(boltReports), nil
}

// StoreFeedback persists a feedback review document.
func (db *BoltDB) StoreFeedback(review *models.FeedbackReview) error {
	boltReview := &BoltFeedback{
		ID:        review.ID,
		Email:     review.Email,
		Rating:    review.Rating,
		Message:   review.Message,
		Status:    review.Status,
		CreatedAt: review.CreatedAt,
	}

	if err := db.store.Insert(review.ID, boltReview); err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	return nil
}

// GetFeedback retrieves all feedback reviews, newest first.
func (db *BoltDB) GetFeedback() ([]models.FeedbackReview, error) {
	var boltReviews []BoltFeedback
	if err := db.store.Find(&boltReviews, nil); err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	reviews := make([]models.FeedbackReview, len(boltReviews))
	for i, bf := range boltReviews {
		reviews[i] = models.FeedbackReview{
			ID:        bf.ID,
			Email:     bf.Email,
			Rating:    bf.Rating,
			Message:   bf.Message,
			Status:    bf.Status,
			CreatedAt: bf.CreatedAt,
		}
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	return reviews, nil
}

// UpdateFeedbackStatus transitions a review's status.
func (db *BoltDB) UpdateFeedbackStatus(id, status string) error {
	var review BoltFeedback
	if err := db.store.Get(id, &review); err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}

	review.Status = status
	if err := db.store.Update(id, &review); err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}

	return nil
}

// StoreVisitorHit records one tracked page view.
func (db *BoltDB) StoreVisitorHit(hit *models.VisitorHit) error {
	boltHit := &BoltVisitorHit{
		ID:        hit.ID,
		Path:      hit.Path,
		Referrer:  hit.Referrer,
		UserAgent: hit.UserAgent,
		Timestamp: hit.Timestamp,
	}

	if err := db.store.Insert(hit.ID, boltHit); err != nil {
		return fmt.Errorf("failed to store visitor hit: %w", err)
	}

	return nil
}

// GetVisitorHits retrieves hits newer than the given time.
func (db *BoltDB) GetVisitorHits(since time.Time) ([]models.VisitorHit, error) {
	var boltHits []BoltVisitorHit
	err := db.store.Find(&boltHits, bolthold.Where("Timestamp").Gt(since))
	if err != nil {
		return nil, fmt.Errorf("failed to get visitor hits: %w", err)
	}

	hits := make([]models.VisitorHit, len(boltHits))
	for i, bh := range boltHits {
		hits[i] = models.VisitorHit{
			ID:        bh.ID,
			Path:      bh.Path,
			Referrer:  bh.Referrer,
			UserAgent: bh.UserAgent,
			Timestamp: bh.Timestamp,
		}
	}

	return hits, nil
}
