package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/netvlyx/netvlyx/internal/database"
	"github.com/netvlyx/netvlyx/internal/errors"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/pkg/logger"
)

const statsWindow = 30 * 24 * time.Hour

// Visitors records page views and aggregates them for the admin stats view.
type Visitors struct {
	db     database.Database
	logger logger.Logger
}

func NewVisitors(db database.Database, log logger.Logger) *Visitors {
	return &Visitors{db: db, logger: log}
}

func (v *Visitors) RecordHit(path, referrer, userAgent string) error {
	if path == "" {
		path = "/"
	}
	hit := &models.VisitorHit{
		ID:        uuid.NewString(),
		Path:      path,
		Referrer:  referrer,
		UserAgent: userAgent,
		Timestamp: time.Now(),
	}
	if err := v.db.StoreVisitorHit(hit); err != nil {
		return errors.NewStoreError("store visitor hit", err)
	}
	return nil
}

// Stats aggregates the last 30 days of hits by path and by day.
func (v *Visitors) Stats() (*models.VisitorStats, error) {
	hits, err := v.db.GetVisitorHits(time.Now().Add(-statsWindow))
	if err != nil {
		return nil, errors.NewStoreError("load visitor hits", err)
	}

	stats := &models.VisitorStats{
		TotalHits:   len(hits),
		HitsPerPath: make(map[string]int),
		HitsPerDay:  make(map[string]int),
	}
	for _, h := range hits {
		stats.HitsPerPath[h.Path]++
		stats.HitsPerDay[h.Timestamp.Format("2006-01-02")]++
	}
	return stats, nil
}
