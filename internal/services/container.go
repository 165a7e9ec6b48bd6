// Package services provides the dependency injection container for
// application services.
package services

import (
	"context"

	"github.com/netvlyx/netvlyx/internal/cache"
	"github.com/netvlyx/netvlyx/internal/database"
	"github.com/netvlyx/netvlyx/internal/links"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	TMDB       TMDBService
	Extractor  ExtractorService
	Reports    *Reports
	Visitors   *Visitors
	Classifier *links.Classifier
	Cache      *cache.LRUCache
	DB         database.Database
	Logger     logger.Logger
}

// TMDBService defines the metadata lookup operations.
type TMDBService interface {
	GetMeta(imdbID string) (*models.MetaInfo, error)
}

// ExtractorService defines the page extraction operations.
type ExtractorService interface {
	ExtractContent(ctx context.Context, pageURL, templateName string, debug bool) (*models.ContentRecord, error)
	ExtractEpisodes(ctx context.Context, pageURL string, debug bool) (*models.EpisodeResponse, error)
}
