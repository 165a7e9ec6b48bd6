package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/netvlyx/netvlyx/internal/cache"
	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/database"
	"github.com/netvlyx/netvlyx/internal/errors"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/pkg/httputil"
	"github.com/netvlyx/netvlyx/pkg/logger"
	"github.com/netvlyx/netvlyx/pkg/ratelimiter"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// TMDB resolves IMDb identifiers to ratings, posters, cast and trailer keys.
// Lookups go through the in-memory LRU first, then the persistent cache,
// then the API behind a token bucket.
type TMDB struct {
	apiKey      string
	cache       *cache.LRUCache
	db          database.Database
	cacheTTL    time.Duration
	rateLimiter *ratelimiter.TokenBucket
	httpClient  *http.Client
	logger      logger.Logger
}

func NewTMDB(apiKey string, c *cache.LRUCache, db database.Database, cacheTTL time.Duration, log logger.Logger) *TMDB {
	return &TMDB{
		apiKey:      apiKey,
		cache:       c,
		db:          db,
		cacheTTL:    cacheTTL,
		rateLimiter: ratelimiter.NewTokenBucket(constants.TMDBRateLimit, constants.TMDBRateBurst),
		httpClient:  httputil.NewHTTPClient(constants.MetaLookupTimeout),
		logger:      log,
	}
}

// GetMeta returns enrichment metadata for an IMDb identifier.
func (t *TMDB) GetMeta(imdbID string) (*models.MetaInfo, error) {
	cacheKey := "tmdb:" + imdbID

	if data, found := t.cache.Get(cacheKey); found {
		return data.(*models.MetaInfo), nil
	}

	if t.db != nil {
		if cached, err := t.db.GetCachedTMDB(imdbID); err == nil && cached != nil {
			if time.Since(cached.CreatedAt) < t.cacheTTL {
				meta := &models.MetaInfo{
					Rating:      cached.Rating,
					Poster:      cached.Poster,
					Overview:    cached.Overview,
					Cast:        cached.Cast,
					TrailerKey:  cached.TrailerKey,
					ContentType: cached.ContentType,
				}
				t.cache.Set(cacheKey, meta)
				return meta, nil
			}
		}
	}

	if t.apiKey == "" {
		return nil, errors.NewTMDBError("API key not configured", nil)
	}

	meta, err := t.lookup(imdbID)
	if err != nil {
		return nil, err
	}

	t.cache.Set(cacheKey, meta)
	if t.db != nil {
		record := &database.TMDBCache{
			IMDBId:      imdbID,
			ContentType: meta.ContentType,
			Rating:      meta.Rating,
			Poster:      meta.Poster,
			Overview:    meta.Overview,
			Cast:        meta.Cast,
			TrailerKey:  meta.TrailerKey,
			CreatedAt:   time.Now(),
		}
		if err := t.db.StoreTMDBCache(record); err != nil {
			t.logger.Warnf("[TMDB] failed to persist cache for %s: %v", imdbID, err)
		}
	}

	return meta, nil
}

func (t *TMDB) lookup(imdbID string) (*models.MetaInfo, error) {
	t.rateLimiter.Wait()

	findURL := fmt.Sprintf("%s/find/%s?api_key=%s&external_source=imdb_id", tmdbBaseURL, imdbID, t.apiKey)
	t.logger.Debugf("[TMDB] resolving %s", imdbID)

	var find models.TMDBFindResponse
	if err := t.getJSON(findURL, &find); err != nil {
		return nil, err
	}

	var result models.TMDBResult
	contentType := ""
	detailsPath := ""
	switch {
	case len(find.MovieResults) > 0:
		result = find.MovieResults[0]
		contentType = "movie"
		detailsPath = "movie"
	case len(find.TVResults) > 0:
		result = find.TVResults[0]
		contentType = "series"
		detailsPath = "tv"
	default:
		return nil, errors.NewTMDBError(fmt.Sprintf("no results for %s", imdbID), nil)
	}

	meta := &models.MetaInfo{
		Rating:      formatRating(result.VoteAverage),
		Poster:      posterURL(result.PosterPath),
		Overview:    result.Overview,
		ContentType: contentType,
	}

	// Details enrich the find result; a failure here is non-fatal.
	t.rateLimiter.Wait()
	detailsURL := fmt.Sprintf("%s/%s/%d?api_key=%s&append_to_response=credits,videos",
		tmdbBaseURL, detailsPath, result.ID, t.apiKey)

	var details models.TMDBDetailsResponse
	if err := t.getJSON(detailsURL, &details); err != nil {
		t.logger.Warnf("[TMDB] details lookup failed for %s: %v", imdbID, err)
		return meta, nil
	}

	for i, c := range details.Credits.Cast {
		if i >= 5 {
			break
		}
		meta.Cast = append(meta.Cast, c.Name)
	}
	for _, v := range details.Videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			meta.TrailerKey = v.Key
			break
		}
	}
	if meta.Overview == "" {
		meta.Overview = details.Overview
	}

	return meta, nil
}

func (t *TMDB) getJSON(url string, out interface{}) error {
	resp, err := t.httpClient.Get(url)
	if err != nil {
		return errors.NewTMDBError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewTMDBError(fmt.Sprintf("status %d", resp.StatusCode), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewTMDBError("decode failed", err)
	}
	return nil
}

func formatRating(vote float64) string {
	if vote <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f/10", vote)
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + path
}
