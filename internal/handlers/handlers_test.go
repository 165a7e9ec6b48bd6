package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netvlyx/netvlyx/internal/cache"
	"github.com/netvlyx/netvlyx/internal/config"
	"github.com/netvlyx/netvlyx/internal/database"
	"github.com/netvlyx/netvlyx/internal/errors"
	"github.com/netvlyx/netvlyx/internal/links"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/internal/services"
	"github.com/netvlyx/netvlyx/pkg/logger"
)

const testAdminPassword = "test-admin-pass"

type stubExtractor struct {
	content  *models.ContentRecord
	episodes *models.EpisodeResponse
	err      error
}

func (s *stubExtractor) ExtractContent(_ context.Context, _, _ string, _ bool) (*models.ContentRecord, error) {
	return s.content, s.err
}

func (s *stubExtractor) ExtractEpisodes(_ context.Context, _ string, _ bool) (*models.EpisodeResponse, error) {
	return s.episodes, s.err
}

type stubTMDB struct {
	meta *models.MetaInfo
	err  error
}

func (s *stubTMDB) GetMeta(string) (*models.MetaInfo, error) {
	return s.meta, s.err
}

type testEnv struct {
	router     *gin.Engine
	classifier *links.Classifier
}

func setup(t *testing.T, extractor services.ExtractorService, tmdb services.TMDBService) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewWithLevel(logger.LevelError)
	rewrites := cache.New(100, time.Hour)
	classifier := links.NewClassifier(func(string) bool { return true }, rewrites)

	container := &services.Container{
		TMDB:       tmdb,
		Extractor:  extractor,
		Reports:    services.NewReports(db, log),
		Visitors:   services.NewVisitors(db, log),
		Classifier: classifier,
		Cache:      rewrites,
		DB:         db,
		Logger:     log,
	}
	cfg := &config.Config{AdminPassword: testAdminPassword}

	r := gin.New()
	New(container, cfg).RegisterRoutes(r)
	return &testEnv{router: r, classifier: classifier}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExtractMissingURL(t *testing.T) {
	env := setup(t, &stubExtractor{}, &stubTMDB{})

	w := doJSON(t, env.router, http.MethodGet, "/api/extract", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractInvalidURL(t *testing.T) {
	env := setup(t, &stubExtractor{err: errors.NewInvalidInputURLError("not a url")}, &stubTMDB{})

	w := doJSON(t, env.router, http.MethodGet, "/api/extract?url=not%20a%20url", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid url")
}

func TestExtractFetchExhausted(t *testing.T) {
	env := setup(t, &stubExtractor{err: errors.NewFetchExhaustedError([]string{"direct/chrome-win"}, nil)}, &stubTMDB{})

	w := doJSON(t, env.router, http.MethodGet, "/api/extract?url=https://example.com/x", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestExtractSuccessEmptyGroups(t *testing.T) {
	record := &models.ContentRecord{
		Title:          "Some Movie",
		Images:         []string{},
		DownloadGroups: []models.DownloadGroup{},
	}
	env := setup(t, &stubExtractor{content: record}, &stubTMDB{})

	w := doJSON(t, env.router, http.MethodGet, "/api/extract?url=https://example.com/x", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.ContentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Some Movie", got.Title)
	assert.NotNil(t, got.DownloadGroups)
	assert.Empty(t, got.DownloadGroups)
	assert.Nil(t, got.Debug)
}

func TestEpisodesDegradedShape(t *testing.T) {
	env := setup(t, &stubExtractor{err: errors.NewFetchExhaustedError([]string{"direct/chrome-win"}, nil)}, &stubTMDB{})

	w := doJSON(t, env.router, http.MethodGet, "/api/episodes?url=https://example.com/x", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.DegradedEpisodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, "series", resp.Type)
	assert.NotNil(t, resp.Movie.Servers)
	assert.Empty(t, resp.Movie.Servers)
}

func TestEpisodesSuccess(t *testing.T) {
	episodes := &models.EpisodeResponse{
		Title: "Some Show",
		Type:  "series",
		Episodes: []models.EpisodeRecord{
			{EpisodeNumber: 1, DownloadLinks: []models.DownloadLink{{URL: "https://gofile.io/d/aaa11"}}},
		},
	}
	env := setup(t, &stubExtractor{episodes: episodes}, &stubTMDB{})

	w := doJSON(t, env.router, http.MethodGet, "/api/episodes?url=https://example.com/x", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.EpisodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Episodes[0].EpisodeNumber)
}

func TestDownloadRedirect(t *testing.T) {
	env := setup(t, &stubExtractor{}, &stubTMDB{})

	rewritten := env.classifier.Rewrite("https://hubcloud.art/drive/a1B2c3D4")
	require.Equal(t, "/dl/a1B2c3D4", rewritten)

	w := doJSON(t, env.router, http.MethodGet, "/dl/a1B2c3D4", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://hubcloud.art/drive/a1B2c3D4", w.Header().Get("Location"))

	w = doJSON(t, env.router, http.MethodGet, "/dl/unknown-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetaLookup(t *testing.T) {
	meta := &models.MetaInfo{Rating: "8.7/10", ContentType: "movie"}
	env := setup(t, &stubExtractor{}, &stubTMDB{meta: meta})

	w := doJSON(t, env.router, http.MethodGet, "/api/meta/tt0111161", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.MetaInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "8.7/10", got.Rating)
}

func TestReportLifecycleThroughAPI(t *testing.T) {
	env := setup(t, &stubExtractor{}, &stubTMDB{})
	admin := map[string]string{"X-Admin-Password": testAdminPassword}

	w := doJSON(t, env.router, http.MethodPost, "/api/reports", reportRequest{
		Email:       "user@example.com",
		Description: "missing links on a page",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.BugReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.ReportStatusOpen, created.Status)

	// Unauthenticated admin access is rejected.
	w = doJSON(t, env.router, http.MethodGet, "/api/admin/reports", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, env.router, http.MethodGet, "/api/admin/reports", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, env.router, http.MethodPatch, "/api/admin/reports/"+created.ID+"/status",
		statusRequest{Status: models.ReportStatusResolved}, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	// Invalid status value is rejected.
	w = doJSON(t, env.router, http.MethodPatch, "/api/admin/reports/"+created.ID+"/status",
		statusRequest{Status: "deleted"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearTwoStep(t *testing.T) {
	env := setup(t, &stubExtractor{}, &stubTMDB{})
	admin := map[string]string{"X-Admin-Password": testAdminPassword}

	w := doJSON(t, env.router, http.MethodPost, "/api/reports", reportRequest{Description: "one"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// First call only reports what would be cleared.
	w = doJSON(t, env.router, http.MethodPost, "/api/admin/clear", clearRequest{}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var preview map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.EqualValues(t, 1, preview["pending"])

	w = doJSON(t, env.router, http.MethodGet, "/api/admin/reports", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "one")

	// Confirmed call clears.
	w = doJSON(t, env.router, http.MethodPost, "/api/admin/clear", clearRequest{Confirm: true}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cleared))
	assert.EqualValues(t, 1, cleared["cleared"])
}

func TestVisitRecorded(t *testing.T) {
	env := setup(t, &stubExtractor{}, &stubTMDB{})
	admin := map[string]string{"X-Admin-Password": testAdminPassword}

	w := doJSON(t, env.router, http.MethodPost, "/api/visit", visitRequest{Path: "/browse"}, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, env.router, http.MethodGet, "/api/admin/stats", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.VisitorStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalHits)
	assert.Equal(t, 1, stats.HitsPerPath["/browse"])
}

func TestFeedbackValidation(t *testing.T) {
	env := setup(t, &stubExtractor{}, &stubTMDB{})

	w := doJSON(t, env.router, http.MethodPost, "/api/feedback", feedbackRequest{Message: "", Rating: 4}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/feedback", feedbackRequest{Message: "good stuff", Rating: 9}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/feedback", feedbackRequest{Message: "good stuff", Rating: 5}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}
