package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/errors"
	"github.com/netvlyx/netvlyx/internal/models"
)

// handleExtract serves GET /api/extract?url=&template=&debug=.
// Invalid input fails fast with 400 before any fetch; an exhausted fetch
// chain is a 500 with a uniform error body. A page that parses to zero
// links is still a 200 with empty groups.
func (h *Handler) handleExtract(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "url parameter is required"})
		return
	}
	debug := c.Query("debug") == "1" || c.Query("debug") == "true"

	ctx, cancel := requestContext(c)
	defer cancel()

	record, err := h.services.Extractor.ExtractContent(ctx, pageURL, c.Query("template"), debug)
	if err != nil {
		h.renderExtractionError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// handleEpisodes serves GET /api/episodes?url=&debug=. On total fetch
// failure the degraded shape is returned so a UI built around it keeps
// rendering.
func (h *Handler) handleEpisodes(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "url parameter is required"})
		return
	}
	debug := c.Query("debug") == "1" || c.Query("debug") == "true"

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.services.Extractor.ExtractEpisodes(ctx, pageURL, debug)
	if err != nil {
		var scrapeErr *errors.ScrapeError
		if stderrors.As(err, &scrapeErr) && scrapeErr.Type == errors.ErrorTypeInvalidInputURL {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: scrapeErr.Message})
			return
		}

		h.services.Logger.Errorf("episodes: extraction failed for %s: %v", pageURL, err)
		c.JSON(http.StatusInternalServerError, models.DegradedEpisodeResponse{
			Error: "extraction failed",
			Type:  "series",
			Title: "",
			Movie: models.MovieServers{Servers: []models.DownloadLink{}},
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleDownloadRedirect serves GET /dl/:id, the unified download route.
// The id maps back to the original third-party URL captured at rewrite time.
func (h *Handler) handleDownloadRedirect(c *gin.Context) {
	id := c.Param("id")
	target, ok := h.services.Classifier.ResolveRewritten(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "unknown download id"})
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (h *Handler) handleMeta(c *gin.Context) {
	imdbID := c.Param("imdbID")
	meta, err := h.services.TMDB.GetMeta(imdbID)
	if err != nil {
		h.services.Logger.Warnf("meta: lookup failed for %s: %v", imdbID, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "metadata lookup failed"})
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (h *Handler) renderExtractionError(c *gin.Context, err error) {
	var scrapeErr *errors.ScrapeError
	if stderrors.As(err, &scrapeErr) {
		switch scrapeErr.Type {
		case errors.ErrorTypeInvalidInputURL:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: scrapeErr.Message})
			return
		case errors.ErrorTypeFetchExhausted, errors.ErrorTypeTimeout:
			h.services.Logger.Errorf("extract: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: scrapeErr.Message})
			return
		}
	}

	h.services.Logger.Errorf("extract: %v", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "extraction failed"})
}

func requestContext(c *gin.Context) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
}
