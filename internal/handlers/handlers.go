// Package handlers implements the HTTP request handlers for the NetVlyx API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/netvlyx/netvlyx/internal/config"
	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/middleware"
	"github.com/netvlyx/netvlyx/internal/services"
)

// Handler handles HTTP requests for the NetVlyx API.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)
	r.GET("/health", h.handleHealth)

	guard := middleware.SameOriginGuard(h.config.AllowedOrigin)
	r.GET("/api/extract", guard, h.handleExtract)
	r.GET("/api/episodes", guard, h.handleEpisodes)

	r.GET("/dl/:id", h.handleDownloadRedirect)
	r.GET("/api/meta/:imdbID", h.handleMeta)

	r.POST("/api/reports", h.handleSubmitReport)
	r.POST("/api/feedback", h.handleSubmitFeedback)
	r.POST("/api/visit", h.handleVisit)

	admin := r.Group("/api/admin", middleware.AdminAuth(h.config.AdminPassword))
	admin.GET("/reports", h.handleListReports)
	admin.PATCH("/reports/:id/status", h.handleReportStatus)
	admin.GET("/feedback", h.handleListFeedback)
	admin.PATCH("/feedback/:id/status", h.handleFeedbackStatus)
	admin.GET("/stats", h.handleStats)
	admin.POST("/clear", h.handleClear)
}

func (h *Handler) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    constants.AppName,
		"version": constants.AppVersion,
	})
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
