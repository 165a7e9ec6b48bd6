package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/netvlyx/netvlyx/internal/models"
)

type reportRequest struct {
	Email       string `json:"email"`
	PageURL     string `json:"pageUrl"`
	Description string `json:"description"`
}

type feedbackRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type visitRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *Handler) handleSubmitReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	report, err := h.services.Reports.SubmitBugReport(req.Email, req.PageURL, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *Handler) handleSubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	fb, err := h.services.Reports.SubmitFeedback(req.Email, req.Message, req.Rating)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (h *Handler) handleVisit(c *gin.Context) {
	var req visitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.services.Visitors.RecordHit(req.Path, req.Referrer, c.Request.UserAgent()); err != nil {
		h.services.Logger.Warnf("visit: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record visit"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleListReports(c *gin.Context) {
	reports, err := h.services.Reports.ListBugReports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) handleReportStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "status is required"})
		return
	}

	if err := h.services.Reports.UpdateBugReportStatus(c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *Handler) handleListFeedback(c *gin.Context) {
	feedback, err := h.services.Reports.ListFeedback()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load feedback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

func (h *Handler) handleFeedbackStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "status is required"})
		return
	}

	if err := h.services.Reports.UpdateFeedbackStatus(c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *Handler) handleStats(c *gin.Context) {
	stats, err := h.services.Visitors.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleClear is the two-step destructive flow: the first call reports what
// would be removed, and only an explicit confirm performs the clear.
func (h *Handler) handleClear(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if !req.Confirm {
		reports, err := h.services.Reports.ListBugReports()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load reports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"pending": len(reports),
			"message": "resend with confirm=true to clear",
		})
		return
	}

	n, err := h.services.Reports.ClearBugReports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to clear reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": n})
}
