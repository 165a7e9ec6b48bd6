package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/netvlyx/netvlyx/internal/database"
	"github.com/netvlyx/netvlyx/internal/errors"
	"github.com/netvlyx/netvlyx/internal/models"
	"github.com/netvlyx/netvlyx/pkg/logger"
)

// Reports manages bug reports and feedback reviews. Records are never
// hard-deleted outside the explicit admin clear; status transitions move
// them through open, reviewed and resolved instead.
type Reports struct {
	db     database.Database
	logger logger.Logger
}

func NewReports(db database.Database, log logger.Logger) *Reports {
	return &Reports{db: db, logger: log}
}

func (r *Reports) SubmitBugReport(email, pageURL, description string) (*models.BugReport, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}

	report := &models.BugReport{
		ID:          uuid.NewString(),
		Email:       strings.TrimSpace(email),
		PageURL:     strings.TrimSpace(pageURL),
		Description: description,
		Status:      models.ReportStatusOpen,
		CreatedAt:   time.Now(),
	}
	if err := r.db.StoreBugReport(report); err != nil {
		return nil, errors.NewStoreError("store bug report", err)
	}

	r.logger.Infof("reports: bug report %s submitted", report.ID)
	return report, nil
}

func (r *Reports) ListBugReports() ([]models.BugReport, error) {
	reports, err := r.db.GetBugReports()
	if err != nil {
		return nil, errors.NewStoreError("list bug reports", err)
	}
	if reports == nil {
		reports = []models.BugReport{}
	}
	return reports, nil
}

func (r *Reports) UpdateBugReportStatus(id, status string) error {
	if !models.ValidReportStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	if err := r.db.UpdateBugReportStatus(id, status); err != nil {
		return errors.NewStoreError("update bug report status", err)
	}
	return nil
}

func (r *Reports) SubmitFeedback(email, message string, rating int) (*models.FeedbackReview, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5")
	}

	fb := &models.FeedbackReview{
		ID:        uuid.NewString(),
		Email:     strings.TrimSpace(email),
		Message:   message,
		Rating:    rating,
		Status:    models.ReportStatusOpen,
		CreatedAt: time.Now(),
	}
	if err := r.db.StoreFeedback(fb); err != nil {
		return nil, errors.NewStoreError("store feedback", err)
	}

	r.logger.Infof("reports: feedback %s submitted", fb.ID)
	return fb, nil
}

func (r *Reports) ListFeedback() ([]models.FeedbackReview, error) {
	feedback, err := r.db.GetFeedback()
	if err != nil {
		return nil, errors.NewStoreError("list feedback", err)
	}
	if feedback == nil {
		feedback = []models.FeedbackReview{}
	}
	return feedback, nil
}

func (r *Reports) UpdateFeedbackStatus(id, status string) error {
	if !models.ValidReportStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	if err := r.db.UpdateFeedbackStatus(id, status); err != nil {
		return errors.NewStoreError("update feedback status", err)
	}
	return nil
}

// ClearBugReports removes every stored bug report and returns the count.
// Callers gate this behind the two-step admin confirmation.
func (r *Reports) ClearBugReports() (int, error) {
	n, err := r.db.ClearBugReports()
	if err != nil {
		return 0, errors.NewStoreError("clear bug reports", err)
	}
	r.logger.Infof("reports: cleared %d bug reports", n)
	return n, nil
}
