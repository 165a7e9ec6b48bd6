package models

import "time"

// Report and review statuses. Documents are never hard-deleted outside the
// explicit admin clear flow; status transitions are the only mutation.
const (
	ReportStatusOpen     = "open"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

// ValidReportStatus reports whether s is an accepted status value.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusOpen, ReportStatusReviewed, ReportStatusResolved:
		return true
	}
	return false
}

// BugReport is a public bug submission persisted in the document store.
type BugReport struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	PageURL     string    `json:"pageUrl,omitempty"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FeedbackReview is a public feedback/review submission.
type FeedbackReview struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// VisitorHit is a single tracked page view used by the admin analytics.
type VisitorHit struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitorStats is the aggregated analytics shape served to the admin UI.
type VisitorStats struct {
	TotalHits   int            `json:"totalHits"`
	HitsPerPath map[string]int `json:"hitsPerPath"`
	HitsPerDay  map[string]int `json:"hitsPerDay"`
}
