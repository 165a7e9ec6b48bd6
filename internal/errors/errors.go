// Package errors defines custom error types for better error handling and debugging.
// ScrapeError provides context-aware error reporting with type classification.
package errors

import (
	"fmt"
)

// ScrapeError represents errors that occur during page extraction
type ScrapeError struct {
	Type    string
	Message string
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeFetchExhausted  = "FETCH_EXHAUSTED"
	ErrorTypeInvalidInputURL = "INVALID_INPUT_URL"
	ErrorTypeTMDBFailure     = "TMDB_FAILURE"
	ErrorTypeStoreFailure    = "STORE_FAILURE"
	ErrorTypeTimeout         = "TIMEOUT"
	ErrorTypeUnauthorized    = "UNAUTHORIZED"
)

// NewScrapeError creates a new ScrapeError
func NewScrapeError(errorType, message string, cause error) *ScrapeError {
	return &ScrapeError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewFetchExhaustedError reports that every fetch strategy failed. The
// message carries the attempted strategies so callers can surface them.
func NewFetchExhaustedError(strategies []string, lastErr error) *ScrapeError {
	return NewScrapeError(ErrorTypeFetchExhausted,
		fmt.Sprintf("all fetch strategies failed (tried: %v)", strategies), lastErr)
}

// NewInvalidInputURLError creates an invalid input URL error
func NewInvalidInputURLError(url string) *ScrapeError {
	return NewScrapeError(ErrorTypeInvalidInputURL, fmt.Sprintf("invalid url: %q", url), nil)
}

// NewTMDBError creates a TMDB-related error
func NewTMDBError(message string, cause error) *ScrapeError {
	return NewScrapeError(ErrorTypeTMDBFailure, message, cause)
}

// NewStoreError creates a document store error
func NewStoreError(message string, cause error) *ScrapeError {
	return NewScrapeError(ErrorTypeStoreFailure, message, cause)
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string) *ScrapeError {
	return NewScrapeError(ErrorTypeTimeout, fmt.Sprintf("operation timeout: %s", operation), nil)
}
