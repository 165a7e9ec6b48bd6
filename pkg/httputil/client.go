// Package httputil provides HTTP client utilities with standard configurations.
package httputil

import (
	"net/http"
	"time"
)

const (
	// Default timeout for HTTP requests
	defaultTimeout = 30 * time.Second

	// Transport configuration constants
	maxIdleConns        = 10
	maxIdleConnsPerHost = 2
	idleConnTimeout     = 30 * time.Second
)

// NewHTTPClient creates a new HTTP client with the specified timeout.
// The client is configured with connection pooling and idle connection management.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
		},
	}
}

// NewDefaultHTTPClient creates a new HTTP client with default 30 second timeout.
// This is suitable for most API calls and web requests.
func NewDefaultHTTPClient() *http.Client {
	return NewHTTPClient(defaultTimeout)
}

// NewNoRedirectClient creates an HTTP client that reports redirects back to the
// caller instead of following them. The fetch layer needs the raw redirect
// response to toggle trailing slashes on broken Location headers.
func NewNoRedirectClient(timeout time.Duration) *http.Client {
	c := NewHTTPClient(timeout)
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c
}
