package middleware

import (
	"compress/gzip"
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/netvlyx/netvlyx/pkg/logger"
)

type gzipResponseWriter struct {
	gin.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.gzipWriter.Write([]byte(s))
}

func Gzip() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		gzipWriter := gzip.NewWriter(c.Writer)
		defer gzipWriter.Close()

		c.Writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzipWriter:     gzipWriter,
		}

		c.Next()
	}
}

// CORS allows the configured origin, or any origin when none is configured.
func CORS(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Admin-Password")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		switch {
		case statusCode >= 500:
			log.Errorf("%s %s %d %v %s", clientIP, method, statusCode, latency, path)
		case statusCode >= 400:
			log.Warnf("%s %s %d %v %s", clientIP, method, statusCode, latency, path)
		default:
			log.Infof("%s %s %d %v %s", clientIP, method, statusCode, latency, path)
		}
	}
}

// SameOriginGuard rejects extraction requests whose Origin or Referer names
// a different host than the configured frontend. Requests without either
// header (curl, server-to-server) pass through.
func SameOriginGuard(allowedOrigin string) gin.HandlerFunc {
	allowedHost := hostOf(allowedOrigin)
	return func(c *gin.Context) {
		if allowedHost == "" {
			c.Next()
			return
		}

		source := c.GetHeader("Origin")
		if source == "" {
			source = c.GetHeader("Referer")
		}
		if source == "" {
			c.Next()
			return
		}

		if hostOf(source) != allowedHost {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// AdminAuth requires the configured admin password in the X-Admin-Password
// header. With no password configured, admin routes are disabled outright.
func AdminAuth(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access not configured"})
			return
		}

		supplied := c.GetHeader("X-Admin-Password")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func hostOf(raw string) string {
	if raw == "" || raw == "*" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Hostname()
}
