// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/netvlyx/netvlyx/internal/constants"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.json"
	// Default database path
	defaultDatabasePath = "./netvlyx.db"
)

// Config holds the application configuration.
// It supports loading from environment variables and JSON files.
type Config struct {
	// External services
	TMDBAPIKey       string `json:"TMDB_API_KEY"`
	ScrapeServiceURL string `json:"SCRAPE_SERVICE_URL"`

	// Request protection
	AdminPassword string `json:"ADMIN_PASSWORD"`
	AllowedOrigin string `json:"ALLOWED_ORIGIN"`

	// Fetch layer; defaults come from internal/constants when empty
	ProxyEndpoints []string `json:"PROXY_ENDPOINTS"`
	AllowedDomains []string `json:"ALLOWED_DOMAINS"`

	// Storage settings
	DatabasePath string        `json:"DATABASE_PATH"`
	CacheSize    int           `json:"CACHE_SIZE"`
	CacheTTL     time.Duration `json:"CACHE_TTL"`

	// Internal map for fast allow-list lookups
	domainMap map[string]bool
	mapsOnce  sync.Once
}

// Load reads configuration from environment variables and optional JSON file.
// Environment variables take precedence over file values.
// Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		CacheSize:    constants.DefaultCacheSize,
		CacheTTL:     time.Duration(constants.DefaultCacheTTL) * time.Hour,
		DatabasePath: getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
	}

	// Load from config file if exists
	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		// Ignore file not found errors
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Environment overrides file values
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.InitMaps()

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() {
	if tmdbKey := os.Getenv("TMDB_API_KEY"); tmdbKey != "" {
		c.TMDBAPIKey = tmdbKey
	}

	if scrapeURL := os.Getenv("SCRAPE_SERVICE_URL"); scrapeURL != "" {
		c.ScrapeServiceURL = scrapeURL
	}

	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		c.AdminPassword = pass
	}

	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		c.AllowedOrigin = origin
	}
}

// loadFromFile loads configuration from a JSON file.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

// Validate checks if the configuration is valid.
// Sets default values for missing optional fields.
func (c *Config) Validate() error {
	// TMDB_API_KEY is optional; the meta endpoint degrades without it

	if len(c.ProxyEndpoints) == 0 {
		c.ProxyEndpoints = constants.CORSProxyTemplates
	}

	if len(c.AllowedDomains) == 0 {
		c.AllowedDomains = constants.AllowedDownloadDomains
	}

	for _, tpl := range c.ProxyEndpoints {
		if !strings.Contains(tpl, "%s") {
			return fmt.Errorf("proxy endpoint %q has no %%s placeholder", tpl)
		}
	}

	return nil
}

// InitMaps initializes internal lookup maps for performance.
// This method is idempotent and thread-safe.
func (c *Config) InitMaps() {
	c.mapsOnce.Do(func() {
		c.domainMap = make(map[string]bool, len(c.AllowedDomains))
		for _, d := range c.AllowedDomains {
			c.domainMap[strings.ToLower(d)] = true
		}
	})
}

// IsDomainAllowed reports whether host belongs to the download allow-list.
func (c *Config) IsDomainAllowed(host string) bool {
	host = strings.ToLower(host)
	for d := range c.domainMap {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
