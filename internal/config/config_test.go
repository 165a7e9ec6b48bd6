package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netvlyx/netvlyx/internal/constants"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.json"))
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("DATABASE_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, "./netvlyx.db", cfg.DatabasePath)
	assert.Equal(t, constants.CORSProxyTemplates, cfg.ProxyEndpoints)
	assert.Equal(t, constants.AllowedDownloadDomains, cfg.AllowedDomains)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"TMDB_API_KEY":"from-file","ADMIN_PASSWORD":"file-pass"}`), 0o644))

	t.Setenv("CONFIG_FILE", file)
	t.Setenv("TMDB_API_KEY", "from-env")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.TMDBAPIKey)
	assert.Equal(t, "file-pass", cfg.AdminPassword)
}

func TestValidateRejectsBadProxyTemplate(t *testing.T) {
	cfg := &Config{ProxyEndpoints: []string{"https://proxy.example/raw?url="}}
	assert.Error(t, cfg.Validate())
}

func TestIsDomainAllowed(t *testing.T) {
	cfg := &Config{AllowedDomains: []string{"hubcloud", "pixeldrain"}}
	require.NoError(t, cfg.Validate())
	cfg.InitMaps()

	assert.True(t, cfg.IsDomainAllowed("hubcloud.art"))
	assert.True(t, cfg.IsDomainAllowed("www.pixeldrain.com"))
	assert.False(t, cfg.IsDomainAllowed("evil.example"))
}
