package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/config"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/core/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_DefaultsWhenNoConfig(t *testing.T) {
	t.Parallel()

	l := config.NewLoader(logger.Discard())

	cfg, err := l.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGraphBaseURL, cfg.GraphBaseURL)
	assert.Equal(t, domain.DefaultTokenEnv, cfg.TokenEnv)
	assert.Equal(t, domain.DefaultCacheMaxBytes, cfg.CacheMaxBytes)
	assert.Empty(t, cfg.TTLs)
}

func TestLoader_ReadsConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
graph:
  baseURL: https://graph.example.test/v1.0/
  tokenEnv: MY_TOKEN
cache:
  path: /var/cache/grove/cache.json
  maxBytes: 1024
  ttl:
    users: 90s
log:
  json: true
`)

	l := config.NewLoader(logger.Discard())

	cfg, err := l.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://graph.example.test/v1.0", cfg.GraphBaseURL, "trailing slash is trimmed")
	assert.Equal(t, "MY_TOKEN", cfg.TokenEnv)
	assert.Equal(t, "/var/cache/grove/cache.json", cfg.CachePath)
	assert.Equal(t, 1024, cfg.CacheMaxBytes)
	assert.Equal(t, 90*time.Second, cfg.TTLs["users"])
	assert.True(t, cfg.LogJSON)
}

func TestLoader_FindsConfigInAncestorDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, "graph:\n  tokenEnv: ANCESTOR_TOKEN\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	l := config.NewLoader(logger.Discard())

	cfg, err := l.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "ANCESTOR_TOKEN", cfg.TokenEnv)
}

func TestLoader_InvalidYAMLIsClassified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "graph: [not: a mapping\n")

	l := config.NewLoader(logger.Discard())

	cfg, err := l.Load(dir)
	require.ErrorIs(t, err, domain.ErrConfigInvalid)
	assert.Equal(t, domain.DefaultGraphBaseURL, cfg.GraphBaseURL, "defaults still returned")
}

func TestLoader_InvalidTTLsAreSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
cache:
  ttl:
    users: not-a-duration
    groups: 15m
    devices: -3m
`)

	l := config.NewLoader(logger.Discard())

	cfg, err := l.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.TTLs["groups"])
	assert.NotContains(t, cfg.TTLs, "users")
	assert.NotContains(t, cfg.TTLs, "devices", "non-positive ttls are rejected")
}
