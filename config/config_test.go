package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/materia/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "materia.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, match.DefaultPoolSize, cfg.Pool.Workers)
	assert.Equal(t, match.DefaultChunkSize, cfg.Pool.ChunkSize)
	assert.Equal(t, 50.0, cfg.Search.Threshold)
	assert.Equal(t, BackendBadger, cfg.Storage.Backend)

	priority, err := cfg.Priority()
	require.NoError(t, err)
	assert.Equal(t, match.DefaultPriority(), priority)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, match.ModeTiered, mode)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithStorage(BackendSQLite, "materials.db"),
		WithThreshold(70),
		WithPriority("shader_path>parameters"),
		WithMode("exhaustive"),
		WithWorkers(8),
		WithRetry(1, 0),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "materials.db", cfg.Storage.Path)
	assert.Equal(t, 70.0, cfg.Search.Threshold)
	assert.Equal(t, 8, cfg.Pool.Workers)
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
	assert.Len(t, cfg.EngineOptions(), 4)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
pool:
  workers: 4
search:
  threshold: 65
  priority: "sampler_types>shader_path=material_keywords"
  mode: Exhaustive
storage:
  backend: sqlite
  path: /data/materials.db
retry:
  base_delay: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Pool.Workers)
	assert.Equal(t, match.DefaultChunkSize, cfg.Pool.ChunkSize, "unset keys keep defaults")
	assert.Equal(t, 65.0, cfg.Search.Threshold)
	assert.Equal(t, "exhaustive", cfg.Search.Mode)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/data/materials.db", cfg.Storage.Path)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay)

	priority, err := cfg.Priority()
	require.NoError(t, err)
	require.Len(t, priority, 3)
	assert.Equal(t, match.EqualTo, priority[1].Relation)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "pool: [unclosed"))
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search:\n  threshold: 150\n"))
		assert.ErrorContains(t, err, "search.threshold")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"workers", func(c *Config) { c.Pool.Workers = 0 }, "pool.workers"},
		{"chunk size", func(c *Config) { c.Pool.ChunkSize = -1 }, "pool.chunk_size"},
		{"library cache", func(c *Config) { c.Pool.LibraryCacheSize = 0 }, "pool.library_cache_size"},
		{"threshold", func(c *Config) { c.Search.Threshold = -5 }, "search.threshold"},
		{"limit", func(c *Config) { c.Search.Limit = -1 }, "search.limit"},
		{"mode", func(c *Config) { c.Search.Mode = "fuzzy" }, "search.mode"},
		{"priority", func(c *Config) { c.Search.Priority = "gloss>shader_path" }, "search.priority"},
		{"backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, "retry.max_attempts"},
		{"delay", func(c *Config) { c.Retry.BaseDelay = -time.Second }, "retry.base_delay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	t.Run("normalizes", func(t *testing.T) {
		cfg := NewConfig(WithStorage(" SQLite ", "x.db"), WithMode(" TIERED "))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
		assert.Equal(t, "tiered", cfg.Search.Mode)
	})
}
