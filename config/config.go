// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config holds the settings shared by the materia commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/poiesic/materia/match"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Config holds configuration for the matching engine and its store.
type Config struct {
	Pool    PoolConfig    `yaml:"pool"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	Retry   RetryConfig   `yaml:"retry"`
}

// PoolConfig sizes the engine's worker pool and caches.
type PoolConfig struct {
	// Workers is the number of concurrent chunk workers.
	// Default: 32
	Workers int `yaml:"workers"`

	// ChunkSize is the number of candidates handed to a worker at once.
	// Default: 150
	ChunkSize int `yaml:"chunk_size"`

	// LibraryCacheSize bounds the number of cached library names.
	// Default: 256
	LibraryCacheSize int `yaml:"library_cache_size"`
}

// SearchConfig holds search defaults that flags may override.
type SearchConfig struct {
	// Threshold is the minimum total score, 0-100.
	// Default: 50
	Threshold float64 `yaml:"threshold"`

	// Priority is a feature ordering such as "sampler_types>shader_path=material_keywords".
	// Empty means the unweighted base weights.
	Priority string `yaml:"priority"`

	// Mode is "tiered" or "exhaustive".
	// Default: "tiered"
	Mode string `yaml:"mode"`

	// Limit caps the number of ranked results. 0 falls back to match.DefaultResultLimit.
	// Default: 20
	Limit int `yaml:"limit"`
}

// StorageConfig selects the material store.
type StorageConfig struct {
	// Backend is "badger" or "sqlite".
	// Default: "badger"
	Backend string `yaml:"backend"`

	// Path is the badger directory or the sqlite database file.
	Path string `yaml:"path"`
}

// RetryConfig controls retries of failed repository reads.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts per read. 1 disables retries.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// BaseDelay is the delay before the first retry; it doubles each time.
	// Default: 50ms
	BaseDelay time.Duration `yaml:"base_delay"`
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithStorage sets the storage backend and path.
func WithStorage(backend, path string) Option {
	return func(c *Config) {
		c.Storage.Backend = backend
		c.Storage.Path = path
	}
}

// WithThreshold sets the default search threshold.
func WithThreshold(threshold float64) Option {
	return func(c *Config) {
		c.Search.Threshold = threshold
	}
}

// WithPriority sets the default priority expression.
func WithPriority(expr string) Option {
	return func(c *Config) {
		c.Search.Priority = expr
	}
}

// WithMode sets the default search mode.
func WithMode(mode string) Option {
	return func(c *Config) {
		c.Search.Mode = mode
	}
}

// WithWorkers sets the worker pool size.
func WithWorkers(workers int) Option {
	return func(c *Config) {
		c.Pool.Workers = workers
	}
}

// WithRetry sets the retry policy for repository reads.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(c *Config) {
		c.Retry.MaxAttempts = maxAttempts
		c.Retry.BaseDelay = baseDelay
	}
}

// DefaultConfig returns a Config with the defaults used by the commands.
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			Workers:          match.DefaultPoolSize,
			ChunkSize:        match.DefaultChunkSize,
			LibraryCacheSize: match.DefaultLibraryCacheSize,
		},
		Search: SearchConfig{
			Threshold: 50,
			Priority:  match.FormatPriority(match.DefaultPriority()),
			Mode:      match.ModeTiered.String(),
			Limit:     20,
		},
		Storage: StorageConfig{
			Backend: BackendBadger,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   50 * time.Millisecond,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithStorage(BackendSQLite, "materials.db"),
//	    WithThreshold(70),
//	)
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize lower-cases enumerated values and trims whitespace.
func (c *Config) Normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Search.Mode = strings.ToLower(strings.TrimSpace(c.Search.Mode))
	c.Search.Priority = strings.TrimSpace(c.Search.Priority)
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Pool.Workers < 1 {
		return errors.New("config: pool.workers must be positive")
	}
	if c.Pool.ChunkSize < 1 {
		return errors.New("config: pool.chunk_size must be positive")
	}
	if c.Pool.LibraryCacheSize < 1 {
		return errors.New("config: pool.library_cache_size must be positive")
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 100 {
		return errors.New("config: search.threshold must be between 0 and 100")
	}
	if c.Search.Limit < 0 {
		return errors.New("config: search.limit must not be negative")
	}
	if _, err := match.ParseMode(c.Search.Mode); err != nil {
		return fmt.Errorf("config: search.mode: %w", err)
	}
	if _, err := match.ParsePriority(c.Search.Priority); err != nil {
		return fmt.Errorf("config: search.priority: %w", err)
	}
	switch c.Storage.Backend {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.New("config: retry.max_attempts must be at least 1")
	}
	if c.Retry.BaseDelay < 0 {
		return errors.New("config: retry.base_delay must not be negative")
	}
	return nil
}

// Priority parses the configured priority expression.
func (c *Config) Priority() ([]match.PriorityItem, error) {
	return match.ParsePriority(c.Search.Priority)
}

// Mode parses the configured search mode.
func (c *Config) Mode() (match.Mode, error) {
	return match.ParseMode(c.Search.Mode)
}

// EngineOptions returns the engine options described by the configuration.
func (c *Config) EngineOptions() []match.Option {
	return []match.Option{
		match.WithPoolSize(c.Pool.Workers),
		match.WithChunkSize(c.Pool.ChunkSize),
		match.WithLibraryCacheSize(c.Pool.LibraryCacheSize),
		match.WithRetry(c.Retry.MaxAttempts, c.Retry.BaseDelay),
	}
}
