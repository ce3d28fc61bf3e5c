package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/storage"
	"golang.org/x/sync/singleflight"
)

// DefaultLibraryCacheSize bounds the number of cached library names.
const DefaultLibraryCacheSize = 256

// FeatureCache memoizes extracted FeatureSets for the lifetime of a session.
// Records are keyed by ID; records without one are keyed by a hash of their
// content. Safe for concurrent use.
type FeatureCache struct {
	mu      sync.RWMutex
	entries map[string]*FeatureSet
	group   singleflight.Group
}

// NewFeatureCache creates an empty cache.
func NewFeatureCache() *FeatureCache {
	return &FeatureCache{entries: make(map[string]*FeatureSet)}
}

// CacheKey returns the key m is cached under.
func CacheKey(m *core.Material) string {
	if m.Id != 0 {
		return strconv.FormatUint(uint64(m.Id), 10)
	}
	return "c" + strconv.FormatUint(uint64(core.IDFromContent(m.Fingerprint())), 10)
}

// Lookup returns the cached FeatureSet of m, if any.
func (c *FeatureCache) Lookup(m *core.Material) (*FeatureSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fs, ok := c.entries[CacheKey(m)]
	return fs, ok
}

// GetOrExtract returns the cached FeatureSet of m, extracting and storing it
// on first use. Concurrent first calls for the same key extract once.
func (c *FeatureCache) GetOrExtract(m *core.Material) *FeatureSet {
	key := CacheKey(m)
	c.mu.RLock()
	fs, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return fs
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		existing, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}
		extracted := Extract(m)
		c.mu.Lock()
		c.entries[key] = extracted
		c.mu.Unlock()
		return extracted, nil
	})
	return v.(*FeatureSet)
}

// Len returns the number of cached entries.
func (c *FeatureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached entry.
func (c *FeatureCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*FeatureSet)
}

// LibraryNames resolves and caches library display names.
type LibraryNames struct {
	repo   storage.MaterialRepository
	cache  *lru.Cache[core.LibraryID, string]
	logger *slog.Logger
}

// NewLibraryNames creates a name cache holding up to size entries.
func NewLibraryNames(repo storage.MaterialRepository, size int, logger *slog.Logger) *LibraryNames {
	if size <= 0 {
		size = DefaultLibraryCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, _ := lru.New[core.LibraryID, string](size)
	return &LibraryNames{repo: repo, cache: cache, logger: logger}
}

// Name returns the display name of lib. Unknown libraries, and libraries
// whose name cannot be read, are named "Library <id>".
func (n *LibraryNames) Name(ctx context.Context, lib core.LibraryID) string {
	if name, ok := n.cache.Get(lib); ok {
		return name
	}
	name, err := n.repo.LibraryName(ctx, lib)
	if err != nil {
		n.logger.Debug("library name unavailable", "library", lib, "err", err)
		// Transient failures are not cached so a later lookup can succeed
		if !errors.Is(err, storage.ErrLibraryNotFound) {
			return fallbackLibraryName(lib)
		}
	}
	if name == "" {
		name = fallbackLibraryName(lib)
	}
	n.cache.Add(lib, name)
	return name
}

func fallbackLibraryName(lib core.LibraryID) string {
	return fmt.Sprintf("Library %d", lib)
}

// Clear drops every cached name.
func (n *LibraryNames) Clear() {
	n.cache.Purge()
}
