package match

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/materia/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "42", CacheKey(&core.Material{Id: 42}))

	a := CacheKey(&core.Material{Filename: "a.xml"})
	b := CacheKey(&core.Material{Filename: "b.xml"})
	assert.True(t, strings.HasPrefix(a, "c"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, CacheKey(&core.Material{Filename: "a.xml"}))
}

func TestFeatureCache(t *testing.T) {
	cache := NewFeatureCache()
	m := richMaterial()

	_, ok := cache.Lookup(m)
	assert.False(t, ok)

	fs := cache.GetOrExtract(m)
	require.NotNil(t, fs)
	assert.Equal(t, 1, cache.Len())

	again, ok := cache.Lookup(m)
	assert.True(t, ok)
	assert.Same(t, fs, again)
	assert.Same(t, fs, cache.GetOrExtract(m))

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	assert.NotSame(t, fs, cache.GetOrExtract(m))
}

func TestFeatureCache_Concurrent(t *testing.T) {
	cache := NewFeatureCache()
	materials := make([]*core.Material, 8)
	for i := range materials {
		m := richMaterial()
		m.Id = core.ID(i + 1)
		materials[i] = m
	}

	var wg sync.WaitGroup
	results := make([][]*FeatureSet, 16)
	for g := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, m := range materials {
				results[g] = append(results[g], cache.GetOrExtract(m))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(materials), cache.Len())
	for g := 1; g < len(results); g++ {
		for i := range materials {
			assert.Same(t, results[0][i], results[g][i])
		}
	}
}

func TestLibraryNames(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.addLibrary(1, "Base Game")
	repo.addLibrary(2, "")

	names := NewLibraryNames(repo, 0, nil)
	assert.Equal(t, "Base Game", names.Name(ctx, 1))
	assert.Equal(t, "Library 2", names.Name(ctx, 2))
	assert.Equal(t, "Library 9", names.Name(ctx, 9))

	t.Run("cached", func(t *testing.T) {
		calls := repo.nameCalls.Load()
		assert.Equal(t, "Base Game", names.Name(ctx, 1))
		assert.Equal(t, "Library 9", names.Name(ctx, 9))
		assert.Equal(t, calls, repo.nameCalls.Load())
	})

	t.Run("transient failures are not cached", func(t *testing.T) {
		repo.addLibrary(3, "DLC")
		repo.setNameErr(errors.New("disk busy"))
		assert.Equal(t, "Library 3", names.Name(ctx, 3))
		repo.setNameErr(nil)
		assert.Equal(t, "DLC", names.Name(ctx, 3))
	})

	t.Run("clear", func(t *testing.T) {
		repo.addLibrary(1, "Renamed")
		names.Clear()
		assert.Equal(t, "Renamed", names.Name(ctx, 1))
	})
}
