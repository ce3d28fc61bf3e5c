package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/match"
	"github.com/poiesic/materia/storage"
	"github.com/poiesic/materia/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToValue(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want core.Value
	}{
		{"nil", nil, core.Value{}},
		{"true", true, core.NumberValue(1)},
		{"false", false, core.NumberValue(0)},
		{"int", 4, core.NumberValue(4)},
		{"float", 0.25, core.NumberValue(0.25)},
		{"string", "gentle", core.StringValue("gentle")},
		{"array", []any{1, 0.5, 0}, core.ArrayValue(1, 0.5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toValue(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-numeric array", func(t *testing.T) {
		_, err := toValue([]any{1, "x"})
		assert.Error(t, err)
	})

	t.Run("map", func(t *testing.T) {
		_, err := toValue(map[string]any{"a": 1})
		assert.Error(t, err)
	})
}

func TestParseFixture(t *testing.T) {
	f, err := parseFixture([]byte(defaultFixture))
	require.NoError(t, err)
	require.Len(t, f.Libraries, 1)

	lib := f.Libraries[0]
	assert.Equal(t, "Castle", lib.Name)
	require.Len(t, lib.Materials, 5)

	m, err := lib.Materials[0].toMaterial(7)
	require.NoError(t, err)
	assert.Equal(t, core.LibraryID(7), m.LibraryId)
	assert.Len(t, m.Samplers, 3)
	require.Len(t, m.Parameters, 3)
	assert.Equal(t, core.ArrayValue(1, 0.95, 0.9, 1), m.Parameters[1].Value)
	assert.Equal(t, core.NumberValue(1), m.Parameters[2].Value)
	assert.Equal(t, 2, m.Parameters[2].Key)

	_, err = parseFixture([]byte("libraries: {"))
	assert.Error(t, err)
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
libraries:
  - name: FX
    materials:
      - filename: spark.matxml
        parameters:
          - {name: Bad, value: [1, two]}
`), 0o644))

	f, err := loadFixture(path)
	require.NoError(t, err)

	_, err = seed(context.Background(), newStore(t), f, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parameter "Bad"`)

	_, err = loadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func newStore(t *testing.T) storage.MaterialStore {
	t.Helper()
	store, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	f, err := parseFixture([]byte(defaultFixture))
	require.NoError(t, err)

	n, err := seed(ctx, store, f, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	libs, err := store.ListLibraries(ctx)
	require.NoError(t, err)
	require.Len(t, libs, 1)

	materials, err := store.ListMaterials(ctx, libs[0].Id)
	require.NoError(t, err)
	require.Len(t, materials, 5)

	// The seeded walls should find each other.
	engine, err := match.NewEngine(store, match.WithPoolSize(2))
	require.NoError(t, err)
	defer engine.Release()

	var source *core.Material
	for _, m := range materials {
		if m.Filename == "stone_wall_01.matxml" {
			source = m
		}
	}
	require.NotNil(t, source)

	out, err := engine.Search(ctx, match.Request{Source: source, TargetLibrary: libs[0].Id, Threshold: 60})
	require.NoError(t, err)
	require.NotEmpty(t, out.Results)
	assert.Equal(t, "stone_wall_02.matxml", out.Results[0].Material.Filename)
}
