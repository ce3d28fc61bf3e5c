package match

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool_Defaults(t *testing.T) {
	pool, err := NewWorkerPool(0, 0)
	require.NoError(t, err)
	defer pool.Release()

	assert.Equal(t, DefaultPoolSize, pool.Size())
	assert.Equal(t, DefaultChunkSize, pool.ChunkSize())
}

func TestWorkerPool_Chunks(t *testing.T) {
	pool, err := NewWorkerPool(2, 150)
	require.NoError(t, err)
	defer pool.Release()

	assert.Empty(t, pool.chunks(0))
	assert.Equal(t, []chunkRange{{0, 100}}, pool.chunks(100))
	assert.Equal(t, []chunkRange{{0, 150}, {150, 300}, {300, 301}}, pool.chunks(301))
}

func TestRunChunks_MergesInChunkOrder(t *testing.T) {
	pool, err := NewWorkerPool(4, 7)
	require.NoError(t, err)
	defer pool.Release()

	var processed atomic.Int64
	chunks, err := runChunks(context.Background(), pool, 100, func(_ context.Context, lo, hi int) []int {
		out := make([]int, 0, hi-lo)
		for i := lo; i < hi; i++ {
			out = append(out, i)
		}
		return out
	}, func(n int) { processed.Add(int64(n)) })
	require.NoError(t, err)
	assert.Equal(t, int64(100), processed.Load())

	var merged []int
	for _, c := range chunks {
		merged = append(merged, c...)
	}
	require.Len(t, merged, 100)
	for i, v := range merged {
		assert.Equal(t, i, v)
	}
}

func TestRunChunks_Reusable(t *testing.T) {
	pool, err := NewWorkerPool(2, 10)
	require.NoError(t, err)
	defer pool.Release()

	for range 3 {
		chunks, err := runChunks(context.Background(), pool, 25, func(_ context.Context, lo, hi int) []int {
			return []int{hi - lo}
		}, nil)
		require.NoError(t, err)
		assert.Len(t, chunks, 3)
	}
}

func TestRunChunks_CancelledBeforeStart(t *testing.T) {
	pool, err := NewWorkerPool(2, 10)
	require.NoError(t, err)
	defer pool.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	_, err = runChunks(ctx, pool, 100, func(_ context.Context, lo, hi int) []int {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Zero(t, calls.Load())
}

func TestRunChunks_Released(t *testing.T) {
	pool, err := NewWorkerPool(2, 10)
	require.NoError(t, err)
	pool.Release()
	assert.True(t, pool.Released())

	_, err = runChunks(context.Background(), pool, 10, func(_ context.Context, lo, hi int) []int {
		return nil
	}, nil)
	assert.ErrorIs(t, err, ErrEngineReleased)
}
