package match

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultPoolSize is the default number of concurrent chunk workers.
	DefaultPoolSize = 32
	// DefaultChunkSize is the default number of candidates per chunk.
	DefaultChunkSize = 150
)

// WorkerPool evaluates index ranges concurrently on a bounded, reusable
// goroutine pool. It is owned by an Engine and shared by its searches.
type WorkerPool struct {
	pool      *ants.Pool
	chunkSize int
}

// NewWorkerPool creates a pool of size workers that splits work into
// chunks of chunkSize items. Non-positive values select the defaults.
func NewWorkerPool(size, chunkSize int) (*WorkerPool, error) {
	if size < 1 {
		size = DefaultPoolSize
	}
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &WorkerPool{pool: pool, chunkSize: chunkSize}, nil
}

// Size returns the worker capacity.
func (p *WorkerPool) Size() int {
	return p.pool.Cap()
}

// ChunkSize returns the number of items per chunk.
func (p *WorkerPool) ChunkSize() int {
	return p.chunkSize
}

// Release stops the pool. Further submissions fail.
func (p *WorkerPool) Release() {
	p.pool.Release()
}

// Released reports whether Release was called.
func (p *WorkerPool) Released() bool {
	return p.pool.IsClosed()
}

// chunkRange is the half-open index range [lo, hi) of one chunk.
type chunkRange struct {
	lo, hi int
}

func (p *WorkerPool) chunks(n int) []chunkRange {
	var out []chunkRange
	for lo := 0; lo < n; lo += p.chunkSize {
		out = append(out, chunkRange{lo: lo, hi: min(lo+p.chunkSize, n)})
	}
	return out
}

// runChunks evaluates fn over [0,n) in chunks and returns the per-chunk
// results in chunk order, independent of completion order. done is called
// after each chunk with the chunk's size. Submission stops once ctx is
// done; chunks already running observe ctx themselves.
func runChunks[T any](ctx context.Context, p *WorkerPool, n int, fn func(ctx context.Context, lo, hi int) []T, done func(items int)) ([][]T, error) {
	if p.Released() {
		return nil, ErrEngineReleased
	}
	ranges := p.chunks(n)
	results := make([][]T, len(ranges))

	var wg sync.WaitGroup
	var submitErr error
	for i, r := range ranges {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			results[i] = fn(ctx, r.lo, r.hi)
			if done != nil {
				done(r.hi - r.lo)
			}
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
		// Let already-queued chunks start before blocking on a full pool
		runtime.Gosched()
	}
	wg.Wait()

	if submitErr != nil {
		if submitErr == ants.ErrPoolClosed {
			return nil, ErrEngineReleased
		}
		return nil, submitErr
	}
	return results, nil
}
