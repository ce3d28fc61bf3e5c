package match

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/storage"
	"golang.org/x/sync/errgroup"
)

const (
	relaxedFloor = 10.0
	relaxedScale = 0.3
)

// DefaultResultLimit caps the ranked results of a search that sets no Limit.
const DefaultResultLimit = 1000

// Engine runs similarity searches against a material repository.
// An Engine is safe for concurrent use; its worker pool and caches are shared
// by every search it runs.
type Engine struct {
	repo   storage.MaterialRepository
	pool   *WorkerPool
	cache  *FeatureCache
	names  *LibraryNames
	logger *slog.Logger

	poolSize         int
	chunkSize        int
	libraryCacheSize int
	retryAttempts    int
	retryDelay       time.Duration

	mu      sync.Mutex
	runs    map[uint64]context.CancelFunc
	nextRun uint64
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the number of concurrent chunk workers.
// Default is DefaultPoolSize.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			return fmt.Errorf("pool size must be positive, got %d", size)
		}
		e.poolSize = size
		return nil
	}
}

// WithChunkSize sets the number of candidates evaluated per pool task.
// Default is DefaultChunkSize.
func WithChunkSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			return fmt.Errorf("chunk size must be positive, got %d", size)
		}
		e.chunkSize = size
		return nil
	}
}

// WithCache shares a FeatureCache between engines.
// Default is a new cache per engine.
func WithCache(cache *FeatureCache) Option {
	return func(e *Engine) error {
		if cache != nil {
			e.cache = cache
		}
		return nil
	}
}

// WithLibraryCacheSize bounds the number of cached library names.
// Default is DefaultLibraryCacheSize.
func WithLibraryCacheSize(size int) Option {
	return func(e *Engine) error {
		e.libraryCacheSize = size
		return nil
	}
}

// WithRetry retries failed repository reads up to maxAttempts times with
// exponential backoff starting at baseDelay. Default is a single attempt.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(e *Engine) error {
		if maxAttempts < 1 {
			return storage.ErrInvalidMaxAttempts
		}
		e.retryAttempts = maxAttempts
		e.retryDelay = baseDelay
		return nil
	}
}

// NewEngine creates a new engine reading from repo.
// Call Release when the engine is no longer needed.
func NewEngine(repo storage.MaterialRepository, opts ...Option) (*Engine, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	e := &Engine{
		logger:           slog.Default(),
		poolSize:         DefaultPoolSize,
		chunkSize:        DefaultChunkSize,
		libraryCacheSize: DefaultLibraryCacheSize,
		retryAttempts:    1,
		runs:             make(map[uint64]context.CancelFunc),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.repo = storage.WithRetry(repo, e.retryAttempts, e.retryDelay)
	if e.cache == nil {
		e.cache = NewFeatureCache()
	}
	e.names = NewLibraryNames(e.repo, e.libraryCacheSize, e.logger)

	pool, err := NewWorkerPool(e.poolSize, e.chunkSize)
	if err != nil {
		return nil, err
	}
	e.pool = pool
	return e, nil
}

// Cache returns the engine's feature cache.
func (e *Engine) Cache() *FeatureCache {
	return e.cache
}

// ClearCache drops every cached FeatureSet and library name.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.names.Clear()
}

// LibraryName returns the display name of lib.
func (e *Engine) LibraryName(ctx context.Context, lib core.LibraryID) string {
	return e.names.Name(ctx, lib)
}

// Cancel cancels every search currently running on the engine.
// Calling it more than once, or with nothing running, has no effect.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, cancel := range e.runs {
		cancel()
	}
}

// Release cancels running searches and frees the worker pool.
// The engine cannot run searches afterwards.
func (e *Engine) Release() {
	e.Cancel()
	e.pool.Release()
}

// track derives a cancellable context for one search and registers it
// with the engine. The returned func must be called when the search ends.
func (e *Engine) track(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.nextRun++
	id := e.nextRun
	e.runs[id] = cancel
	e.mu.Unlock()

	return ctx, func() {
		e.mu.Lock()
		delete(e.runs, id)
		e.mu.Unlock()
		cancel()
	}
}

// Search finds the materials of req.TargetLibrary similar to req.Source.
//
// A tiered search prefilters every candidate and scores the survivors. If
// nothing reaches the threshold, every candidate is scored again with a
// relaxed cutoff and the results are re-filtered against the threshold.
// An exhaustive search scores every candidate once with no prefilter.
//
// Results are ordered by total score, highest first, with ties kept in
// listing order. A cancelled search returns an Outcome with status
// StatusCancelled and an error wrapping ErrCancelled; a repository failure
// returns StatusFailed and an error wrapping ErrSearchFailed. Neither carries
// results.
func (e *Engine) Search(ctx context.Context, req Request) (*Outcome, error) {
	if req.Source == nil {
		return nil, ErrSourceRequired
	}
	if math.IsNaN(req.Threshold) || req.Threshold < 0 || req.Threshold > 100 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, req.Threshold)
	}
	if e.pool.Released() {
		return nil, ErrEngineReleased
	}

	monitor := req.Monitor
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	searchCtx, done := e.track(ctx)
	defer done()
	workCtx, abortWork := context.WithCancel(searchCtx)
	defer abortWork()

	r := &searchRun{
		engine:    e,
		req:       req,
		monitor:   monitor,
		progress:  newProgressReporter(req.Progress),
		weights:   ResolveWeights(req.Priority),
		searchCtx: searchCtx,
		abortWork: abortWork,
	}

	monitor.Start(req.Source, req.TargetLibrary)
	out, err := r.execute(workCtx)
	monitor.Finish(out)
	return out, err
}

// CompareParameters hydrates both materials if needed and compares their
// parameters by name and value.
func (e *Engine) CompareParameters(ctx context.Context, src, cand *core.Material) (ParameterComparison, error) {
	a, err := e.hydrate(ctx, src)
	if err != nil {
		return ParameterComparison{}, err
	}
	b, err := e.hydrate(ctx, cand)
	if err != nil {
		return ParameterComparison{}, err
	}
	return CompareParameters(e.cache.GetOrExtract(a), e.cache.GetOrExtract(b)), nil
}

// hydrate returns m with its samplers and parameters loaded. m itself is
// never modified; a hydrated copy is returned when loading was needed.
func (e *Engine) hydrate(ctx context.Context, m *core.Material) (*core.Material, error) {
	if m.Hydrated() || m.Id == 0 {
		return m, nil
	}

	var samplers []core.Sampler
	var params []core.Parameter
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		samplers, err = e.repo.ListSamplers(gctx, m.Id)
		return err
	})
	g.Go(func() error {
		var err error
		params, err = e.repo.ListParameters(gctx, m.Id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hydrated := *m
	hydrated.Samplers = samplers
	hydrated.Parameters = params
	if hydrated.Samplers == nil {
		hydrated.Samplers = []core.Sampler{}
	}
	if hydrated.Parameters == nil {
		hydrated.Parameters = []core.Parameter{}
	}
	return &hydrated, nil
}

// features returns the FeatureSet of m, hydrating m on a cache miss.
func (e *Engine) features(ctx context.Context, m *core.Material) (*FeatureSet, error) {
	if m.Id != 0 {
		if fs, ok := e.cache.Lookup(m); ok {
			return fs, nil
		}
	}
	hydrated, err := e.hydrate(ctx, m)
	if err != nil {
		return nil, err
	}
	return e.cache.GetOrExtract(hydrated), nil
}

// searchRun holds the state of one Search call.
type searchRun struct {
	engine   *Engine
	req      Request
	monitor  SearchMonitor
	progress *progressReporter
	weights  WeightVector

	searchCtx context.Context
	abortWork context.CancelFunc
	abortOnce sync.Once
	abortErr  error

	status      Status
	scanned     int
	tier        int
	libraryName string
	skipped     []Skip
	// skippedAt holds the listing indices already skipped. Written only
	// between passes.
	skippedAt map[int]struct{}
}

// evaluation is the outcome of one candidate: either a result or a skip.
type evaluation struct {
	result *MatchResult
	skip   *Skip
}

func (r *searchRun) setStatus(status Status) {
	r.status = status
	r.engine.logger.Debug("search status changed", "status", status, "library", r.req.TargetLibrary)
	r.monitor.StatusChanged(status)
}

// abort stops every worker of the run and records err as the failure cause.
// Only the first cause is kept.
func (r *searchRun) abort(err error) {
	r.abortOnce.Do(func() {
		r.abortErr = err
		r.abortWork()
	})
}

func (r *searchRun) execute(ctx context.Context) (*Outcome, error) {
	r.tier = 1
	r.setStatus(StatusTier1Running)

	src, err := r.engine.hydrate(ctx, r.req.Source)
	if err != nil {
		return r.stopped(err)
	}
	srcFS := r.engine.cache.GetOrExtract(src)

	listed, err := r.engine.repo.ListMaterials(ctx, r.req.TargetLibrary)
	if err != nil {
		return r.stopped(err)
	}
	candidates := excludeSource(listed, src)
	r.scanned = len(candidates)
	r.monitor.AfterListing(len(candidates))

	if len(candidates) == 0 {
		return r.completed(nil)
	}
	r.libraryName = r.engine.names.Name(ctx, r.req.TargetLibrary)

	if r.req.Mode == ModeExhaustive {
		r.progress.beginPass(len(candidates), 0, 100)
		results, _, err := r.evaluate(ctx, srcFS, candidates, r.req.Threshold, false)
		if err != nil {
			return r.stopped(err)
		}
		return r.completed(results)
	}

	r.progress.beginPass(len(candidates), 0, 50)
	results, passed, err := r.evaluate(ctx, srcFS, candidates, r.req.Threshold, true)
	if err != nil {
		return r.stopped(err)
	}
	r.monitor.AfterPrefilter(passed)
	if len(results) > 0 {
		r.setStatus(StatusTier1Done)
		return r.completed(results)
	}
	r.setStatus(StatusTier1Empty)

	relaxed := math.Max(relaxedFloor, r.req.Threshold*relaxedScale)
	r.tier = 2
	r.setStatus(StatusTier2Running)
	r.engine.logger.Debug("no tier 1 matches, scoring every candidate", "relaxed", relaxed, "candidates", len(candidates))

	r.progress.beginPass(len(candidates), 50, 100)
	results, _, err = r.evaluate(ctx, srcFS, candidates, relaxed, false)
	if err != nil {
		return r.stopped(err)
	}
	results = slices.DeleteFunc(results, func(m MatchResult) bool {
		return m.Breakdown.Total < r.req.Threshold
	})
	return r.completed(results)
}

// evaluate scores candidates on the worker pool and returns those whose
// total reaches cutoff, in listing order, plus the number that passed the
// prefilter.
func (r *searchRun) evaluate(ctx context.Context, src *FeatureSet, candidates []*core.Material, cutoff float64, prefilter bool) ([]MatchResult, int, error) {
	var passed atomic.Int64
	chunks, err := runChunks(ctx, r.engine.pool, len(candidates), func(ctx context.Context, lo, hi int) []evaluation {
		var out []evaluation
		for i := lo; i < hi; i++ {
			if ctx.Err() != nil {
				return out
			}
			if _, done := r.skippedAt[i]; done {
				continue
			}
			cand := candidates[i]
			if prefilter && !Passes(src, cand, r.req.Threshold) {
				continue
			}
			passed.Add(1)

			ev, err := r.evaluateOne(ctx, src, cand, i, cutoff)
			if err != nil {
				if ctx.Err() == nil {
					r.abort(err)
				}
				return out
			}
			if ev.result != nil || ev.skip != nil {
				out = append(out, ev)
			}
		}
		return out
	}, r.progress.add)
	if err != nil {
		return nil, 0, err
	}
	if r.abortErr != nil {
		return nil, 0, r.abortErr
	}
	if ctx.Err() != nil {
		return nil, 0, ctx.Err()
	}

	var results []MatchResult
	for _, chunk := range chunks {
		for _, ev := range chunk {
			if ev.skip != nil {
				r.skip(*ev.skip)
				continue
			}
			results = append(results, *ev.result)
		}
	}
	return results, int(passed.Load()), nil
}

// evaluateOne hydrates and scores a single candidate. Only repository
// failures are returned as errors; a candidate that vanished or could not
// be scored becomes a skip.
func (r *searchRun) evaluateOne(ctx context.Context, src *FeatureSet, cand *core.Material, index int, cutoff float64) (evaluation, error) {
	fs, err := r.engine.features(ctx, cand)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return evaluation{skip: &Skip{Material: cand, Reason: err, index: index}}, nil
		}
		return evaluation{}, err
	}

	b, err := safeScore(src, fs, r.weights)
	if err != nil {
		return evaluation{skip: &Skip{Material: cand, Reason: err, index: index}}, nil
	}
	if b.Total < cutoff {
		return evaluation{}, nil
	}
	return evaluation{result: &MatchResult{
		Material:              cand,
		LibraryName:           r.libraryName,
		Breakdown:             b,
		SourceSamplerCount:    src.SamplerCount(),
		CandidateSamplerCount: fs.SamplerCount(),
		SourceParamCount:      src.ParamCount(),
		CandidateParamCount:   fs.ParamCount(),
		index:                 index,
	}}, nil
}

func safeScore(src, cand *FeatureSet, w WeightVector) (b ScoreBreakdown, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrScoring, rec)
		}
	}()
	b = Score(src, cand, w)
	if math.IsNaN(b.Total) {
		return b, fmt.Errorf("%w: total is NaN", ErrScoring)
	}
	return b, nil
}

func (r *searchRun) skip(s Skip) {
	var id core.ID
	if s.Material != nil {
		id = s.Material.Id
	}
	r.engine.logger.Warn("skipping candidate", "material", id, "err", s.Reason)
	if r.skippedAt == nil {
		r.skippedAt = make(map[int]struct{})
	}
	r.skippedAt[s.index] = struct{}{}
	r.skipped = append(r.skipped, s)
	r.monitor.Skipped(s)
}

// completed ranks results and finishes the run with StatusDone.
func (r *searchRun) completed(results []MatchResult) (*Outcome, error) {
	slices.SortStableFunc(results, func(a, b MatchResult) int {
		if c := cmp.Compare(b.Breakdown.Total, a.Breakdown.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	limit := r.req.Limit
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	if results == nil {
		results = []MatchResult{}
	}

	r.setStatus(StatusDone)
	r.progress.finish()
	r.engine.logger.Info("search complete",
		"library", r.req.TargetLibrary,
		"tier", r.tier,
		"scanned", r.scanned,
		"matches", len(results),
		"skipped", len(r.skipped))
	return r.outcome(results), nil
}

// stopped finishes a run that ended early. A recorded repository failure
// wins over cancellation, since aborting cancels the run's own context.
func (r *searchRun) stopped(err error) (*Outcome, error) {
	switch {
	case r.abortErr != nil:
		err = r.abortErr
	case r.searchCtx.Err() != nil:
		r.setStatus(StatusCancelled)
		r.engine.logger.Info("search cancelled", "library", r.req.TargetLibrary)
		return r.outcome(nil), fmt.Errorf("%w: %w", ErrCancelled, context.Cause(r.searchCtx))
	case errors.Is(err, ErrEngineReleased):
		r.setStatus(StatusFailed)
		return r.outcome(nil), err
	}
	r.setStatus(StatusFailed)
	r.engine.logger.Error("search failed", "library", r.req.TargetLibrary, "err", err)
	return r.outcome(nil), fmt.Errorf("%w: %w", ErrSearchFailed, err)
}

func (r *searchRun) outcome(results []MatchResult) *Outcome {
	if results == nil {
		results = []MatchResult{}
	}
	return &Outcome{
		Status:  r.status,
		Results: results,
		Tier:    r.tier,
		Skipped: r.skipped,
		Scanned: r.scanned,
		Weights: r.weights,
	}
}

// excludeSource drops the source record from a listing. Records are the
// same when both ID and library match.
func excludeSource(listed []*core.Material, src *core.Material) []*core.Material {
	out := make([]*core.Material, 0, len(listed))
	for _, m := range listed {
		if m == nil {
			continue
		}
		if src.Id != 0 && m.Id == src.Id && m.LibraryId == src.LibraryId {
			continue
		}
		out = append(out, m)
	}
	return out
}
