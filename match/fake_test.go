package match

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/storage"
)

// fakeRepository is an in-memory MaterialRepository with fault injection.
// Listings return records without samplers or parameters, so the engine
// has to hydrate them.
type fakeRepository struct {
	mu        sync.Mutex
	libraries map[core.LibraryID]string
	listed    map[core.LibraryID][]*core.Material
	full      map[core.ID]*core.Material

	listErr    error
	samplerErr error
	nameErr    error
	// onSamplers runs before every ListSamplers call
	onSamplers func(ctx context.Context) error

	nameCalls    atomic.Int64
	samplerCalls atomic.Int64
}

var _ storage.MaterialRepository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		libraries: make(map[core.LibraryID]string),
		listed:    make(map[core.LibraryID][]*core.Material),
		full:      make(map[core.ID]*core.Material),
	}
}

func (f *fakeRepository) addLibrary(id core.LibraryID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.libraries[id] = name
}

func (f *fakeRepository) setNameErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nameErr = err
}

// add stores m and lists a copy of it without samplers or parameters.
func (f *fakeRepository) add(m *core.Material) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.full[m.Id] = m
	listing := *m
	listing.Samplers = nil
	listing.Parameters = nil
	f.listed[m.LibraryId] = append(f.listed[m.LibraryId], &listing)
}

// forget keeps m listed but makes its detail reads fail with ErrNotFound.
func (f *fakeRepository) forget(id core.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.full, id)
}

func (f *fakeRepository) ListLibraries(_ context.Context) ([]*core.Library, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*core.Library
	for id, name := range f.libraries {
		out = append(out, &core.Library{Id: id, Name: name})
	}
	return out, nil
}

func (f *fakeRepository) LibraryName(_ context.Context, lib core.LibraryID) (string, error) {
	f.nameCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nameErr != nil {
		return "", f.nameErr
	}
	name, ok := f.libraries[lib]
	if !ok {
		return "", storage.ErrLibraryNotFound
	}
	return name, nil
}

func (f *fakeRepository) ListMaterials(ctx context.Context, lib core.LibraryID) ([]*core.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*core.Material, len(f.listed[lib]))
	copy(out, f.listed[lib])
	return out, nil
}

func (f *fakeRepository) ListSamplers(ctx context.Context, id core.ID) ([]core.Sampler, error) {
	f.samplerCalls.Add(1)
	if f.onSamplers != nil {
		if err := f.onSamplers(ctx); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.samplerErr != nil {
		return nil, f.samplerErr
	}
	m, ok := f.full[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return m.Samplers, nil
}

func (f *fakeRepository) ListParameters(ctx context.Context, id core.ID) ([]core.Parameter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.full[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return m.Parameters, nil
}

func (f *fakeRepository) Close() error {
	return nil
}

// recordingMonitor captures the hooks of one search.
type recordingMonitor struct {
	noopMonitor
	statuses []Status
	listed   int
	passed   int
	skipped  []Skip
	finished *Outcome
}

func (r *recordingMonitor) StatusChanged(s Status) { r.statuses = append(r.statuses, s) }
func (r *recordingMonitor) AfterListing(n int)     { r.listed = n }
func (r *recordingMonitor) AfterPrefilter(n int)   { r.passed = n }
func (r *recordingMonitor) Skipped(s Skip)         { r.skipped = append(r.skipped, s) }
func (r *recordingMonitor) Finish(o *Outcome)      { r.finished = o }
