package badger

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/materia/storage"
)

// Repository implements storage.MaterialStore for BadgerDB.
type Repository struct {
	backend  *Backend
	libSeq   *badger.Sequence
	matSeq   *badger.Sequence
	ownsBack bool
}

var _ storage.MaterialStore = (*Repository)(nil)

// NewRepository opens (or creates) a BadgerDB material store at path.
// Closing the repository closes the database.
func NewRepository(path string, opts ...BackendOption) (storage.MaterialStore, error) {
	backend, err := OpenBackend(path, false, opts...)
	if err != nil {
		return nil, err
	}
	repo, err := newRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBack = true
	return repo, nil
}

// NewRepositoryFromBackend creates a repository over an already opened backend.
// The caller remains responsible for closing the backend.
func NewRepositoryFromBackend(backend *Backend) (*Repository, error) {
	return newRepository(backend)
}

func newRepository(backend *Backend) (*Repository, error) {
	libSeq, err := backend.GetSequence(libraryIDSeq)
	if err != nil {
		return nil, err
	}
	matSeq, err := backend.GetSequence(materialIDSeq)
	if err != nil {
		libSeq.Release()
		return nil, err
	}
	return &Repository{
		backend: backend,
		libSeq:  libSeq,
		matSeq:  matSeq,
	}, nil
}

// Close releases the ID sequences, and the database when the repository opened it.
func (r *Repository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	err := r.libSeq.Release()
	if mErr := r.matSeq.Release(); err == nil {
		err = mErr
	}
	if r.ownsBack {
		if cErr := r.backend.Close(); err == nil {
			err = cErr
		}
	}
	return err
}

func (r *Repository) checkOpen() error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}
