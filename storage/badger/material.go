package badger

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/storage"
)

// AddMaterials adds one or more materials to storage.
// Nil sampler or parameter lists are stored as empty, so every stored
// material is returned hydrated.
func (r *Repository) AddMaterials(ctx context.Context, materials ...*core.Material) ([]*core.Material, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		known := make(map[core.LibraryID]bool)
		for _, m := range materials {
			if err := core.ValidateMaterial(m); err != nil {
				return err
			}
			if !known[m.LibraryId] {
				if _, err := readLibrary(tx, m.LibraryId); err != nil {
					return err
				}
				known[m.LibraryId] = true
			}
			if m.Id == 0 {
				id, err := nextID(r.matSeq)
				if err != nil {
					return err
				}
				m.Id = core.ID(id)
			}
			if m.Samplers == nil {
				m.Samplers = []core.Sampler{}
			}
			if m.Parameters == nil {
				m.Parameters = []core.Parameter{}
			}

			if err := tx.Set(makeMaterialKey(m.Id), storage.MarshalMaterial(m)); err != nil {
				return err
			}
			if err := tx.Set(makeMaterialLibraryKey(m.LibraryId, m.Id), storage.MarshalID(m.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	return materials, err
}

// GetMaterial retrieves a single material by ID.
func (r *Repository) GetMaterial(ctx context.Context, id core.ID) (*core.Material, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var m *core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		m, err = readMaterial(tx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("%w: material %d", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return m, err
}

// DeleteMaterials removes materials by their IDs.
func (r *Repository) DeleteMaterials(ctx context.Context, ids ...core.ID) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			m, err := readMaterial(tx, id)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("%w: material %d", storage.ErrNotFound, id)
			}
			if err := tx.Delete(makeMaterialLibraryKey(m.LibraryId, id)); err != nil {
				return err
			}
			if err := tx.Delete(makeMaterialKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListMaterials enumerates a library's materials ordered by filename, then ID.
func (r *Repository) ListMaterials(ctx context.Context, lib core.LibraryID) ([]*core.Material, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var materials []*core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialMaterialLibraryKey(lib)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			id := materialIDFromLibraryKey(iter.Item().Key())
			m, err := readMaterial(tx, id)
			if err != nil {
				return err
			}
			if m != nil {
				materials = append(materials, m)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(materials, func(a, b *core.Material) int {
		if c := strings.Compare(a.Filename, b.Filename); c != 0 {
			return c
		}
		return cmp.Compare(a.Id, b.Id)
	})
	return materials, nil
}

// ListSamplers returns the samplers of a material.
func (r *Repository) ListSamplers(ctx context.Context, id core.ID) ([]core.Sampler, error) {
	m, err := r.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Samplers, nil
}

// ListParameters returns the parameters of a material.
func (r *Repository) ListParameters(ctx context.Context, id core.ID) ([]core.Parameter, error) {
	m, err := r.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Parameters, nil
}

// readMaterial loads a material inside tx. Returns nil, nil if it doesn't exist.
func readMaterial(tx *badger.Txn, id core.ID) (*core.Material, error) {
	item, err := tx.Get(makeMaterialKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var m *core.Material
	err = item.Value(func(val []byte) error {
		var err error
		m, err = storage.UnmarshalMaterial(val)
		return err
	})
	return m, err
}
