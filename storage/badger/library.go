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


package badger

import (
	"context"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/storage"
)

// AddLibraries adds one or more libraries to storage.
func (r *Repository) AddLibraries(ctx context.Context, libs ...*core.Library) ([]*core.Library, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, lib := range libs {
			if err := core.ValidateLibrary(lib); err != nil {
				return err
			}
			if lib.Id == 0 {
				id, err := nextID(r.libSeq)
				if err != nil {
					return err
				}
				lib.Id = core.LibraryID(id)
			}
			if err := tx.Set(makeLibraryKey(lib.Id), storage.MarshalLibrary(lib)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	return libs, err
}

// ListLibraries returns every library ordered by ID.
func (r *Repository) ListLibraries(ctx context.Context) ([]*core.Library, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var libs []*core.Library
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeLibraryScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var lib *core.Library
			err := iter.Item().Value(func(val []byte) error {
				var err error
				lib, err = storage.UnmarshalLibrary(val)
				return err
			})
			if err != nil {
				return err
			}
			libs = append(libs, lib)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Keys are textual, so restore numeric order
	slices.SortFunc(libs, func(a, b *core.Library) int {
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		}
		return 0
	})
	return libs, nil
}

// LibraryName returns the display name of a library.
func (r *Repository) LibraryName(ctx context.Context, id core.LibraryID) (string, error) {
	if err := r.checkOpen(); err != nil {
		return "", err
	}
	var lib *core.Library
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		lib, err = readLibrary(tx, id)
		return err
	}, false)
	if err != nil {
		return "", err
	}
	return lib.Name, nil
}

// readLibrary loads a library inside tx.
// Returns ErrLibraryNotFound if it doesn't exist.
func readLibrary(tx *badger.Txn, id core.LibraryID) (*core.Library, error) {
	item, err := tx.Get(makeLibraryKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, fmt.Errorf("%w: %d", storage.ErrLibraryNotFound, id)
		}
		return nil, err
	}
	var lib *core.Library
	err = item.Value(func(val []byte) error {
		var err error
		lib, err = storage.UnmarshalLibrary(val)
		return err
	})
	return lib, err
}
