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


package materia

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/materia/config"
	"github.com/poiesic/materia/match"
	"github.com/poiesic/materia/storage"
	"github.com/poiesic/materia/storage/badger"
	"github.com/poiesic/materia/storage/sqlite"
)

// ErrReadOnly indicates that the open backend cannot be written to.
var ErrReadOnly = errors.New("database is read-only")

// Database ties a material store to the engines that search it.
type Database struct {
	repo   storage.MaterialRepository
	store  storage.MaterialStore
	cfg    *config.Config
	logger *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	cfg    *config.Config
	logger *slog.Logger
}

// WithConfig sets the configuration. Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDatabase opens the store at filePath using the configured backend.
// A badger store is created if it doesn't exist; a sqlite database is
// opened read-only from the engine's point of view.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		cfg:    config.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.cfg.Validate(); err != nil {
		return nil, err
	}

	db := &Database{cfg: options.cfg, logger: options.logger}
	switch options.cfg.Storage.Backend {
	case config.BackendSQLite:
		repo, err := sqlite.Open(filePath)
		if err != nil {
			return nil, err
		}
		db.repo = repo
	default:
		store, err := badger.NewRepository(filePath, badger.WithLogger(options.logger))
		if err != nil {
			return nil, err
		}
		db.repo = store
		db.store = store
	}

	db.logger.Debug("database opened", "path", filePath, "backend", options.cfg.Storage.Backend)
	return db, nil
}

// Close closes the underlying store.
func (db *Database) Close() error {
	if err := db.repo.Close(); err != nil {
		db.logger.Error("error closing material repository", "err", err)
		return err
	}
	return nil
}

// Repository returns the read side of the store.
func (db *Database) Repository() storage.MaterialRepository {
	return db.repo
}

// Store returns the writable store, or ErrReadOnly for backends that
// cannot be written.
func (db *Database) Store() (storage.MaterialStore, error) {
	if db.store == nil {
		return nil, fmt.Errorf("%w: %s backend", ErrReadOnly, db.cfg.Storage.Backend)
	}
	return db.store, nil
}

// Config returns the configuration the database was opened with.
func (db *Database) Config() *config.Config {
	return db.cfg
}

// NewEngine creates a matching engine over the store. Options given here
// apply after the ones derived from the configuration.
func (db *Database) NewEngine(opts ...match.Option) (*match.Engine, error) {
	all := append(db.cfg.EngineOptions(), match.WithLogger(db.logger))
	return match.NewEngine(db.repo, append(all, opts...)...)
}
