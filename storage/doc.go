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


// Package storage provides the storage abstraction layer for materia.
//
// This package defines repository interfaces that decouple the matching engine
// from the backing store. Two backends are provided:
//
//   - storage/badger: the native read-write store used by the seeder and CLI
//   - storage/sqlite: a read-only adapter over an existing material database
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces:
//
//	repo, err := badger.NewRepository(path)  // returns storage.MaterialStore
//	repo, err := sqlite.Open(path)           // returns storage.MaterialRepository
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Architecture
//
//   - MaterialRepository: read operations consumed by the matching engine
//   - MaterialWriter: operations for populating a store
//   - MaterialStore: both of the above
//
// WithRetry decorates any MaterialRepository with exponential backoff for
// transient read failures. Lookups of missing records are never retried.
//
// # Usage
//
//	repo, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
