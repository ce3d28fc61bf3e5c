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


package match

import "errors"

var (
	// ErrRepositoryRequired indicates that a material repository is required but was not provided.
	ErrRepositoryRequired = errors.New("material repository is required")

	// ErrSourceRequired indicates that a search was started without a source material.
	ErrSourceRequired = errors.New("source material is required")

	// ErrInvalidThreshold indicates a threshold outside the 0-100 range.
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")

	// ErrUnknownFeature indicates a feature identifier that doesn't name one of the six features.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrSearchFailed indicates a repository read failed and the search was aborted.
	ErrSearchFailed = errors.New("search failed")

	// ErrCancelled indicates the search was cancelled before completion.
	ErrCancelled = errors.New("search cancelled")

	// ErrScoring indicates a candidate could not be scored. It is only reported
	// inside a Skip and never fails a search.
	ErrScoring = errors.New("scoring failed")

	// ErrEngineReleased indicates the engine's worker pool was already released.
	ErrEngineReleased = errors.New("engine released")
)
