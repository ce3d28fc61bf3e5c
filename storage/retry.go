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


package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/materia/core"
)

// RetryWithBackoff retries an operation with exponential backoff.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
// Returns the error from the last attempt if all attempts fail.
// ErrNotFound and ErrLibraryNotFound are returned immediately.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("storage operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}

		slog.Debug("storage operation failed, will retry", "attempt", attempt, "maxAttempts", maxAttempts, "error", lastErr)

		if attempt == maxAttempts {
			break
		}

		// baseDelay * 2^(attempt-1)
		delay := baseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrLibraryNotFound),
		errors.Is(err, ErrStorageClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// retryingRepository retries transient read failures of the wrapped repository.
type retryingRepository struct {
	MaterialRepository
	maxAttempts int
	baseDelay   time.Duration
}

// WithRetry wraps repo so every read is retried with exponential backoff.
// maxAttempts <= 1 returns repo unchanged.
func WithRetry(repo MaterialRepository, maxAttempts int, baseDelay time.Duration) MaterialRepository {
	if maxAttempts <= 1 {
		return repo
	}
	return &retryingRepository{
		MaterialRepository: repo,
		maxAttempts:        maxAttempts,
		baseDelay:          baseDelay,
	}
}

func (r *retryingRepository) ListLibraries(ctx context.Context) ([]*core.Library, error) {
	var libs []*core.Library
	err := RetryWithBackoff(ctx, func() error {
		var err error
		libs, err = r.MaterialRepository.ListLibraries(ctx)
		return err
	}, r.maxAttempts, r.baseDelay)
	return libs, err
}

func (r *retryingRepository) LibraryName(ctx context.Context, lib core.LibraryID) (string, error) {
	var name string
	err := RetryWithBackoff(ctx, func() error {
		var err error
		name, err = r.MaterialRepository.LibraryName(ctx, lib)
		return err
	}, r.maxAttempts, r.baseDelay)
	return name, err
}

func (r *retryingRepository) ListMaterials(ctx context.Context, lib core.LibraryID) ([]*core.Material, error) {
	var materials []*core.Material
	err := RetryWithBackoff(ctx, func() error {
		var err error
		materials, err = r.MaterialRepository.ListMaterials(ctx, lib)
		return err
	}, r.maxAttempts, r.baseDelay)
	return materials, err
}

func (r *retryingRepository) ListSamplers(ctx context.Context, id core.ID) ([]core.Sampler, error) {
	var samplers []core.Sampler
	err := RetryWithBackoff(ctx, func() error {
		var err error
		samplers, err = r.MaterialRepository.ListSamplers(ctx, id)
		return err
	}, r.maxAttempts, r.baseDelay)
	return samplers, err
}

func (r *retryingRepository) ListParameters(ctx context.Context, id core.ID) ([]core.Parameter, error) {
	var params []core.Parameter
	err := RetryWithBackoff(ctx, func() error {
		var err error
		params, err = r.MaterialRepository.ListParameters(ctx, id)
		return err
	}, r.maxAttempts, r.baseDelay)
	return params, err
}
