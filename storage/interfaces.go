package storage

import (
	"context"

	"github.com/poiesic/materia/core"
)

// MaterialRepository is the read side consumed by the matching engine.
// Implementations must be thread-safe and support concurrent access.
type MaterialRepository interface {
	// ListLibraries returns every library, ordered by ID.
	ListLibraries(ctx context.Context) ([]*core.Library, error)

	// LibraryName returns the display name of a library.
	// Returns ErrLibraryNotFound if the library doesn't exist.
	LibraryName(ctx context.Context, lib core.LibraryID) (string, error)

	// ListMaterials enumerates the materials of a library in stable order.
	// Listed records may omit samplers and parameters; see core.Material.Hydrated.
	// An unknown library yields an empty list, not an error.
	ListMaterials(ctx context.Context, lib core.LibraryID) ([]*core.Material, error)

	// ListSamplers returns the samplers of a material in declaration order.
	ListSamplers(ctx context.Context, id core.ID) ([]core.Sampler, error)

	// ListParameters returns the parameters of a material in declaration order.
	ListParameters(ctx context.Context, id core.ID) ([]core.Parameter, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// MaterialWriter provides operations for populating a material store.
type MaterialWriter interface {
	// AddLibraries adds one or more libraries.
	// For libraries with ID=0, generates new IDs from sequence.
	AddLibraries(ctx context.Context, libs ...*core.Library) ([]*core.Library, error)

	// AddMaterials adds one or more fully populated materials.
	// For materials with ID=0, generates new IDs from sequence.
	// Returns ErrLibraryNotFound if a material references an unknown library.
	AddMaterials(ctx context.Context, materials ...*core.Material) ([]*core.Material, error)

	// GetMaterial retrieves a single hydrated material by ID.
	// Returns ErrNotFound if the material doesn't exist.
	GetMaterial(ctx context.Context, id core.ID) (*core.Material, error)

	// DeleteMaterials removes materials by their IDs.
	// Returns ErrNotFound if any material doesn't exist.
	DeleteMaterials(ctx context.Context, ids ...core.ID) error
}

// MaterialStore is a read-write material repository.
type MaterialStore interface {
	MaterialRepository
	MaterialWriter
}
