// internal/domain/ingredient/repository_port.go
package ingredient

import "context"

// ------------------------------------------------------
// Repository Port for Ingredient ("ingredients" collection)
// ------------------------------------------------------
//
// Outbound port in the hexagonal layering. The Firestore
// implementation lives in adapters/out; domain and application
// layers reference only this interface.
type Repository interface {
	// Create:
	// - persists a new Ingredient.
	// - if i.ID is empty the implementation assigns one and returns it.
	Create(ctx context.Context, i Ingredient) (Ingredient, error)

	// GetByID:
	// - fetches one record by id.
	GetByID(ctx context.Context, id string) (Ingredient, error)

	// Update:
	// - overwrites the record (updatedAt may be refreshed by the implementation).
	Update(ctx context.Context, i Ingredient) (Ingredient, error)

	// Delete:
	// - removes the record by id.
	Delete(ctx context.Context, id string) error

	// ListByOwner:
	// - lists every record owned by ownerID. Order is store-determined.
	ListByOwner(ctx context.Context, ownerID string) ([]Ingredient, error)

	// Watch:
	// - opens a live subscription scoped to ownerID. Every emission
	//   carries the COMPLETE current set of matching records, never a
	//   diff: the initial emission delivers the full current set and
	//   each subsequent store change delivers a full replacement.
	// - the channel is closed when ctx is cancelled or the underlying
	//   stream terminates.
	Watch(ctx context.Context, ownerID string) (<-chan []Ingredient, error)
}
