package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
)

// StoreRepository defines the persistence contract for fulfillment locations.
type StoreRepository interface {
	// Add persists a new store.
	Add(ctx context.Context, aggregate *store.Store) error

	// Get loads a store; a missing store yields *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// GetEligible returns active stores with coordinates ordered by name, then id.
	// The stable order makes the store locator's first-encountered tie-break deterministic.
	GetEligible(ctx context.Context) ([]*store.Store, error)
}
