// Package ports defines the contracts between the dispatch core and its adapters:
// repositories, the unit of work, the geocoder, the notification and inventory gateways
// and the event publisher.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the changes of a loaded order. The write is a compare-and-set on
	// aggregate.OriginalVersion(); a concurrent writer yields *errs.ConcurrencyConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order; a missing order yields *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAwaitingAgent returns up to limit CONFIRMED orders without an agent, oldest first.
	GetAwaitingAgent(ctx context.Context, limit int) ([]*order.Order, error)
}
