package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command so concurrent commands stay isolated.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it share the
// transaction started by Begin; nothing is visible to other units of work before Commit.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit makes every change of the transaction visible atomically.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. It is safe to call after Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	StoreRepository() StoreRepository
	AgentRepository() AgentRepository
	LocationRepository() LocationRepository
	TrackingRepository() TrackingRepository
}
