// Package commands contains the operations that change dispatch state.
// Every handler follows the same pattern: validate the command, open a unit of work,
// mutate aggregates, persist them with their tracking entries, commit, then hand the
// committed events to the publisher.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces, segmented by the repositories each command needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository of the current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StoreRepoFactory provides the store repository of the current transaction.
	StoreRepoFactory interface {
		StoreRepository() ports.StoreRepository
	}

	// AgentRepoFactory provides the agent repository of the current transaction.
	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// LocationRepoFactory provides the agent position repository of the current transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// TrackingRepoFactory provides the tracking log of the current transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// OrderUoW covers order intake: the order and its first tracking entry.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		TrackingRepoFactory
	}

	// OrderUoWFactory creates OrderUoW instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StoreUoW covers store administration.
	StoreUoW interface {
		TxManager
		StoreRepoFactory
	}

	// StoreUoWFactory creates StoreUoW instances.
	StoreUoWFactory interface {
		Create() StoreUoW
	}

	// AgentUoW covers agent administration and position reports.
	AgentUoW interface {
		TxManager
		AgentRepoFactory
		LocationRepoFactory
	}

	// AgentUoWFactory creates AgentUoW instances.
	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// UoW spans every aggregate; dispatch and lifecycle changes need all of them.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... mutate, update, append tracking
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StoreRepoFactory
		AgentRepoFactory
		LocationRepoFactory
		TrackingRepoFactory
	}

	// UoWFactory creates UoW instances.
	UoWFactory interface {
		Create() UoW
	}
)
