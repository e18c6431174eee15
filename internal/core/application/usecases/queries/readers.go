// Package queries contains read operations over dispatch state.
// Handlers depend on narrow reader interfaces: repositories satisfy the aggregate readers,
// dedicated read models serve listings that join several tables.
package queries

import (
	"context"
	"iter"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/tracking"
)

type (
	// OrderReader loads one order. ports.OrderRepository satisfies it.
	OrderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	}

	// AwaitingOrderReader lists CONFIRMED orders without an agent. ports.OrderRepository satisfies it.
	AwaitingOrderReader interface {
		GetAwaitingAgent(ctx context.Context, limit int) ([]*order.Order, error)
	}

	// StoreReader loads stores for estimates. ports.StoreRepository satisfies it.
	StoreReader interface {
		Get(ctx context.Context, id kernel.UUID) (*store.Store, error)
		GetEligible(ctx context.Context) ([]*store.Store, error)
	}

	// TrackingReader replays an order's audit log. ports.TrackingReader satisfies it.
	TrackingReader interface {
		History(ctx context.Context, orderID kernel.UUID, direction tracking.Direction) iter.Seq2[*tracking.Entry, error]
	}

	// AgentReader is the agent roster read model: agents joined with their latest position.
	AgentReader interface {
		ListAgents(ctx context.Context, filter AgentFilter) ([]GetAgentsQueryResponse, error)
	}
)
