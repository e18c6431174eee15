package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Event is a fact recorded by the Order aggregate. Events are collected on the aggregate and
// drained by the application layer after a successful commit.
type Event interface {
	EventName() string
}

// StatusChanged is recorded for order placement and for every lifecycle transition.
// The application layer turns it into exactly one tracking entry and an order-scoped notification.
type StatusChanged struct {
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	ContactEmail string
	From         Status
	To           Status
	Message      string
	Actor        string
	// AgentID is the agent assigned at the time of the change, if any.
	AgentID   *kernel.UUID
	AgentName string
	// ReleaseAgent is set when To is terminal and an agent must go back to AVAILABLE.
	ReleaseAgent bool
	// RestockRequired is set for cancellations after the store started preparing the order.
	RestockRequired bool
	Items           []Item
	// Sequence is the order version after the change; it orders entries within one order.
	Sequence   int64
	OccurredAt time.Time
}

// EventName implements Event.
func (StatusChanged) EventName() string { return "order.status_changed" }

// AgentAssigned is recorded when an agent takes the order; it feeds the agent-scoped channel.
type AgentAssigned struct {
	OrderID    kernel.UUID
	StoreID    kernel.UUID
	AgentID    kernel.UUID
	AgentName  string
	Message    string
	OccurredAt time.Time
}

// EventName implements Event.
func (AgentAssigned) EventName() string { return "order.agent_assigned" }
