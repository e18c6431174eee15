package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (kernel.Location, error)
}

// OrderNotification is the order-scoped message: {orderId, status, timestamp} plus
// what a customer-facing channel needs to address the customer.
type OrderNotification struct {
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	ContactEmail string
	Status       order.Status
	Message      string
	Timestamp    time.Time
}

// AgentNotification is the agent-scoped message: {orderId, message} addressed to one agent.
type AgentNotification struct {
	AgentID   kernel.UUID
	OrderID   kernel.UUID
	Message   string
	Timestamp time.Time
}

// NotificationGateway pushes lifecycle messages to customers and agents.
// Delivery is at-most-once and best-effort; callers log failures and never retry.
type NotificationGateway interface {
	NotifyOrder(ctx context.Context, n OrderNotification) error
	NotifyAgent(ctx context.Context, n AgentNotification) error
}

// StockRelease asks the inventory collaborator to restore stock of a cancelled order.
type StockRelease struct {
	OrderID kernel.UUID
	Items   []order.Item
}

// InventoryGateway is the stock-keeping collaborator.
type InventoryGateway interface {
	ReleaseStock(ctx context.Context, r StockRelease) error
}

// EventPublisher hands committed domain events to asynchronous delivery.
// Publish never blocks on delivery and never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event)
}
