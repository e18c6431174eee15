package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its assignments.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItem is one line of an order in the read model.
type OrderItem struct {
	ProductID string
	Quantity  int
}

// GetOrderQueryResponse is the order read model.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	Status            order.Status
	Items             []OrderItem
	Address           string
	Destination       *kernel.Location
	StoreID           *kernel.UUID
	AgentID           *kernel.UUID
	AgentName         string
	EstimatedDelivery *time.Time
	OrderDate         time.Time
	Version           int64
}

func newOrderResponse(o *order.Order) GetOrderQueryResponse {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{ProductID: item.ProductID(), Quantity: item.Quantity()})
	}

	return GetOrderQueryResponse{
		ID:                o.ID(),
		CustomerID:        o.CustomerID(),
		Status:            o.Status(),
		Items:             items,
		Address:           o.Address(),
		Destination:       o.Destination(),
		StoreID:           o.StoreID(),
		AgentID:           o.AgentID(),
		AgentName:         o.AgentName(),
		EstimatedDelivery: o.EstimatedDelivery(),
		OrderDate:         o.OrderDate(),
		Version:           o.Version(),
	}
}
