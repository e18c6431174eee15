package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery replays the tracking log of an order.
//
// Example:
//
//	query, _ := NewGetOrderTrackingQuery(orderID, tracking.Descending)
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for entry, err := range history {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(entry.Status(), entry.Message())
//	}
type GetOrderTrackingQuery struct {
	orderID   kernel.UUID
	direction tracking.Direction

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(orderID kernel.UUID, direction tracking.Direction) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{
		orderID:   orderID,
		direction: direction,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderTrackingQuery) Direction() tracking.Direction {
	return q.direction
}
