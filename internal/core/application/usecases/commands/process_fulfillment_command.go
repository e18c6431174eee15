package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessFulfillmentCommandIsNotConstructed = errors.New(
	"ProcessFulfillmentCommand must be created via NewProcessFulfillmentCommand constructor",
)

// ProcessFulfillmentCommand dispatches a PENDING order: nearest store, CONFIRMED, then a best-effort
// agent assignment.
type ProcessFulfillmentCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewProcessFulfillmentCommand(orderID kernel.UUID) (ProcessFulfillmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ProcessFulfillmentCommand{}, err
	}

	return ProcessFulfillmentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrProcessFulfillmentCommandIsNotConstructed)
}

func (c ProcessFulfillmentCommand) OrderID() kernel.UUID {
	return c.orderID
}
