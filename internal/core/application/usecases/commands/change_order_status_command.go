package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests a lifecycle step that carries no assignment data.
// CONFIRMED and PROCESSING are rejected here: they are reached only through dispatch.
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	status  order.Status
	actor   string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand accepts PACKED, OUT_FOR_DELIVERY, DELIVERED, CANCELLED and REFUNDED.
func NewChangeOrderStatusCommand(orderID kernel.UUID, status order.Status, actor string) (ChangeOrderStatusCommand, error) {
	var errStatus error
	switch status {
	case order.Packed, order.OutForDelivery, order.Delivered, order.Cancelled, order.Refunded:
	case order.Unknown, order.Pending, order.Confirmed, order.Processing:
		errStatus = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s cannot be requested directly", status))
	default:
		errStatus = status.Validate()
	}

	if err := errors.Join(orderID.Validate(), errStatus); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		status:  status,
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c ChangeOrderStatusCommand) Actor() string {
	return c.actor
}
