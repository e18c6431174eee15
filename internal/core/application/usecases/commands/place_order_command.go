package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand carries a fully formed order from checkout. Pricing and stock were settled
// upstream; the dispatch core only needs who ordered what and where it goes.
//
// Example:
//
//	item, _ := order.NewItem("sku-42", 2)
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, []order.Item{item},
//	    "12 Adeniran Ogunsanya St, Surulere", nil, "ada@example.com")
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	items        []order.Item
	address      string
	destination  *kernel.Location
	contactEmail string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates identifiers, items and address. Destination coordinates are
// optional; without them the address is geocoded during fulfillment.
func NewPlaceOrderCommand(
	orderID, customerID kernel.UUID,
	items []order.Item,
	address string,
	destination *kernel.Location,
	contactEmail string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		contactEmail: strings.TrimSpace(contactEmail),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setAddress(address),
		cmd.setDestination(destination),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c PlaceOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c PlaceOrderCommand) Address() string {
	return c.address
}

// Destination returns the checkout coordinates, or nil when the address still has to be geocoded.
func (c PlaceOrderCommand) Destination() *kernel.Location {
	if c.destination == nil {
		return nil
	}
	loc := *c.destination
	return &loc
}

func (c PlaceOrderCommand) ContactEmail() string {
	return c.contactEmail
}

func (c *PlaceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return order.ErrAddressIsRequired
	}
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setDestination(destination *kernel.Location) error {
	if destination == nil {
		return nil
	}
	if err := destination.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("destination", err)
	}
	loc := *destination
	c.destination = &loc
	return nil
}
