package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"
)

// PlaceOrderCommandHandler stores a new PENDING order together with its first tracking entry.
// Dispatch is a separate step (ProcessFulfillmentCommandHandler) so intake never waits on
// geocoding or agent search.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle creates the order. An existing order id fails with errs.ErrValueIsInvalid from the repository.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(
		command.OrderID(),
		command.CustomerID(),
		command.Items(),
		command.Address(),
		command.Destination(),
		command.ContactEmail(),
		h.now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	events := o.PopEvents()
	if err = recordTracking(ctx, uow.TrackingRepository(), nil, events); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrdersPlacedTotal.Inc()
	h.publisher.Publish(ctx, events...)
	return nil
}
