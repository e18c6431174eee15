package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"
)

// ChangeOrderStatusCommandHandler applies a lifecycle transition. In the same transaction it
// releases the agent of an order that reached a terminal state and appends the tracking entry;
// notifications and restock requests leave through the publisher after commit.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle returns errs.ErrObjectNotFound for an unknown order, errs.ErrInvalidStateTransition for a
// transition outside the lifecycle table and errs.ErrConcurrencyConflict when the order or its
// agent changed concurrently.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = o.TransitionTo(command.Status(), command.Actor(), h.now()); err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	events := o.PopEvents()
	if err = releaseAgents(ctx, uow.AgentRepository(), events); err != nil {
		return err
	}
	if err = recordTracking(ctx, uow.TrackingRepository(), uow.LocationRepository(), events); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(o.Status().String()).Inc()
	h.publisher.Publish(ctx, events...)
	return nil
}
