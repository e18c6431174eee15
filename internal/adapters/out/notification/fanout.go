package notification

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
)

// Fanout delivers every notification to all gateways. One failing gateway does not stop
// the others; the failures are joined.
type Fanout []ports.NotificationGateway

func (f Fanout) NotifyOrder(ctx context.Context, n ports.OrderNotification) error {
	var errs []error
	for _, g := range f {
		if err := g.NotifyOrder(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) NotifyAgent(ctx context.Context, n ports.AgentNotification) error {
	var errs []error
	for _, g := range f {
		if err := g.NotifyAgent(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
