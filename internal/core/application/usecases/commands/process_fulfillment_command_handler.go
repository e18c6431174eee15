package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

// Outcome tells whether dispatch finished with an agent or left the order waiting for one.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	// OutcomeAssigned means the order reached PROCESSING with an agent.
	OutcomeAssigned
	// OutcomeDeferred means the order is CONFIRMED and waits for an agent.
	OutcomeDeferred
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAssigned:
		return "assigned"
	case OutcomeDeferred:
		return "deferred"
	case OutcomeUnknown:
	}
	return "unknown"
}

// ErrOrderIsNotPending is the cause reported when dispatch is requested for an order past PENDING.
var ErrOrderIsNotPending = errors.New("order is not pending")

// FulfillmentResult is the outcome of a dispatch.
type FulfillmentResult struct {
	OrderID           kernel.UUID
	StoreID           kernel.UUID
	StoreDistanceKm   float64
	EstimatedDelivery time.Time
	Outcome           Outcome
	// Assignment is set when Outcome is OutcomeAssigned.
	Assignment *Assignment
}

// ProcessFulfillmentCommandHandler is the dispatch coordinator.
//
// The store step runs in its own transaction and is committed before any agent search, so a
// CONFIRMED order is never lost because no rider was nearby. The agent step reuses
// AssignAgentCommandHandler in auto mode; its soft failures become OutcomeDeferred.
//
// Example:
//
//	cmd, _ := NewProcessFulfillmentCommand(orderID)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoStoreAvailable):
//	    // 422, the order stays PENDING
//	case err != nil:
//	    return err
//	case result.Outcome == OutcomeDeferred:
//	    // CONFIRMED, the retry job will look for an agent
//	}
type ProcessFulfillmentCommandHandler struct {
	uowFactory   UoWFactory
	geocoder     ports.Geocoder
	storeLocator services.StoreLocator
	estimator    services.DeliveryEstimator
	assigner     AssignAgentCommandHandler
	publisher    ports.EventPublisher
	logger       *zap.Logger
	autoAssign   bool
	now          func() time.Time
}

func NewProcessFulfillmentCommandHandler(
	uowFactory UoWFactory,
	geocoder ports.Geocoder,
	storeLocator services.StoreLocator,
	estimator services.DeliveryEstimator,
	assigner AssignAgentCommandHandler,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	autoAssign bool,
) ProcessFulfillmentCommandHandler {
	return ProcessFulfillmentCommandHandler{
		uowFactory:   uowFactory,
		geocoder:     geocoder,
		storeLocator: storeLocator,
		estimator:    estimator,
		assigner:     assigner,
		publisher:    publisher,
		logger:       logger.With(zap.String("component", "dispatch")),
		autoAssign:   autoAssign,
		now:          time.Now,
	}
}

// Handle dispatches the order.
//
// Returns:
//   - FulfillmentResult: store, ETA and whether an agent was assigned
//   - error: errs.ErrObjectNotFound, errs.ErrInvalidStateTransition for non-PENDING orders,
//     services.ErrNoStoreAvailable, geocoder failures. Missing agents are never an error.
func (h ProcessFulfillmentCommandHandler) Handle(ctx context.Context, command ProcessFulfillmentCommand) (FulfillmentResult, error) {
	if err := command.Validate(); err != nil {
		return FulfillmentResult{}, err
	}

	result, err := h.confirm(ctx, command.OrderID())
	if err != nil {
		if errors.Is(err, services.ErrNoStoreAvailable) {
			metrics.FulfillmentOutcomesTotal.WithLabelValues("no_store").Inc()
		}
		return FulfillmentResult{}, err
	}

	result.Outcome = OutcomeDeferred
	if h.autoAssign {
		h.assignAgent(ctx, &result)
	}

	metrics.FulfillmentOutcomesTotal.WithLabelValues(result.Outcome.String()).Inc()
	return result, nil
}

func (h ProcessFulfillmentCommandHandler) confirm(ctx context.Context, orderID kernel.UUID) (FulfillmentResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FulfillmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, orderID)
	if err != nil {
		return FulfillmentResult{}, err
	}
	if o.Status() != order.Pending {
		return FulfillmentResult{}, errs.NewInvalidStateTransitionErrorWithCause("order", o.Status(), order.Confirmed,
			ErrOrderIsNotPending)
	}

	destination := o.Destination()
	if destination == nil {
		resolved, err := h.geocoder.Resolve(ctx, o.Address())
		if err != nil {
			return FulfillmentResult{}, err
		}
		if err = o.ResolveDestination(resolved); err != nil {
			return FulfillmentResult{}, err
		}
		destination = &resolved
	}

	stores, err := uow.StoreRepository().GetEligible(ctx)
	if err != nil {
		return FulfillmentResult{}, err
	}

	nearest, distance, err := h.storeLocator.Nearest(*destination, stores)
	if err != nil {
		return FulfillmentResult{}, err
	}

	eta, err := h.estimator.ETA(nearest, *destination)
	if err != nil {
		return FulfillmentResult{}, err
	}

	now := h.now()
	estimatedDelivery := now.Add(time.Duration(eta) * time.Minute)
	if err = o.Confirm(nearest.ID(), estimatedDelivery, now); err != nil {
		return FulfillmentResult{}, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return FulfillmentResult{}, err
	}

	events := o.PopEvents()
	if err = recordTracking(ctx, uow.TrackingRepository(), nil, events); err != nil {
		return FulfillmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return FulfillmentResult{}, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(order.Confirmed.String()).Inc()
	h.publisher.Publish(ctx, events...)

	return FulfillmentResult{
		OrderID:           o.ID(),
		StoreID:           nearest.ID(),
		StoreDistanceKm:   distance,
		EstimatedDelivery: estimatedDelivery.UTC(),
	}, nil
}

// assignAgent never fails the dispatch: the order is already CONFIRMED and committed.
func (h ProcessFulfillmentCommandHandler) assignAgent(ctx context.Context, result *FulfillmentResult) {
	cmd, err := NewAutoAssignAgentCommand(result.OrderID, "")
	if err != nil {
		h.logger.Error("cannot build agent assignment", zap.Error(err))
		return
	}

	assignment, err := h.assigner.Handle(ctx, cmd)
	switch {
	case errors.Is(err, services.ErrNoAgentAvailable):
		h.logger.Info("no agent available, order awaits assignment",
			zap.Stringer("orderId", result.OrderID),
			zap.Stringer("storeId", result.StoreID),
		)
	case err != nil:
		h.logger.Error("agent assignment failed, order awaits assignment",
			zap.Stringer("orderId", result.OrderID),
			zap.Error(err),
		)
	default:
		result.Outcome = OutcomeAssigned
		result.Assignment = &assignment
	}
}
