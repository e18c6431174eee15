package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

// DefaultMaxAssignmentAttempts bounds how many lost reservations an automatic assignment retries.
const DefaultMaxAssignmentAttempts = 3

// ErrOrderIsNotAwaitingAgent is the cause reported when an order is not CONFIRMED or already has an agent.
var ErrOrderIsNotAwaitingAgent = errors.New("order is not awaiting an agent")

// Assignment describes a committed agent assignment.
type Assignment struct {
	OrderID    kernel.UUID
	AgentID    kernel.UUID
	AgentName  string
	DistanceKm float64
}

// AssignAgentCommandHandler reserves an agent and moves the order CONFIRMED -> PROCESSING in one
// transaction. The agent write is a compare-and-set on its version, so two dispatches that
// selected the same AVAILABLE agent cannot both commit: the loser gets errs.ErrConcurrencyConflict.
//
// In auto mode a lost reservation is retried, excluding every agent already lost, up to
// maxAttempts times. Exhaustion is reported as services.ErrNoAgentAvailable and leaves the order
// CONFIRMED for a later retry.
type AssignAgentCommandHandler struct {
	uowFactory  UoWFactory
	locator     services.AgentLocator
	publisher   ports.EventPublisher
	logger      *zap.Logger
	maxAttempts int
	now         func() time.Time
}

func NewAssignAgentCommandHandler(
	uowFactory UoWFactory,
	locator services.AgentLocator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	maxAttempts int,
) AssignAgentCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAssignmentAttempts
	}

	return AssignAgentCommandHandler{
		uowFactory:  uowFactory,
		locator:     locator,
		publisher:   publisher,
		logger:      logger.With(zap.String("component", "agent-assignment")),
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Handle runs a manual or automatic assignment.
//
// Returns:
//   - Assignment: the committed assignment
//   - error: errs.ErrObjectNotFound for unknown ids, errs.ErrInvalidStateTransition when the order
//     is not awaiting an agent or the requested agent is not AVAILABLE, errs.ErrConcurrencyConflict
//     when a manual reservation lost, services.ErrNoAgentAvailable when auto search found nobody
func (h AssignAgentCommandHandler) Handle(ctx context.Context, command AssignAgentCommand) (Assignment, error) {
	if err := command.Validate(); err != nil {
		return Assignment{}, err
	}

	if !command.IsAuto() {
		return h.assignRequested(ctx, command.OrderID(), *command.AgentID(), command.Actor())
	}

	var lost []kernel.UUID
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		assignment, selected, err := h.assignNearest(ctx, command.OrderID(), command.Actor(), lost)
		if err == nil {
			return assignment, nil
		}
		if !errors.Is(err, errs.ErrConcurrencyConflict) || selected == nil {
			return Assignment{}, err
		}

		metrics.AssignmentConflictsTotal.Inc()
		h.logger.Info("agent reservation lost, retrying with the next candidate",
			zap.Stringer("orderId", command.OrderID()),
			zap.Stringer("agentId", *selected),
			zap.Int("attempt", attempt),
		)
		lost = append(lost, *selected)
	}

	return Assignment{}, fmt.Errorf("%w: order %s lost %d reservations",
		services.ErrNoAgentAvailable, command.OrderID(), h.maxAttempts)
}

func (h AssignAgentCommandHandler) assignRequested(
	ctx context.Context,
	orderID, agentID kernel.UUID,
	actor string,
) (Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := h.loadAwaitingOrder(ctx, uow, orderID)
	if err != nil {
		return Assignment{}, err
	}

	a, err := uow.AgentRepository().Get(ctx, agentID)
	if err != nil {
		return Assignment{}, err
	}
	// Another order holds the agent.
	if a.Status() == agent.Busy {
		return Assignment{}, errs.NewConcurrencyConflictError("agent", agentID, a.Version())
	}

	return h.assign(ctx, uow, o, a, 0, actor)
}

// assignNearest returns the agent it tried to reserve alongside the error so the caller can
// exclude it after a lost compare-and-set.
func (h AssignAgentCommandHandler) assignNearest(
	ctx context.Context,
	orderID kernel.UUID,
	actor string,
	exclude []kernel.UUID,
) (Assignment, *kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Assignment{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := h.loadAwaitingOrder(ctx, uow, orderID)
	if err != nil {
		return Assignment{}, nil, err
	}

	s, err := uow.StoreRepository().Get(ctx, *o.StoreID())
	if err != nil {
		return Assignment{}, nil, err
	}
	storeLocation := s.Location()
	if storeLocation == nil {
		return Assignment{}, nil, errs.NewObjectNotFoundError("store location", s.ID())
	}

	candidates, err := h.candidates(ctx, uow)
	if err != nil {
		return Assignment{}, nil, err
	}

	selected, distance, err := h.locator.Nearest(*storeLocation, candidates, exclude...)
	if err != nil {
		return Assignment{}, nil, err
	}

	selectedID := selected.ID()
	assignment, err := h.assign(ctx, uow, o, selected, distance, actor)
	if err != nil {
		return Assignment{}, &selectedID, err
	}
	return assignment, &selectedID, nil
}

func (h AssignAgentCommandHandler) loadAwaitingOrder(ctx context.Context, uow UoW, orderID kernel.UUID) (*order.Order, error) {
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsAwaitingAgent() {
		return nil, errs.NewInvalidStateTransitionErrorWithCause("order", o.Status(), order.Processing,
			ErrOrderIsNotAwaitingAgent)
	}
	return o, nil
}

func (h AssignAgentCommandHandler) candidates(ctx context.Context, uow UoW) ([]services.Candidate, error) {
	available, err := uow.AgentRepository().GetAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(available))
	for _, a := range available {
		ids = append(ids, a.ID())
	}

	latest, err := uow.LocationRepository().LatestFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	candidates := make([]services.Candidate, 0, len(available))
	for _, a := range available {
		c := services.Candidate{Agent: a}
		if sample, ok := latest[a.ID()]; ok {
			c.Sample = &sample
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// assign reserves the agent, moves the order to PROCESSING and commits both with the tracking entry.
func (h AssignAgentCommandHandler) assign(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	a *agent.Agent,
	distanceKm float64,
	actor string,
) (Assignment, error) {
	if err := a.Reserve(); err != nil {
		return Assignment{}, err
	}
	if err := o.AssignAgent(a.ID(), a.Name(), actor, h.now()); err != nil {
		return Assignment{}, err
	}

	if err := uow.AgentRepository().Update(ctx, a); err != nil {
		return Assignment{}, err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return Assignment{}, err
	}

	events := o.PopEvents()
	if err := recordTracking(ctx, uow.TrackingRepository(), uow.LocationRepository(), events); err != nil {
		return Assignment{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return Assignment{}, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(order.Processing.String()).Inc()
	h.publisher.Publish(ctx, events...)

	return Assignment{
		OrderID:    o.ID(),
		AgentID:    a.ID(),
		AgentName:  a.Name(),
		DistanceKm: distanceKm,
	}, nil
}
