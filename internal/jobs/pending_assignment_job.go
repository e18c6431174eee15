package jobs

import (
	"context"
	"errors"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPendingAssignmentSchedule runs the retry every ten seconds.
const DefaultPendingAssignmentSchedule = "*/10 * * * * *"

const jobActor = "pending-assignment-job"

type (
	// AwaitingOrdersLister lists CONFIRMED orders without an agent.
	AwaitingOrdersLister interface {
		Handle(ctx context.Context, query queries.GetAwaitingAgentOrdersQuery) ([]queries.GetOrderQueryResponse, error)
	}

	// AgentAssigner runs one agent assignment.
	AgentAssigner interface {
		Handle(ctx context.Context, command commands.AssignAgentCommand) (commands.Assignment, error)
	}
)

// PendingAssignmentJob retries agent assignment for orders that were confirmed while no agent
// was nearby. Orders are visited oldest first; one failing order does not stop the round.
type PendingAssignmentJob struct {
	orders   AwaitingOrdersLister
	assigner AgentAssigner
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewPendingAssignmentJob creates the job. An empty schedule means DefaultPendingAssignmentSchedule,
// a non-positive batch means queries.DefaultAwaitingOrdersLimit.
func NewPendingAssignmentJob(
	orders AwaitingOrdersLister,
	assigner AgentAssigner,
	schedule string,
	batch int,
	logger *zap.Logger,
) *PendingAssignmentJob {
	if schedule == "" {
		schedule = DefaultPendingAssignmentSchedule
	}
	if batch <= 0 {
		batch = queries.DefaultAwaitingOrdersLimit
	}

	return &PendingAssignmentJob{
		orders:   orders,
		assigner: assigner,
		schedule: schedule,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "pending_assignment_job")),
	}
}

// Start registers the job on its schedule.
func (j *PendingAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Pending assignment job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the schedule and waits for a running round to finish.
func (j *PendingAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Pending assignment job stopped")
}

// RunOnce performs one retry round and returns how many orders got an agent.
func (j *PendingAssignmentJob) RunOnce(ctx context.Context) int {
	query, err := queries.NewGetAwaitingAgentOrdersQuery(j.batch)
	if err != nil {
		j.logger.Error("Pending assignment job failed", zap.Error(err))
		return 0
	}

	awaiting, err := j.orders.Handle(ctx, query)
	if err != nil {
		j.logger.Error("Pending assignment job failed to list orders", zap.Error(err))
		return 0
	}

	assigned := 0
	for _, o := range awaiting {
		if ctx.Err() != nil {
			break
		}

		cmd, cmdErr := commands.NewAutoAssignAgentCommand(o.ID, jobActor)
		if cmdErr != nil {
			j.logger.Error("Pending assignment job built an invalid command", zap.Error(cmdErr))
			continue
		}

		assignment, assignErr := j.assigner.Handle(ctx, cmd)
		switch {
		case assignErr == nil:
			assigned++
			metrics.PendingAssignmentsRetriedTotal.WithLabelValues("assigned").Inc()
			j.logger.Info("Agent assigned to waiting order",
				zap.Stringer("orderId", assignment.OrderID),
				zap.Stringer("agentId", assignment.AgentID),
			)
		case isExpected(assignErr):
			metrics.PendingAssignmentsRetriedTotal.WithLabelValues("waiting").Inc()
			j.logger.Debug("Order still waiting for an agent", zap.Stringer("orderId", o.ID), zap.Error(assignErr))
		default:
			metrics.PendingAssignmentsRetriedTotal.WithLabelValues("failed").Inc()
			j.logger.Error("Pending assignment failed", zap.Stringer("orderId", o.ID), zap.Error(assignErr))
		}
	}

	return assigned
}

// isExpected reports business outcomes that only mean "try again later": nobody nearby, or the
// order moved on (cancelled, assigned manually) since it was listed.
func isExpected(err error) bool {
	return errors.Is(err, services.ErrNoAgentAvailable) ||
		errors.Is(err, services.ErrNoStoreAvailable) ||
		errors.Is(err, errs.ErrInvalidStateTransition) ||
		errors.Is(err, errs.ErrConcurrencyConflict)
}
