package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxReportClockSkew bounds how far ahead of the server clock a device may date a report.
const MaxReportClockSkew = time.Minute

// ReportAgentLocationCommandHandler appends an agent position sample. Samples are inserts only,
// so reports never contend with dispatch for the agent row.
type ReportAgentLocationCommandHandler struct {
	uowFactory AgentUoWFactory
	now        func() time.Time
}

func NewReportAgentLocationCommandHandler(uowFactory AgentUoWFactory) ReportAgentLocationCommandHandler {
	return ReportAgentLocationCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h ReportAgentLocationCommandHandler) Handle(ctx context.Context, command ReportAgentLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := h.now()
	recordedAt := command.RecordedAt()
	if recordedAt.IsZero() {
		recordedAt = now
	}
	if limit := now.Add(MaxReportClockSkew); recordedAt.After(limit) {
		return errs.NewValueIsOutOfRangeError("recordedAt", recordedAt.UTC(), time.Time{}, limit.UTC())
	}

	sample, err := agent.NewLocationSample(kernel.NewUUID(), command.AgentID(), command.Location(), recordedAt)
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

	if _, err = uow.AgentRepository().Get(ctx, command.AgentID()); err != nil {
		return err
	}

	if err = uow.LocationRepository().Append(ctx, sample); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
