package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReportAgentLocationCommandIsNotConstructed = errors.New(
	"ReportAgentLocationCommand must be created via NewReportAgentLocationCommand constructor",
)

// ReportAgentLocationCommand appends a position report from an agent's device.
type ReportAgentLocationCommand struct {
	agentID    kernel.UUID
	location   kernel.Location
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportAgentLocationCommand validates the report. A zero recordedAt means "now" and is
// filled in by the handler.
func NewReportAgentLocationCommand(agentID kernel.UUID, location kernel.Location, recordedAt time.Time) (ReportAgentLocationCommand, error) {
	var errLocation error
	if err := location.Validate(); err != nil {
		errLocation = errs.NewValueIsInvalidErrorWithCause("location", err)
	}
	if err := errors.Join(agentID.Validate(), errLocation); err != nil {
		return ReportAgentLocationCommand{}, err
	}

	return ReportAgentLocationCommand{
		agentID:    agentID,
		location:   location,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReportAgentLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportAgentLocationCommandIsNotConstructed)
}

func (c ReportAgentLocationCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c ReportAgentLocationCommand) Location() kernel.Location {
	return c.location
}

func (c ReportAgentLocationCommand) RecordedAt() time.Time {
	return c.recordedAt
}
