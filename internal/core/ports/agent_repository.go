package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery agents.
//
// Agent availability is shared, cross-request state. Update is therefore a compare-and-set:
// it succeeds only if the stored version still equals aggregate.OriginalVersion(), otherwise it
// returns *errs.ConcurrencyConflictError and changes nothing. Two dispatches that both saw the
// same agent AVAILABLE cannot both commit it as BUSY.
type AgentRepository interface {
	// Add persists a newly registered agent.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists availability changes with a compare-and-set on the version.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get loads an agent; a missing agent yields *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetAvailable returns active AVAILABLE agents.
	GetAvailable(ctx context.Context) ([]*agent.Agent, error)
}

// LocationRepository stores the append-only agent position time series.
type LocationRepository interface {
	// Append inserts a position report. Samples are never updated or deleted.
	Append(ctx context.Context, sample agent.LocationSample) error

	// Latest returns the most recent sample of an agent, or nil when it never reported.
	Latest(ctx context.Context, agentID kernel.UUID) (*agent.LocationSample, error)

	// LatestFor returns the most recent sample of each listed agent that has one.
	LatestFor(ctx context.Context, agentIDs []kernel.UUID) (map[kernel.UUID]agent.LocationSample, error)
}
