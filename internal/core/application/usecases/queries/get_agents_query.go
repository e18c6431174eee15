package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAgentsQueryIsNotConstructed = errors.New(
	"GetAgentsQuery must be created via NewGetAgentsQuery constructor",
)

// AgentFilter narrows the roster. A nil Status lists every agent.
type AgentFilter struct {
	Status *agent.Status
}

// GetAgentsQuery lists agents with their availability and last known position, ordered by name.
type GetAgentsQuery struct {
	filter AgentFilter

	guard guard.ConstructorGuard
}

func NewGetAgentsQuery(status *agent.Status) (GetAgentsQuery, error) {
	q := GetAgentsQuery{guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetAgentsQuery{}, err
		}
		s := *status
		q.filter.Status = &s
	}
	return q, nil
}

func (q GetAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentsQueryIsNotConstructed)
}

func (q GetAgentsQuery) Filter() AgentFilter {
	return q.filter
}

// GetAgentsQueryResponse is one row of the agent roster.
type GetAgentsQueryResponse struct {
	ID     kernel.UUID
	Name   string
	Status agent.Status
	Active bool
	// Location and LocationRecordedAt are nil until the agent reports a position.
	Location           *kernel.Location
	LocationRecordedAt *time.Time
}
