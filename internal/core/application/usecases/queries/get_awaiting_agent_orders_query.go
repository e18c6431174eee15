package queries

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultAwaitingOrdersLimit caps one page of orders waiting for an agent.
const DefaultAwaitingOrdersLimit = 100

var ErrGetAwaitingAgentOrdersQueryIsNotConstructed = errors.New(
	"GetAwaitingAgentOrdersQuery must be created via NewGetAwaitingAgentOrdersQuery constructor",
)

// GetAwaitingAgentOrdersQuery lists CONFIRMED orders without an agent, oldest first.
// The retry job and the operations dashboard read it.
type GetAwaitingAgentOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetAwaitingAgentOrdersQuery creates the query; a zero limit means DefaultAwaitingOrdersLimit.
func NewGetAwaitingAgentOrdersQuery(limit int) (GetAwaitingAgentOrdersQuery, error) {
	if limit < 0 {
		return GetAwaitingAgentOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, DefaultAwaitingOrdersLimit)
	}
	if limit == 0 || limit > DefaultAwaitingOrdersLimit {
		limit = DefaultAwaitingOrdersLimit
	}
	return GetAwaitingAgentOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAwaitingAgentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAwaitingAgentOrdersQueryIsNotConstructed)
}

func (q GetAwaitingAgentOrdersQuery) Limit() int {
	return q.limit
}
