package queries

import (
	"context"
)

type GetAgentsQueryHandler struct {
	agents AgentReader
}

func NewGetAgentsQueryHandler(agents AgentReader) GetAgentsQueryHandler {
	return GetAgentsQueryHandler{agents: agents}
}

func (h GetAgentsQueryHandler) Handle(ctx context.Context, query GetAgentsQuery) ([]GetAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents, err := h.agents.ListAgents(ctx, query.Filter())
	if err != nil {
		return nil, err
	}
	if agents == nil {
		agents = make([]GetAgentsQueryResponse, 0)
	}
	return agents, nil
}
