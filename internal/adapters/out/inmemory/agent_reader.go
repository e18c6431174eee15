package inmemory

import (
	"cmp"
	"context"
	"slices"

	"fulfillment/internal/core/application/usecases/queries"
)

// ListAgents implements queries.AgentReader.
func (s *Storage) ListAgents(_ context.Context, filter queries.AgentFilter) ([]queries.GetAgentsQueryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]queries.GetAgentsQueryResponse, 0, len(s.agents))
	for id, record := range s.agents {
		if filter.Status != nil && record.status != *filter.Status {
			continue
		}

		item := queries.GetAgentsQueryResponse{
			ID:     id,
			Name:   record.name,
			Status: record.status,
			Active: record.active,
		}
		if sample, ok := newest(s.samples[id]); ok {
			loc := sample.Location()
			recordedAt := sample.RecordedAt()
			item.Location = &loc
			item.LocationRecordedAt = &recordedAt
		}
		result = append(result, item)
	}

	slices.SortFunc(result, func(a, b queries.GetAgentsQueryResponse) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return result, nil
}
