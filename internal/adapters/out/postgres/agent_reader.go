package postgres

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAgentReader implements queries.AgentReader with one query joining each agent to
// its newest location sample.
type GormAgentReader struct {
	db *gorm.DB
}

func NewGormAgentReader(db *gorm.DB) *GormAgentReader {
	return &GormAgentReader{db: db}
}

type agentRow struct {
	ID         uuid.UUID
	Name       string
	Status     int
	Active     bool
	Latitude   *float64
	Longitude  *float64
	RecordedAt *time.Time
}

const listAgentsSQL = `
	SELECT a.id, a.name, a.status, a.active, l.latitude, l.longitude, l.recorded_at
	FROM agents a
	LEFT JOIN LATERAL (
		SELECT latitude, longitude, recorded_at
		FROM agent_locations
		WHERE agent_id = a.id
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	) l ON TRUE`

func (r *GormAgentReader) ListAgents(ctx context.Context, filter queries.AgentFilter) ([]queries.GetAgentsQueryResponse, error) {
	var rows []agentRow

	query := listAgentsSQL
	var args []any
	if filter.Status != nil {
		query += " WHERE a.status = ?"
		args = append(args, int(*filter.Status))
	}
	query += " ORDER BY a.name ASC, a.id ASC"

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]queries.GetAgentsQueryResponse, 0, len(rows))
	for _, row := range rows {
		item := queries.GetAgentsQueryResponse{
			ID:     kernel.UUIDFromGoogle(row.ID),
			Name:   row.Name,
			Status: agent.Status(row.Status),
			Active: row.Active,
		}
		if row.Latitude != nil && row.Longitude != nil {
			loc, err := kernel.NewLocation(*row.Latitude, *row.Longitude)
			if err != nil {
				return nil, err
			}
			item.Location = &loc
		}
		if row.RecordedAt != nil {
			recordedAt := row.RecordedAt.UTC()
			item.LocationRecordedAt = &recordedAt
		}
		result = append(result, item)
	}

	return result, nil
}
