package agentrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLocationRepository implements ports.LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Append inserts a position report.
func (r *GormLocationRepository) Append(ctx context.Context, sample agent.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	dto := sampleFromDomain(sample)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "sampleId")
	}
	return nil
}

// Latest returns the newest sample of agentID, or nil when the agent never reported.
func (r *GormLocationRepository) Latest(ctx context.Context, agentID kernel.UUID) (*agent.LocationSample, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LocationSampleDTO
	if err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID.Google()).
		Order("recorded_at DESC, id DESC").
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	sample, err := sampleToDomain(dtos[0])
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

// LatestFor returns the newest sample of each listed agent in one round trip.
func (r *GormLocationRepository) LatestFor(
	ctx context.Context,
	agentIDs []kernel.UUID,
) (map[kernel.UUID]agent.LocationSample, error) {
	result := make(map[kernel.UUID]agent.LocationSample, len(agentIDs))
	if len(agentIDs) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(agentIDs))
	for _, id := range agentIDs {
		ids = append(ids, id.Google())
	}

	var dtos []LocationSampleDTO
	if err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (agent_id) id, agent_id, latitude, longitude, recorded_at
		FROM agent_locations
		WHERE agent_id IN ?
		ORDER BY agent_id, recorded_at DESC, id DESC`, ids).
		Scan(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		sample, err := sampleToDomain(dto)
		if err != nil {
			return nil, err
		}
		result[sample.AgentID()] = sample
	}
	return result, nil
}
