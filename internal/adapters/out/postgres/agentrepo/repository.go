package agentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements ports.AgentRepository using GORM.
type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Add saves a new agent to the database.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "agentId")
	}
	return nil
}

// Update is the compare-and-set on availability:
//
//	UPDATE agents SET ... WHERE id = ? AND version = ?
//
// Zero affected rows on an existing agent means another transaction changed it first.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.OriginalVersion()).
		Updates(map[string]any{
			"name":    dto.Name,
			"status":  dto.Status,
			"active":  dto.Active,
			"version": dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&AgentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("agent", aggregate.ID().String(), aggregate.OriginalVersion())
	}
	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailable retrieves active agents in AVAILABLE status, ordered by id for stable
// tie-breaking in the locator.
func (r *GormAgentRepository) GetAvailable(ctx context.Context) ([]*agent.Agent, error) {
	var dtos []AgentDTO
	if err := r.db.WithContext(ctx).
		Where("active = ? AND status = ?", true, int(agent.Available)).
		Order("id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	return agents, nil
}
