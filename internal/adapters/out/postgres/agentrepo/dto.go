// Package agentrepo persists delivery agents and their append-only position reports.
package agentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO is the row of the agents table. Version backs the compare-and-set in Update.
type AgentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"not null"`
	Status  int       `gorm:"not null;index"`
	Active  bool      `gorm:"not null"`
	Version int64     `gorm:"not null"`
}

func (AgentDTO) TableName() string {
	return "agents"
}

// LocationSampleDTO is one row of agent_locations. Rows are inserted, never updated.
type LocationSampleDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID    uuid.UUID `gorm:"type:uuid;not null;index:idx_agent_locations_latest,priority:1"`
	Latitude   float64   `gorm:"not null"`
	Longitude  float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_agent_locations_latest,priority:2,sort:desc"`
}

func (LocationSampleDTO) TableName() string {
	return "agent_locations"
}

func fromDomain(a *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:      a.ID().Google(),
		Name:    a.Name(),
		Status:  int(a.Status()),
		Active:  a.IsActive(),
		Version: a.Version(),
	}
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	return agent.RestoreAgent(kernel.UUIDFromGoogle(dto.ID), dto.Name, agent.Status(dto.Status), dto.Active, dto.Version)
}

func sampleFromDomain(s agent.LocationSample) LocationSampleDTO {
	return LocationSampleDTO{
		ID:         s.ID().Google(),
		AgentID:    s.AgentID().Google(),
		Latitude:   s.Location().Latitude(),
		Longitude:  s.Location().Longitude(),
		RecordedAt: s.RecordedAt(),
	}
}

func sampleToDomain(dto LocationSampleDTO) (agent.LocationSample, error) {
	loc, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return agent.LocationSample{}, err
	}
	return agent.NewLocationSample(kernel.UUIDFromGoogle(dto.ID), kernel.UUIDFromGoogle(dto.AgentID), loc, dto.RecordedAt)
}
