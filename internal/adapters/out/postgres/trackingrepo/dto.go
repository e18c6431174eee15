// Package trackingrepo stores the append-only order tracking log.
package trackingrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// EntryDTO is one row of tracking_entries. (order_id, sequence) is unique.
type EntryDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_order_sequence,priority:1"`
	Sequence       int64      `gorm:"not null;uniqueIndex:idx_tracking_order_sequence,priority:2"`
	Status         int        `gorm:"not null"`
	Message        string     `gorm:"not null"`
	AgentID        *uuid.UUID `gorm:"type:uuid"`
	AgentName      string
	AgentLatitude  *float64
	AgentLongitude *float64
	RecordedAt     time.Time `gorm:"not null"`
	Actor          string
}

func (EntryDTO) TableName() string {
	return "tracking_entries"
}

func fromDomain(e *tracking.Entry) EntryDTO {
	dto := EntryDTO{
		ID:         e.ID().Google(),
		OrderID:    e.OrderID().Google(),
		Sequence:   e.Sequence(),
		Status:     int(e.Status()),
		Message:    e.Message(),
		RecordedAt: e.RecordedAt(),
		Actor:      e.Actor(),
	}
	if snapshot := e.Agent(); snapshot != nil {
		agentID := snapshot.AgentID.Google()
		dto.AgentID = &agentID
		dto.AgentName = snapshot.AgentName
		if snapshot.Location != nil {
			lat, lon := snapshot.Location.Latitude(), snapshot.Location.Longitude()
			dto.AgentLatitude = &lat
			dto.AgentLongitude = &lon
		}
	}
	return dto
}

func toDomain(dto EntryDTO) (*tracking.Entry, error) {
	var snapshot *tracking.AgentSnapshot
	if dto.AgentID != nil {
		snapshot = &tracking.AgentSnapshot{
			AgentID:   kernel.UUIDFromGoogle(*dto.AgentID),
			AgentName: dto.AgentName,
		}
		if dto.AgentLatitude != nil && dto.AgentLongitude != nil {
			loc, err := kernel.NewLocation(*dto.AgentLatitude, *dto.AgentLongitude)
			if err != nil {
				return nil, err
			}
			snapshot.Location = &loc
		}
	}

	return tracking.NewEntry(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.OrderID),
		dto.Sequence,
		order.Status(dto.Status),
		dto.Message,
		snapshot,
		dto.RecordedAt,
		dto.Actor,
	)
}
