// Package storerepo persists fulfillment stores.
package storerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// StoreDTO is the row of the stores table. Coordinates are nullable: a store without them
// exists but is never eligible.
type StoreDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;index"`
	Latitude  *float64
	Longitude *float64
	Type      int  `gorm:"not null"`
	Active    bool `gorm:"not null"`
}

func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(s *store.Store) StoreDTO {
	dto := StoreDTO{
		ID:     s.ID().Google(),
		Name:   s.Name(),
		Type:   int(s.Type()),
		Active: s.IsActive(),
	}
	if loc := s.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, err := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return nil, err
		}
		location = &loc
	}
	return store.RestoreStore(kernel.UUIDFromGoogle(dto.ID), dto.Name, location, store.Type(dto.Type), dto.Active)
}
