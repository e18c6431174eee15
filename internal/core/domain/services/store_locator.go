package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
)

// ErrNoStoreAvailable is returned when no active store with coordinates exists.
var ErrNoStoreAvailable = errors.New("no store available")

// StoreLocator selects the nearest eligible fulfillment location for a destination.
//
// Business rules:
//   - only active stores with coordinates are considered
//   - the minimum distance wins; ties go to the store encountered first, so callers that
//     pass stores in a stable order (repositories sort by name, then id) get stable results
//
// Example:
//
//	locator := services.NewStoreLocator(services.NewHaversineCalculator())
//	nearest, km, err := locator.Nearest(destination, stores)
//	if errors.Is(err, services.ErrNoStoreAvailable) {
//	    // the order cannot proceed
//	}
type StoreLocator struct {
	distance DistanceCalculator
}

// NewStoreLocator creates a StoreLocator. A nil calculator falls back to haversine.
func NewStoreLocator(distance DistanceCalculator) StoreLocator {
	if distance == nil {
		distance = NewHaversineCalculator()
	}
	return StoreLocator{distance: distance}
}

// Nearest returns the closest eligible store and its distance in kilometres.
//
// Returns:
//   - *store.Store: the selected store
//   - float64: distance from the store to destination
//   - error: ErrNoStoreAvailable when no store is eligible, or a validation error
func (l StoreLocator) Nearest(destination kernel.Location, stores []*store.Store) (*store.Store, float64, error) {
	if err := destination.Validate(); err != nil {
		return nil, 0, err
	}

	var (
		best     *store.Store
		bestDist float64
	)
	for _, s := range stores {
		if s.Validate() != nil || !s.IsEligible() {
			continue
		}

		d, err := l.distance.DistanceKm(*s.Location(), destination)
		if err != nil {
			return nil, 0, err
		}
		if best == nil || d < bestDist {
			best, bestDist = s, d
		}
	}

	if best == nil {
		return nil, 0, ErrNoStoreAvailable
	}
	return best, bestDist, nil
}
