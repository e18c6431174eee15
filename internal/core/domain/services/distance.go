package services

import "fulfillment/internal/core/domain/model/kernel"

// DistanceCalculator measures the travel distance between two locations in kilometres.
// Locators and the estimator depend on this interface so that a routing-graph distance
// can replace the straight-line approximation without touching them.
type DistanceCalculator interface {
	DistanceKm(from, to kernel.Location) (float64, error)
}

// HaversineCalculator is the great-circle DistanceCalculator.
type HaversineCalculator struct{}

// NewHaversineCalculator returns the default DistanceCalculator.
func NewHaversineCalculator() HaversineCalculator {
	return HaversineCalculator{}
}

// DistanceKm implements DistanceCalculator.
func (HaversineCalculator) DistanceKm(from, to kernel.Location) (float64, error) {
	return from.DistanceTo(to)
}
