package services

import (
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/pkg/errs"
)

// Estimator defaults, in currency-agnostic units for the fees.
const (
	DefaultAvgSpeedKmh = 40.0
	DefaultBaseFee     = 500.0
	DefaultPerKmFee    = 50.0
)

// EstimatorConfig tunes the ETA and fee formulas. A non-positive speed takes the default;
// fees are used as given, so zero means no charge.
type EstimatorConfig struct {
	AvgSpeedKmh float64
	BaseFee     float64
	PerKmFee    float64
}

// DefaultEstimatorConfig returns the stock speed and fee tariff.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		AvgSpeedKmh: DefaultAvgSpeedKmh,
		BaseFee:     DefaultBaseFee,
		PerKmFee:    DefaultPerKmFee,
	}
}

// Estimate is the travel estimate from a store to a destination.
type Estimate struct {
	DistanceKm float64
	ETAMinutes int
	Fee        float64
}

// DeliveryEstimator derives delivery time and cost from the store-to-destination distance.
//
//	eta = round(distanceKm / avgSpeedKmh * 60) minutes
//	fee = baseFee + perKmFee * distanceKm
//
// Example (Ikeja store to Surulere, defaults): ≈11.2 km, 17 minutes, ≈1058.
type DeliveryEstimator struct {
	distance DistanceCalculator
	cfg      EstimatorConfig
}

// NewDeliveryEstimator creates a DeliveryEstimator. A nil calculator falls back to haversine.
func NewDeliveryEstimator(distance DistanceCalculator, cfg EstimatorConfig) DeliveryEstimator {
	if distance == nil {
		distance = NewHaversineCalculator()
	}
	if cfg.AvgSpeedKmh <= 0 {
		cfg.AvgSpeedKmh = DefaultAvgSpeedKmh
	}
	return DeliveryEstimator{distance: distance, cfg: cfg}
}

// Estimate computes distance, ETA and fee in one pass.
//
// Returns:
//   - error: *errs.ObjectNotFoundError when the store has no coordinates
func (e DeliveryEstimator) Estimate(s *store.Store, destination kernel.Location) (Estimate, error) {
	d, err := e.distanceFrom(s, destination)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		DistanceKm: d,
		ETAMinutes: e.etaMinutes(d),
		Fee:        e.fee(d),
	}, nil
}

// ETA returns the rounded travel time in minutes.
func (e DeliveryEstimator) ETA(s *store.Store, destination kernel.Location) (int, error) {
	d, err := e.distanceFrom(s, destination)
	if err != nil {
		return 0, err
	}
	return e.etaMinutes(d), nil
}

// DeliveryFee returns baseFee + perKmFee * distanceKm.
func (e DeliveryEstimator) DeliveryFee(s *store.Store, destination kernel.Location) (float64, error) {
	d, err := e.distanceFrom(s, destination)
	if err != nil {
		return 0, err
	}
	return e.fee(d), nil
}

func (e DeliveryEstimator) distanceFrom(s *store.Store, destination kernel.Location) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	loc := s.Location()
	if loc == nil {
		return 0, errs.NewObjectNotFoundError("store location", s.ID())
	}
	return e.distance.DistanceKm(*loc, destination)
}

func (e DeliveryEstimator) etaMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / e.cfg.AvgSpeedKmh * 60))
}

func (e DeliveryEstimator) fee(distanceKm float64) float64 {
	return e.cfg.BaseFee + e.cfg.PerKmFee*distanceKm
}
