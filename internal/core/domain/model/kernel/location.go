package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// MinLatitude is the southernmost valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude in degrees.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude in degrees.
	MaxLongitude = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is an immutable geographic coordinate in decimal degrees.
// Stores, agent position samples and order destinations are all expressed as Locations.
//
// Example:
//
//	ikeja, _ := kernel.NewLocation(6.5964, 3.3486)
//	surulere, _ := kernel.NewLocation(6.4969, 3.3612)
//	km, _ := ikeja.DistanceTo(surulere) // ≈ 11.1
type Location struct { //nolint:recvcheck // setters need pointer receivers
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location after validating both coordinates.
//
// Parameters:
//   - latitude: degrees in [MinLatitude, MaxLatitude]
//   - longitude: degrees in [MinLongitude, MaxLongitude]
//
// Returns:
//   - Location: the validated coordinate
//   - error: errs.ValueIsOutOfRangeError for every coordinate outside its range, joined
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate reports ErrLocationIsNotConstructed for a Location that bypassed NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String implements fmt.Stringer, e.g. "Location(6.596400,3.348600)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two constructed locations coordinate by coordinate.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceTo returns the great-circle distance to other in kilometres.
// Both locations must be constructed; the result is symmetric and zero for identical points.
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return DistanceKm(l.latitude, l.longitude, other.latitude, other.longitude), nil
}

// DistanceKm computes the haversine distance between (latA, lonA) and (latB, lonB) in kilometres
// using EarthRadiusKm. Inputs are not range checked.
func DistanceKm(latA, lonA, latB, lonB float64) float64 {
	dLat := degreesToRadians(latB - latA)
	dLon := degreesToRadians(lonB - lonA)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(latA))*math.Cos(degreesToRadians(latB))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = longitude
	return nil
}
