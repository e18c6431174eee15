package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDeliveryEstimateQueryIsNotConstructed = errors.New(
	"GetDeliveryEstimateQuery must be created via NewGetDeliveryEstimateQuery constructor",
)

// GetDeliveryEstimateQuery asks for ETA and fee to a destination, either from a given store or
// from the store dispatch would pick.
type GetDeliveryEstimateQuery struct {
	destination kernel.Location
	storeID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryEstimateQuery creates the query; storeID may be nil to use the nearest eligible store.
func NewGetDeliveryEstimateQuery(destination kernel.Location, storeID *kernel.UUID) (GetDeliveryEstimateQuery, error) {
	if err := destination.Validate(); err != nil {
		return GetDeliveryEstimateQuery{}, errs.NewValueIsInvalidErrorWithCause("destination", err)
	}

	q := GetDeliveryEstimateQuery{destination: destination, guard: guard.NewConstructorGuard()}
	if storeID != nil {
		if err := storeID.Validate(); err != nil {
			return GetDeliveryEstimateQuery{}, err
		}
		id := *storeID
		q.storeID = &id
	}
	return q, nil
}

func (q GetDeliveryEstimateQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryEstimateQueryIsNotConstructed)
}

func (q GetDeliveryEstimateQuery) Destination() kernel.Location {
	return q.destination
}

func (q GetDeliveryEstimateQuery) StoreID() *kernel.UUID {
	if q.storeID == nil {
		return nil
	}
	id := *q.storeID
	return &id
}

// GetDeliveryEstimateQueryResponse is the quote shown at checkout.
type GetDeliveryEstimateQueryResponse struct {
	StoreID    kernel.UUID
	StoreName  string
	DistanceKm float64
	ETAMinutes int
	Fee        float64
}
