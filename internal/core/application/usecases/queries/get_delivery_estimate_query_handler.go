package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/services"
)

type GetDeliveryEstimateQueryHandler struct {
	stores    StoreReader
	locator   services.StoreLocator
	estimator services.DeliveryEstimator
}

func NewGetDeliveryEstimateQueryHandler(
	stores StoreReader,
	locator services.StoreLocator,
	estimator services.DeliveryEstimator,
) GetDeliveryEstimateQueryHandler {
	return GetDeliveryEstimateQueryHandler{stores: stores, locator: locator, estimator: estimator}
}

// Handle returns services.ErrNoStoreAvailable when no store is eligible and errs.ErrObjectNotFound
// for an unknown store or a store without coordinates.
func (h GetDeliveryEstimateQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryEstimateQuery,
) (GetDeliveryEstimateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryEstimateQueryResponse{}, err
	}

	var (
		s   *store.Store
		err error
	)
	if id := query.StoreID(); id != nil {
		s, err = h.stores.Get(ctx, *id)
	} else {
		var eligible []*store.Store
		eligible, err = h.stores.GetEligible(ctx)
		if err == nil {
			s, _, err = h.locator.Nearest(query.Destination(), eligible)
		}
	}
	if err != nil {
		return GetDeliveryEstimateQueryResponse{}, err
	}

	estimate, err := h.estimator.Estimate(s, query.Destination())
	if err != nil {
		return GetDeliveryEstimateQueryResponse{}, err
	}

	return GetDeliveryEstimateQueryResponse{
		StoreID:    s.ID(),
		StoreName:  s.Name(),
		DistanceKm: estimate.DistanceKm,
		ETAMinutes: estimate.ETAMinutes,
		Fee:        estimate.Fee,
	}, nil
}
