package geocoding

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// FallbackGeocoder resolves through next and answers with a fixed coordinate when next fails.
// The fallback is typically the centre of the service area.
type FallbackGeocoder struct {
	next     ports.Geocoder
	fallback kernel.Location
	logger   *zap.Logger
}

func NewFallbackGeocoder(next ports.Geocoder, fallback kernel.Location, logger *zap.Logger) *FallbackGeocoder {
	return &FallbackGeocoder{
		next:     next,
		fallback: fallback,
		logger:   logger.With(zap.String("component", "geocoder")),
	}
}

func (g *FallbackGeocoder) Resolve(ctx context.Context, address string) (kernel.Location, error) {
	loc, err := g.next.Resolve(ctx, address)
	if err == nil {
		return loc, nil
	}
	if ctx.Err() != nil {
		return kernel.Location{}, ctx.Err()
	}

	g.logger.Warn("geocoding failed, using fallback location",
		zap.String("address", address),
		zap.Stringer("fallback", g.fallback),
		zap.Error(err),
	)
	return g.fallback, nil
}
