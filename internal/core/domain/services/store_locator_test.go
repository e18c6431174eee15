package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func location(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func newStore(t *testing.T, name string, loc *kernel.Location, active bool) *store.Store {
	t.Helper()
	s, err := store.RestoreStore(kernel.NewUUID(), name, loc, store.TypeOwn, active)
	require.NoError(t, err)
	return s
}

func TestStoreLocator_Nearest(t *testing.T) {
	surulere := location(t, 6.4969, 3.3612)
	ikejaLoc := location(t, 6.5964, 3.3486)
	lekkiLoc := location(t, 6.4281, 3.4219)
	yabaLoc := location(t, 6.5095, 3.3711)

	locator := services.NewStoreLocator(services.NewHaversineCalculator())

	t.Run("returns the closest eligible store", func(t *testing.T) {
		ikeja := newStore(t, "Ikeja", &ikejaLoc, true)
		lekki := newStore(t, "Lekki", &lekkiLoc, true)

		got, km, err := locator.Nearest(surulere, []*store.Store{ikeja, lekki})

		require.NoError(t, err)
		assert.Same(t, lekki, got)
		assert.InDelta(t, 10.17, km, 0.05)
	})

	t.Run("skips inactive stores and stores without coordinates", func(t *testing.T) {
		yabaInactive := newStore(t, "Yaba", &yabaLoc, false)
		unconfigured := newStore(t, "Surulere Partner", nil, true)
		ikeja := newStore(t, "Ikeja", &ikejaLoc, true)

		got, _, err := locator.Nearest(surulere, []*store.Store{yabaInactive, unconfigured, ikeja})

		require.NoError(t, err)
		assert.Same(t, ikeja, got)
	})

	t.Run("ties go to the first store", func(t *testing.T) {
		first := newStore(t, "A", &ikejaLoc, true)
		second := newStore(t, "B", &ikejaLoc, true)

		got, _, err := locator.Nearest(surulere, []*store.Store{first, second})

		require.NoError(t, err)
		assert.Same(t, first, got)
	})

	t.Run("no eligible store", func(t *testing.T) {
		yabaInactive := newStore(t, "Yaba", &yabaLoc, false)

		got, _, err := locator.Nearest(surulere, []*store.Store{yabaInactive})

		require.ErrorIs(t, err, services.ErrNoStoreAvailable)
		assert.Nil(t, got)

		_, _, err = locator.Nearest(surulere, nil)
		require.ErrorIs(t, err, services.ErrNoStoreAvailable)
	})

	t.Run("rejects an unconstructed destination", func(t *testing.T) {
		_, _, err := locator.Nearest(kernel.Location{}, []*store.Store{newStore(t, "Ikeja", &ikejaLoc, true)})

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

type fixedDistance map[string]float64

func (f fixedDistance) DistanceKm(from, _ kernel.Location) (float64, error) {
	return f[from.String()], nil
}

func TestStoreLocator_UsesInjectedCalculator(t *testing.T) {
	far := location(t, 1, 1)
	near := location(t, 2, 2)
	calc := fixedDistance{far.String(): 1, near.String(): 50}
	a := newStore(t, "Far by haversine", &far, true)
	b := newStore(t, "Near by haversine", &near, true)

	got, km, err := services.NewStoreLocator(calc).Nearest(location(t, 0, 0), []*store.Store{b, a})

	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.InDelta(t, 1.0, km, 1e-9)
}
