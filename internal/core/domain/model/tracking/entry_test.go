package tracking_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	at := time.Date(2026, 3, 14, 11, 0, 0, 0, time.FixedZone("WAT", 3600))
	loc, err := kernel.NewLocation(6.6, 3.35)
	require.NoError(t, err)

	t.Run("copies the agent snapshot", func(t *testing.T) {
		snapshot := &tracking.AgentSnapshot{AgentID: kernel.NewUUID(), AgentName: "Tunde", Location: &loc}

		e, err := tracking.NewEntry(kernel.NewUUID(), kernel.NewUUID(), 3, order.Processing,
			"Tunde is assigned", snapshot, at, " dispatcher ")

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.Equal(t, int64(3), e.Sequence())
		assert.Equal(t, order.Processing, e.Status())
		assert.Equal(t, "dispatcher", e.Actor())
		assert.Equal(t, time.UTC, e.RecordedAt().Location())

		snapshot.AgentName = "changed"
		got := e.Agent()
		require.NotNil(t, got)
		assert.Equal(t, "Tunde", got.AgentName)
		assert.Equal(t, loc, *got.Location)
	})

	t.Run("entry without agent", func(t *testing.T) {
		e, err := tracking.NewEntry(kernel.NewUUID(), kernel.NewUUID(), 1, order.Pending, "Order placed", nil, at, "")

		require.NoError(t, err)
		assert.Nil(t, e.Agent())
	})

	t.Run("joins validation errors", func(t *testing.T) {
		e, err := tracking.NewEntry(kernel.UUID{}, kernel.UUID{}, 0, order.Unknown, " ",
			&tracking.AgentSnapshot{}, at, "")

		require.Error(t, err)
		assert.Nil(t, e)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "sequence")
		assert.Contains(t, err.Error(), "message")
	})
}

func TestFromStatusChanged(t *testing.T) {
	orderID := kernel.NewUUID()
	event := order.StatusChanged{
		OrderID:    orderID,
		From:       order.Packed,
		To:         order.OutForDelivery,
		Message:    "Tunde is on the way with your order",
		Actor:      "store",
		Sequence:   5,
		OccurredAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	e, err := tracking.FromStatusChanged(kernel.NewUUID(), event, nil)

	require.NoError(t, err)
	assert.True(t, e.OrderID().IsEqual(orderID))
	assert.Equal(t, order.OutForDelivery, e.Status())
	assert.Equal(t, event.Message, e.Message())
	assert.Equal(t, int64(5), e.Sequence())
	assert.Equal(t, event.OccurredAt, e.RecordedAt())
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]tracking.Direction{
		"":     tracking.Ascending,
		"asc":  tracking.Ascending,
		"DESC": tracking.Descending,
	} {
		got, err := tracking.ParseDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := tracking.ParseDirection("sideways")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
