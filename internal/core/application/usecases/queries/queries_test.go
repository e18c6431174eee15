package queries_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Handle_MapsOrder(t *testing.T) {
	ctx := t.Context()
	o := newConfirmedOrder()
	reader := new(MockOrderReader)
	reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

	query, err := queries.NewGetOrderQuery(o.ID())
	require.NoError(t, err)

	result, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, o.ID(), result.ID)
	assert.Equal(t, order.Confirmed, result.Status)
	assert.Equal(t, []queries.OrderItem{{ProductID: "sku-42", Quantity: 2}}, result.Items)
	assert.Equal(t, o.StoreID(), result.StoreID)
	assert.Nil(t, result.AgentID)
	assert.Equal(t, int64(2), result.Version)
	require.NotNil(t, result.EstimatedDelivery)
	assert.Equal(t, 17*time.Minute, result.EstimatedDelivery.Sub(result.OrderDate))
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	reader := new(MockOrderReader)
	reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id)).Once()

	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandler_Handle_InvalidQuery(t *testing.T) {
	_, err := queries.NewGetOrderQueryHandler(new(MockOrderReader)).Handle(t.Context(), queries.GetOrderQuery{})

	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderTrackingQueryHandler_Handle_ReplaysInBothDirections(t *testing.T) {
	ctx := t.Context()
	o := newConfirmedOrder()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	placed, err := tracking.NewEntry(kernel.NewUUID(), o.ID(), 1, order.Pending, "Order placed", nil, base, "")
	require.NoError(t, err)
	confirmed, err := tracking.NewEntry(kernel.NewUUID(), o.ID(), 2, order.Confirmed,
		"Order confirmed by the store", nil, base.Add(time.Minute), "")
	require.NoError(t, err)

	orders := new(MockOrderReader)
	orders.On("Get", ctx, o.ID()).Return(o, nil).Twice()
	log := &sliceTracking{entries: []*tracking.Entry{placed, confirmed}}
	handler := queries.NewGetOrderTrackingQueryHandler(orders, log)

	ascQuery, err := queries.NewGetOrderTrackingQuery(o.ID(), tracking.Ascending)
	require.NoError(t, err)
	history, err := handler.Handle(ctx, ascQuery)
	require.NoError(t, err)

	collect := func() []int64 {
		var sequences []int64
		for e, err := range history {
			require.NoError(t, err)
			sequences = append(sequences, e.Sequence())
		}
		return sequences
	}
	assert.Equal(t, []int64{1, 2}, collect())
	assert.Equal(t, []int64{1, 2}, collect(), "a second replay yields the same entries")
	assert.Equal(t, 2, log.replays)

	descQuery, err := queries.NewGetOrderTrackingQuery(o.ID(), tracking.Descending)
	require.NoError(t, err)
	history, err = handler.Handle(ctx, descQuery)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, collect())
}

func TestGetOrderTrackingQueryHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	orders := new(MockOrderReader)
	orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id)).Once()
	log := &sliceTracking{}

	query, err := queries.NewGetOrderTrackingQuery(id, tracking.Ascending)
	require.NoError(t, err)

	history, err := queries.NewGetOrderTrackingQueryHandler(orders, log).Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, history)
	assert.Zero(t, log.replays)
}

func newEstimateHandler(stores *MockStoreReader) queries.GetDeliveryEstimateQueryHandler {
	haversine := services.NewHaversineCalculator()
	return queries.NewGetDeliveryEstimateQueryHandler(
		stores,
		services.NewStoreLocator(haversine),
		services.NewDeliveryEstimator(haversine, services.DefaultEstimatorConfig()),
	)
}

func TestGetDeliveryEstimateQueryHandler_Handle_NearestStore(t *testing.T) {
	ctx := t.Context()
	ikejaStore := newStore("Ikeja", ikeja)
	farStore := newStore("Abeokuta", location(7.1475, 3.3619))
	stores := new(MockStoreReader)
	stores.On("GetEligible", ctx).Return([]*store.Store{farStore, ikejaStore}, nil).Once()

	query, err := queries.NewGetDeliveryEstimateQuery(surulere, nil)
	require.NoError(t, err)

	result, err := newEstimateHandler(stores).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, ikejaStore.ID(), result.StoreID)
	assert.Equal(t, "Ikeja", result.StoreName)
	assert.InDelta(t, 11.15, result.DistanceKm, 0.2)
	assert.Equal(t, 17, result.ETAMinutes)
	assert.InDelta(t, 1057.5, result.Fee, 10)
}

func TestGetDeliveryEstimateQueryHandler_Handle_GivenStore(t *testing.T) {
	ctx := t.Context()
	ikejaStore := newStore("Ikeja", ikeja)
	id := ikejaStore.ID()
	stores := new(MockStoreReader)
	stores.On("Get", ctx, id).Return(ikejaStore, nil).Once()

	query, err := queries.NewGetDeliveryEstimateQuery(ikeja, &id)
	require.NoError(t, err)

	result, err := newEstimateHandler(stores).Handle(ctx, query)

	require.NoError(t, err)
	assert.Zero(t, result.DistanceKm)
	assert.Zero(t, result.ETAMinutes)
	assert.InDelta(t, 500.0, result.Fee, 1e-9)
	stores.AssertNotCalled(t, "GetEligible")
}

func TestGetDeliveryEstimateQueryHandler_Handle_NoStore(t *testing.T) {
	ctx := t.Context()
	stores := new(MockStoreReader)
	stores.On("GetEligible", ctx).Return([]*store.Store{}, nil).Once()

	query, err := queries.NewGetDeliveryEstimateQuery(surulere, nil)
	require.NoError(t, err)

	_, err = newEstimateHandler(stores).Handle(ctx, query)

	require.ErrorIs(t, err, services.ErrNoStoreAvailable)
}

func TestGetDeliveryEstimateQueryHandler_Handle_StoreWithoutLocation(t *testing.T) {
	ctx := t.Context()
	unplaced, err := store.NewStore(kernel.NewUUID(), "Lekki", nil, store.TypePartner)
	require.NoError(t, err)
	id := unplaced.ID()
	stores := new(MockStoreReader)
	stores.On("Get", ctx, id).Return(unplaced, nil).Once()

	query, err := queries.NewGetDeliveryEstimateQuery(surulere, &id)
	require.NoError(t, err)

	_, err = newEstimateHandler(stores).Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetAgentsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	available := agent.Available
	loc := ikeja
	reportedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := []queries.GetAgentsQueryResponse{
		{ID: kernel.NewUUID(), Name: "Tunde", Status: agent.Available, Active: true, Location: &loc, LocationRecordedAt: &reportedAt},
	}
	reader := new(MockAgentReader)
	reader.On("ListAgents", ctx, queries.AgentFilter{Status: &available}).Return(rows, nil).Once()

	query, err := queries.NewGetAgentsQuery(&available)
	require.NoError(t, err)

	result, err := queries.NewGetAgentsQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, rows, result)
}

func TestGetAgentsQueryHandler_Handle_EmptyRoster(t *testing.T) {
	ctx := t.Context()
	reader := new(MockAgentReader)
	reader.On("ListAgents", ctx, queries.AgentFilter{}).Return(nil, nil).Once()

	query, err := queries.NewGetAgentsQuery(nil)
	require.NoError(t, err)

	result, err := queries.NewGetAgentsQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestNewGetAgentsQuery_InvalidStatus(t *testing.T) {
	unknown := agent.Unknown

	_, err := queries.NewGetAgentsQuery(&unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetAwaitingAgentOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	first, second := newConfirmedOrder(), newConfirmedOrder()
	reader := new(MockOrderReader)
	reader.On("GetAwaitingAgent", ctx, queries.DefaultAwaitingOrdersLimit).
		Return([]*order.Order{first, second}, nil).Once()

	query, err := queries.NewGetAwaitingAgentOrdersQuery(0)
	require.NoError(t, err)

	result, err := queries.NewGetAwaitingAgentOrdersQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, first.ID(), result[0].ID)
	assert.Equal(t, second.ID(), result[1].ID)
}

func TestGetAwaitingAgentOrdersQueryHandler_Handle_ReaderError(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("GetAwaitingAgent", ctx, 5).Return(nil, errors.New("connection reset")).Once()

	query, err := queries.NewGetAwaitingAgentOrdersQuery(5)
	require.NoError(t, err)

	_, err = queries.NewGetAwaitingAgentOrdersQueryHandler(reader).Handle(ctx, query)

	require.EqualError(t, err, "connection reset")
}

func TestNewGetAwaitingAgentOrdersQuery_Limits(t *testing.T) {
	_, err := queries.NewGetAwaitingAgentOrdersQuery(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	q, err := queries.NewGetAwaitingAgentOrdersQuery(1000)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultAwaitingOrdersLimit, q.Limit())
}
