package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFulfillmentHandler(factory commands.UoWFactory, geocoder *MockGeocoder, publisher *MockPublisher, autoAssign bool) commands.ProcessFulfillmentCommandHandler {
	haversine := services.NewHaversineCalculator()
	assigner := commands.NewAssignAgentCommandHandler(
		factory,
		services.NewAgentLocator(haversine, services.AgentLocatorConfig{}),
		publisher,
		zap.NewNop(),
		0,
	)
	return commands.NewProcessFulfillmentCommandHandler(
		factory,
		geocoder,
		services.NewStoreLocator(haversine),
		services.NewDeliveryEstimator(haversine, services.DefaultEstimatorConfig()),
		assigner,
		publisher,
		zap.NewNop(),
		autoAssign,
	)
}

func TestProcessFulfillmentCommandHandler_Handle_AssignsNearestStoreAndAgent(t *testing.T) {
	ctx := t.Context()
	o := newPendingOrder(&surulere)
	ikejaStore := newStore("Ikeja", ikeja)
	farStore := newStore("Abeokuta", location(7.1475, 3.3619))
	rider := restoreAgent("Tunde", agent.Available)
	sample := sampleAt(rider, location(6.5950, 3.3470))

	r := newRepos()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Twice()
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.Anything).Twice()

	r.uow.On("Begin", ctx).Return(nil).Twice()
	r.uow.On("Commit", ctx).Return(nil).Twice()
	r.uow.On("Rollback", ctx).Return(nil)
	r.orders.On("Get", ctx, o.ID()).Return(o, nil).Twice()
	r.stores.On("GetEligible", ctx).Return([]*store.Store{farStore, ikejaStore}, nil).Once()
	r.orders.On("Update", ctx, o).Return(nil).Twice()
	r.tracking.On("Append", ctx, entryWithStatus(order.Confirmed)).Return(nil).Once()
	r.stores.On("Get", ctx, ikejaStore.ID()).Return(ikejaStore, nil).Once()
	r.agents.On("GetAvailable", ctx).Return([]*agent.Agent{rider}, nil).Once()
	r.locations.On("LatestFor", ctx, []kernel.UUID{rider.ID()}).
		Return(map[kernel.UUID]agent.LocationSample{rider.ID(): sample}, nil).Once()
	r.agents.On("Update", ctx, rider).Return(nil).Once()
	r.locations.On("Latest", ctx, rider.ID()).Return(&sample, nil).Once()
	r.tracking.On("Append", ctx, entryWithStatus(order.Processing)).Return(nil).Once()

	before := time.Now()
	result, err := newFulfillmentHandler(factory, new(MockGeocoder), publisher, true).
		Handle(ctx, mustFulfillmentCommand(t, o.ID()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeAssigned, result.Outcome)
	assert.Equal(t, ikejaStore.ID(), result.StoreID)
	assert.InDelta(t, 11.15, result.StoreDistanceKm, 0.2)
	assert.WithinDuration(t, before.Add(17*time.Minute), result.EstimatedDelivery, 5*time.Second)
	require.NotNil(t, result.Assignment)
	assert.Equal(t, rider.ID(), result.Assignment.AgentID)

	assert.Equal(t, order.Processing, o.Status())
	assert.Equal(t, agent.Busy, rider.Status())
	r.orders.AssertExpectations(t)
	r.agents.AssertExpectations(t)
	r.tracking.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProcessFulfillmentCommandHandler_Handle_DefersWithoutAgent(t *testing.T) {
	ctx := t.Context()
	o := newPendingOrder(&surulere)
	ikejaStore := newStore("Ikeja", ikeja)
	// 60 km away, outside the default 10 km radius.
	farRider := restoreAgent("Bola", agent.Available)
	farSample := sampleAt(farRider, location(7.1475, 3.3619))

	r := newRepos()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Twice()
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.Anything).Once()

	r.uow.On("Begin", ctx).Return(nil).Twice()
	r.uow.On("Commit", ctx).Return(nil).Once()
	r.uow.On("Rollback", ctx).Return(nil)
	r.orders.On("Get", ctx, o.ID()).Return(o, nil).Twice()
	r.stores.On("GetEligible", ctx).Return([]*store.Store{ikejaStore}, nil).Once()
	r.orders.On("Update", ctx, o).Return(nil).Once()
	r.tracking.On("Append", ctx, entryWithStatus(order.Confirmed)).Return(nil).Once()
	r.stores.On("Get", ctx, ikejaStore.ID()).Return(ikejaStore, nil).Once()
	r.agents.On("GetAvailable", ctx).Return([]*agent.Agent{farRider}, nil).Once()
	r.locations.On("LatestFor", ctx, []kernel.UUID{farRider.ID()}).
		Return(map[kernel.UUID]agent.LocationSample{farRider.ID(): farSample}, nil).Once()

	result, err := newFulfillmentHandler(factory, new(MockGeocoder), publisher, true).
		Handle(ctx, mustFulfillmentCommand(t, o.ID()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeDeferred, result.Outcome)
	assert.Nil(t, result.Assignment)
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Equal(t, agent.Available, farRider.Status())
	r.agents.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}

func TestProcessFulfillmentCommandHandler_Handle_GeocodesMissingDestination(t *testing.T) {
	ctx := t.Context()
	o := newPendingOrder(nil)
	ikejaStore := newStore("Ikeja", ikeja)

	r := newRepos()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Once()
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.Anything).Once()
	geocoder := new(MockGeocoder)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		geocoder.On("Resolve", ctx, o.Address()).Return(surulere, nil).Once(),
		r.stores.On("GetEligible", ctx).Return([]*store.Store{ikejaStore}, nil).Once(),
		r.orders.On("Update", ctx, o).Return(nil).Once(),
		r.tracking.On("Append", ctx, entryWithStatus(order.Confirmed)).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := newFulfillmentHandler(factory, geocoder, publisher, false).
		Handle(ctx, mustFulfillmentCommand(t, o.ID()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeDeferred, result.Outcome)
	require.NotNil(t, o.Destination())
	ok, err := o.Destination().IsEqual(surulere)
	require.NoError(t, err)
	assert.True(t, ok)
	geocoder.AssertExpectations(t)
}

func TestProcessFulfillmentCommandHandler_Handle_NoStoreAvailable(t *testing.T) {
	ctx := t.Context()
	o := newPendingOrder(&surulere)
	closed, err := store.RestoreStore(kernel.NewUUID(), "Ikeja", &ikeja, store.TypeOwn, false)
	require.NoError(t, err)

	r := newRepos()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Once()
	publisher := new(MockPublisher)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		r.stores.On("GetEligible", ctx).Return([]*store.Store{closed}, nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = newFulfillmentHandler(factory, new(MockGeocoder), publisher, true).
		Handle(ctx, mustFulfillmentCommand(t, o.ID()))

	require.ErrorIs(t, err, services.ErrNoStoreAvailable)
	assert.Equal(t, order.Pending, o.Status())
	r.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProcessFulfillmentCommandHandler_Handle_RejectsOrderPastPending(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	o := restoreOrder(order.Confirmed, &storeID, nil, 2)

	r := newRepos()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Once()

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := newFulfillmentHandler(factory, new(MockGeocoder), new(MockPublisher), true).
		Handle(ctx, mustFulfillmentCommand(t, o.ID()))

	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	var transitionErr *errs.InvalidStateTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.ErrorIs(t, transitionErr.Cause, commands.ErrOrderIsNotPending)
}

func TestProcessFulfillmentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	r := newRepos()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(r.uow).Once()

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id)).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := newFulfillmentHandler(factory, new(MockGeocoder), new(MockPublisher), true).
		Handle(ctx, mustFulfillmentCommand(t, id))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func mustFulfillmentCommand(t *testing.T, id kernel.UUID) commands.ProcessFulfillmentCommand {
	t.Helper()
	cmd, err := commands.NewProcessFulfillmentCommand(id)
	require.NoError(t, err)
	return cmd
}
