package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAwaitingAgent(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetEligible(ctx context.Context) ([]*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetAvailable(ctx context.Context) ([]*agent.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.Agent), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Append(ctx context.Context, s agent.LocationSample) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockLocationRepository) Latest(ctx context.Context, agentID kernel.UUID) (*agent.LocationSample, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.LocationSample), args.Error(1)
}

func (m *MockLocationRepository) LatestFor(
	ctx context.Context,
	agentIDs []kernel.UUID,
) (map[kernel.UUID]agent.LocationSample, error) {
	args := m.Called(ctx, agentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]agent.LocationSample), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Append(ctx context.Context, e *tracking.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockUoW satisfies every segmented unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StoreRepository() ports.StoreRepository {
	args := m.Called()
	return args.Get(0).(ports.StoreRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStoreUoWFactory struct{ mock.Mock }

func (m *MockStoreUoWFactory) Create() commands.StoreUoW {
	args := m.Called()
	return args.Get(0).(commands.StoreUoW)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...order.Event) {
	m.Called(ctx, events)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Resolve(ctx context.Context, address string) (kernel.Location, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.Location), args.Error(1)
}

// repos bundles one set of repository mocks wired into a MockUoW.
type repos struct {
	uow       *MockUoW
	orders    *MockOrderRepository
	stores    *MockStoreRepository
	agents    *MockAgentRepository
	locations *MockLocationRepository
	tracking  *MockTrackingRepository
}

func newRepos() repos {
	r := repos{
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		stores:    new(MockStoreRepository),
		agents:    new(MockAgentRepository),
		locations: new(MockLocationRepository),
		tracking:  new(MockTrackingRepository),
	}
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("StoreRepository").Return(r.stores).Maybe()
	r.uow.On("AgentRepository").Return(r.agents).Maybe()
	r.uow.On("LocationRepository").Return(r.locations).Maybe()
	r.uow.On("TrackingRepository").Return(r.tracking).Maybe()
	return r
}

func location(lat, lon float64) kernel.Location {
	loc, err := kernel.NewLocation(lat, lon)
	if err != nil {
		panic(err)
	}
	return loc
}

var (
	ikeja    = location(6.5964, 3.3486)
	surulere = location(6.4969, 3.3612)
)

func newItems() []order.Item {
	item, err := order.NewItem("sku-42", 2)
	if err != nil {
		panic(err)
	}
	return []order.Item{item}
}

func newPendingOrder(destination *kernel.Location) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), newItems(),
		"12 Adeniran Ogunsanya St, Surulere", destination, "ada@example.com", time.Now())
	if err != nil {
		panic(err)
	}
	o.PopEvents()
	return o
}

func restoreOrder(status order.Status, storeID, agentID *kernel.UUID, version int64) *order.Order {
	dest := surulere
	eta := time.Now().Add(17 * time.Minute)
	snapshot := order.Snapshot{
		ID:                kernel.NewUUID(),
		CustomerID:        kernel.NewUUID(),
		Items:             newItems(),
		Address:           "12 Adeniran Ogunsanya St, Surulere",
		Destination:       &dest,
		Status:            status,
		StoreID:           storeID,
		AgentID:           agentID,
		EstimatedDelivery: &eta,
		OrderDate:         time.Now().Add(-time.Hour),
		Version:           version,
	}
	if agentID != nil {
		snapshot.AgentName = "Tunde"
	}
	o, err := order.RestoreOrder(snapshot)
	if err != nil {
		panic(err)
	}
	return o
}

func newStore(name string, loc kernel.Location) *store.Store {
	s, err := store.NewStore(kernel.NewUUID(), name, &loc, store.TypeOwn)
	if err != nil {
		panic(err)
	}
	return s
}

func restoreAgent(name string, status agent.Status) *agent.Agent {
	a, err := agent.RestoreAgent(kernel.NewUUID(), name, status, true, 3)
	if err != nil {
		panic(err)
	}
	return a
}

func sampleAt(a *agent.Agent, loc kernel.Location) agent.LocationSample {
	s, err := agent.NewLocationSample(kernel.NewUUID(), a.ID(), loc, time.Now())
	if err != nil {
		panic(err)
	}
	return s
}

func entryWithStatus(status order.Status) any {
	return mock.MatchedBy(func(e *tracking.Entry) bool {
		return e.Status() == status
	})
}
