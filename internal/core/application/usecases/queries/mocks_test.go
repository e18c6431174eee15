package queries_test

import (
	"context"
	"iter"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/mock"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) GetAwaitingAgent(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStoreReader struct{ mock.Mock }

func (m *MockStoreReader) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreReader) GetEligible(ctx context.Context) ([]*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}

type MockAgentReader struct{ mock.Mock }

func (m *MockAgentReader) ListAgents(ctx context.Context, filter queries.AgentFilter) ([]queries.GetAgentsQueryResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetAgentsQueryResponse), args.Error(1)
}

// sliceTracking replays a fixed slice and counts how many times it was ranged over.
type sliceTracking struct {
	entries []*tracking.Entry
	replays int
}

func (s *sliceTracking) History(_ context.Context, _ kernel.UUID, direction tracking.Direction) iter.Seq2[*tracking.Entry, error] {
	return func(yield func(*tracking.Entry, error) bool) {
		s.replays++
		n := len(s.entries)
		for i := range n {
			e := s.entries[i]
			if direction == tracking.Descending {
				e = s.entries[n-1-i]
			}
			if !yield(e, nil) {
				return
			}
		}
	}
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

func newConfirmedOrder() *order.Order {
	item, err := order.NewItem("sku-42", 2)
	if err != nil {
		panic(err)
	}
	dest := surulere
	storeID := kernel.NewUUID()
	eta := time.Date(2025, 3, 1, 10, 17, 0, 0, time.UTC)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:                kernel.NewUUID(),
		CustomerID:        kernel.NewUUID(),
		Items:             []order.Item{item},
		Address:           "Surulere",
		Destination:       &dest,
		Status:            order.Confirmed,
		StoreID:           &storeID,
		EstimatedDelivery: &eta,
		OrderDate:         time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Version:           2,
	})
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
