// Package inmemory is the process-local storage driver used for local runs and tests.
//
// A unit of work stages its writes and applies them under one lock on Commit. Every staged
// update carries the version the aggregate was loaded with; Commit re-checks all of them and
// applies nothing if any row moved, which gives the same compare-and-set semantics as the
// postgres driver's UPDATE ... WHERE version = ?.
package inmemory

import (
	"cmp"
	"slices"
	"sync"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type storeRecord struct {
	name      string
	location  *kernel.Location
	storeType store.Type
	active    bool
}

type agentRecord struct {
	name    string
	status  agent.Status
	active  bool
	version int64
}

type entryKey struct {
	orderID  kernel.UUID
	sequence int64
}

// Storage holds committed state. It implements ports.UnitOfWorkFactory.
type Storage struct {
	mu      sync.RWMutex
	orders  map[kernel.UUID]order.Snapshot
	stores  map[kernel.UUID]storeRecord
	agents  map[kernel.UUID]agentRecord
	samples map[kernel.UUID][]agent.LocationSample
	entries map[kernel.UUID][]*tracking.Entry
	keys    map[entryKey]struct{}
}

func NewStorage() *Storage {
	return &Storage{
		orders:  make(map[kernel.UUID]order.Snapshot),
		stores:  make(map[kernel.UUID]storeRecord),
		agents:  make(map[kernel.UUID]agentRecord),
		samples: make(map[kernel.UUID][]agent.LocationSample),
		entries: make(map[kernel.UUID][]*tracking.Entry),
		keys:    make(map[entryKey]struct{}),
	}
}

// Create returns a unit of work over this storage.
func (s *Storage) Create() ports.UnitOfWork {
	return newUnitOfWork(s)
}

// changeSet is everything a unit of work staged, in staging order.
type changeSet struct {
	orders  []orderWrite
	stores  []storeWrite
	agents  []agentWrite
	samples []agent.LocationSample
	entries []*tracking.Entry
}

type orderWrite struct {
	snapshot order.Snapshot
	expected int64
	isNew    bool
}

// storeWrite is always an insert; stores are registered, never edited.
type storeWrite struct {
	id     kernel.UUID
	record storeRecord
}

type agentWrite struct {
	id       kernel.UUID
	record   agentRecord
	expected int64
	isNew    bool
}

func (c *changeSet) empty() bool {
	return len(c.orders) == 0 && len(c.stores) == 0 && len(c.agents) == 0 &&
		len(c.samples) == 0 && len(c.entries) == 0
}

// apply validates the whole change set against committed state and then applies it.
// Either every write lands or none does.
func (s *Storage) apply(c *changeSet) error {
	if c.empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(c); err != nil {
		return err
	}

	for _, w := range c.orders {
		s.orders[w.snapshot.ID] = w.snapshot
	}
	for _, w := range c.stores {
		s.stores[w.id] = w.record
	}
	for _, w := range c.agents {
		s.agents[w.id] = w.record
	}
	for _, sample := range c.samples {
		s.samples[sample.AgentID()] = append(s.samples[sample.AgentID()], sample)
	}
	for _, e := range c.entries {
		s.entries[e.OrderID()] = append(s.entries[e.OrderID()], e)
		s.keys[entryKey{orderID: e.OrderID(), sequence: e.Sequence()}] = struct{}{}
	}
	return nil
}

func (s *Storage) check(c *changeSet) error {
	for _, w := range c.orders {
		current, exists := s.orders[w.snapshot.ID]
		switch {
		case w.isNew && exists:
			return errs.NewValueIsInvalidErrorWithCause("orderId", errDuplicate(w.snapshot.ID))
		case !w.isNew && !exists:
			return errs.NewObjectNotFoundError("order", w.snapshot.ID.String())
		case !w.isNew && current.Version != w.expected:
			return errs.NewConcurrencyConflictError("order", w.snapshot.ID.String(), w.expected)
		}
	}

	for _, w := range c.stores {
		if _, exists := s.stores[w.id]; exists {
			return errs.NewValueIsInvalidErrorWithCause("storeId", errDuplicate(w.id))
		}
	}

	for _, w := range c.agents {
		current, exists := s.agents[w.id]
		switch {
		case w.isNew && exists:
			return errs.NewValueIsInvalidErrorWithCause("agentId", errDuplicate(w.id))
		case !w.isNew && !exists:
			return errs.NewObjectNotFoundError("agent", w.id.String())
		case !w.isNew && current.version != w.expected:
			return errs.NewConcurrencyConflictError("agent", w.id.String(), w.expected)
		}
	}

	seen := make(map[entryKey]struct{}, len(c.entries))
	for _, e := range c.entries {
		key := entryKey{orderID: e.OrderID(), sequence: e.Sequence()}
		_, committed := s.keys[key]
		_, staged := seen[key]
		if committed || staged {
			return errs.NewValueIsInvalidErrorWithCause("sequence", errDuplicate(e.OrderID()))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (s *Storage) getOrder(id kernel.UUID) (order.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.orders[id]
	return snapshot, ok
}

func (s *Storage) awaitingOrders(limit int) []order.Snapshot {
	s.mu.RLock()
	result := make([]order.Snapshot, 0)
	for _, snapshot := range s.orders {
		if snapshot.Status == order.Confirmed && snapshot.AgentID == nil {
			result = append(result, snapshot)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(result, func(a, b order.Snapshot) int {
		return cmp.Or(a.OrderDate.Compare(b.OrderDate), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (s *Storage) getStore(id kernel.UUID) (storeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.stores[id]
	return record, ok
}

func (s *Storage) eligibleStores() []*store.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*store.Store, 0)
	for id, record := range s.stores {
		if !record.active || record.location == nil {
			continue
		}
		st, err := restoreStore(id, record)
		if err != nil {
			continue
		}
		result = append(result, st)
	}
	slices.SortFunc(result, func(a, b *store.Store) int {
		return cmp.Or(cmp.Compare(a.Name(), b.Name()), cmp.Compare(a.ID().String(), b.ID().String()))
	})
	return result
}

func (s *Storage) getAgent(id kernel.UUID) (agentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.agents[id]
	return record, ok
}

func (s *Storage) agentIDs() []kernel.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]kernel.UUID, 0, len(s.agents))
	for id := range s.agents {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b kernel.UUID) int {
		return cmp.Compare(a.String(), b.String())
	})
	return ids
}

func (s *Storage) latestSample(agentID kernel.UUID) (agent.LocationSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newest(s.samples[agentID])
}

func (s *Storage) history(orderID kernel.UUID) []*tracking.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries[orderID])
}

// newest picks the sample with the latest recorded-at; ties go to the last appended.
func newest(samples []agent.LocationSample) (agent.LocationSample, bool) {
	if len(samples) == 0 {
		return agent.LocationSample{}, false
	}
	best := samples[0]
	for _, sample := range samples[1:] {
		if !sample.RecordedAt().Before(best.RecordedAt()) {
			best = sample
		}
	}
	return best, true
}

// TrackingReader returns a reader over committed tracking entries.
func (s *Storage) TrackingReader() ports.TrackingReader {
	return &trackingRepository{uow: newUnitOfWork(s)}
}
