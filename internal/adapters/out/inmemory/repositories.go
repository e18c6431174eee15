package inmemory

import (
	"cmp"
	"context"
	"iter"
	"slices"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.changes.orders = append(r.uow.changes.orders, orderWrite{snapshot: snapshotOf(aggregate), isNew: true})
	return r.uow.flush()
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	current, ok := r.uow.storage.getOrder(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if current.Version != aggregate.OriginalVersion() {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String(), aggregate.OriginalVersion())
	}

	r.uow.changes.orders = append(r.uow.changes.orders, orderWrite{
		snapshot: snapshotOf(aggregate),
		expected: aggregate.OriginalVersion(),
	})
	return r.uow.flush()
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	for _, w := range slices.Backward(r.uow.changes.orders) {
		if w.snapshot.ID == id {
			return order.RestoreOrder(cloneSnapshot(w.snapshot))
		}
	}

	snapshot, ok := r.uow.storage.getOrder(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(cloneSnapshot(snapshot))
}

func (r *orderRepository) GetAwaitingAgent(_ context.Context, limit int) ([]*order.Order, error) {
	snapshots := r.uow.storage.awaitingOrders(limit)
	orders := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		o, err := order.RestoreOrder(cloneSnapshot(snapshot))
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

type storeRepository struct {
	uow *UnitOfWork
}

func (r *storeRepository) Add(_ context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.changes.stores = append(r.uow.changes.stores, storeWrite{
		id:     aggregate.ID(),
		record: storeRecordOf(aggregate),
	})
	return r.uow.flush()
}

func (r *storeRepository) Get(_ context.Context, id kernel.UUID) (*store.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	for _, w := range slices.Backward(r.uow.changes.stores) {
		if w.id == id {
			return restoreStore(id, w.record)
		}
	}

	record, ok := r.uow.storage.getStore(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("store", id.String())
	}
	return restoreStore(id, record)
}

func (r *storeRepository) GetEligible(_ context.Context) ([]*store.Store, error) {
	return r.uow.storage.eligibleStores(), nil
}

type agentRepository struct {
	uow *UnitOfWork
}

func (r *agentRepository) Add(_ context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.changes.agents = append(r.uow.changes.agents, agentWrite{
		id:     aggregate.ID(),
		record: agentRecordOf(aggregate),
		isNew:  true,
	})
	return r.uow.flush()
}

// Update stages a compare-and-set. A version mismatch visible now fails at once; one that
// appears before Commit fails the commit.
func (r *agentRepository) Update(_ context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	current, ok := r.uow.storage.getAgent(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
	}
	if current.version != aggregate.OriginalVersion() {
		return errs.NewConcurrencyConflictError("agent", aggregate.ID().String(), aggregate.OriginalVersion())
	}

	r.uow.changes.agents = append(r.uow.changes.agents, agentWrite{
		id:       aggregate.ID(),
		record:   agentRecordOf(aggregate),
		expected: aggregate.OriginalVersion(),
	})
	return r.uow.flush()
}

func (r *agentRepository) Get(_ context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	record, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("agent", id.String())
	}
	return restoreAgent(id, record)
}

func (r *agentRepository) GetAvailable(_ context.Context) ([]*agent.Agent, error) {
	agents := make([]*agent.Agent, 0)
	for _, id := range r.uow.storage.agentIDs() {
		record, ok := r.lookup(id)
		if !ok || !record.active || record.status != agent.Available {
			continue
		}
		a, err := restoreAgent(id, record)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func (r *agentRepository) lookup(id kernel.UUID) (agentRecord, bool) {
	for _, w := range slices.Backward(r.uow.changes.agents) {
		if w.id == id {
			return w.record, true
		}
	}
	return r.uow.storage.getAgent(id)
}

type locationRepository struct {
	uow *UnitOfWork
}

func (r *locationRepository) Append(_ context.Context, sample agent.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}
	r.uow.changes.samples = append(r.uow.changes.samples, sample)
	return r.uow.flush()
}

func (r *locationRepository) Latest(_ context.Context, agentID kernel.UUID) (*agent.LocationSample, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}
	sample, ok := r.latest(agentID)
	if !ok {
		return nil, nil
	}
	return &sample, nil
}

func (r *locationRepository) LatestFor(
	_ context.Context,
	agentIDs []kernel.UUID,
) (map[kernel.UUID]agent.LocationSample, error) {
	result := make(map[kernel.UUID]agent.LocationSample, len(agentIDs))
	for _, id := range agentIDs {
		if sample, ok := r.latest(id); ok {
			result[id] = sample
		}
	}
	return result, nil
}

func (r *locationRepository) latest(agentID kernel.UUID) (agent.LocationSample, bool) {
	candidates := make([]agent.LocationSample, 0, 1)
	if committed, ok := r.uow.storage.latestSample(agentID); ok {
		candidates = append(candidates, committed)
	}
	for _, sample := range r.uow.changes.samples {
		if sample.AgentID() == agentID {
			candidates = append(candidates, sample)
		}
	}
	return newest(candidates)
}

// trackingRepository implements ports.TrackingRepository and ports.TrackingReader.
type trackingRepository struct {
	uow *UnitOfWork
}

func (r *trackingRepository) Append(_ context.Context, entry *tracking.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.uow.changes.entries = append(r.uow.changes.entries, entry)
	return r.uow.flush()
}

// History copies the committed entries of the order each time it is ranged over.
func (r *trackingRepository) History(
	ctx context.Context,
	orderID kernel.UUID,
	direction tracking.Direction,
) iter.Seq2[*tracking.Entry, error] {
	return func(yield func(*tracking.Entry, error) bool) {
		entries := r.uow.storage.history(orderID)
		slices.SortStableFunc(entries, func(a, b *tracking.Entry) int {
			c := cmp.Or(a.RecordedAt().Compare(b.RecordedAt()), cmp.Compare(a.Sequence(), b.Sequence()))
			if direction == tracking.Descending {
				return -c
			}
			return c
		})

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

func snapshotOf(o *order.Order) order.Snapshot {
	return order.Snapshot{
		ID:                o.ID(),
		CustomerID:        o.CustomerID(),
		Items:             o.Items(),
		Address:           o.Address(),
		Destination:       o.Destination(),
		ContactEmail:      o.ContactEmail(),
		Status:            o.Status(),
		StoreID:           o.StoreID(),
		AgentID:           o.AgentID(),
		AgentName:         o.AgentName(),
		EstimatedDelivery: o.EstimatedDelivery(),
		OrderDate:         o.OrderDate(),
		Version:           o.Version(),
	}
}

func cloneSnapshot(s order.Snapshot) order.Snapshot {
	c := s
	c.Items = slices.Clone(s.Items)
	if s.Destination != nil {
		d := *s.Destination
		c.Destination = &d
	}
	if s.StoreID != nil {
		id := *s.StoreID
		c.StoreID = &id
	}
	if s.AgentID != nil {
		id := *s.AgentID
		c.AgentID = &id
	}
	if s.EstimatedDelivery != nil {
		t := *s.EstimatedDelivery
		c.EstimatedDelivery = &t
	}
	return c
}

func storeRecordOf(s *store.Store) storeRecord {
	return storeRecord{
		name:      s.Name(),
		location:  s.Location(),
		storeType: s.Type(),
		active:    s.IsActive(),
	}
}

func restoreStore(id kernel.UUID, record storeRecord) (*store.Store, error) {
	var location *kernel.Location
	if record.location != nil {
		l := *record.location
		location = &l
	}
	return store.RestoreStore(id, record.name, location, record.storeType, record.active)
}

func agentRecordOf(a *agent.Agent) agentRecord {
	return agentRecord{
		name:    a.Name(),
		status:  a.Status(),
		active:  a.IsActive(),
		version: a.Version(),
	}
}

func restoreAgent(id kernel.UUID, record agentRecord) (*agent.Agent, error) {
	return agent.RestoreAgent(id, record.name, record.status, record.active, record.version)
}
