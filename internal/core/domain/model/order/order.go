package order

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemsAreRequired is returned when an order is placed without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrAddressIsRequired is returned when an order is placed without a destination address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrDestinationIsRequired is returned when a store is assigned before coordinates were resolved.
	ErrDestinationIsRequired = errs.NewValueIsRequiredError("destination")
	// ErrAgentNameIsRequired is returned when an agent is assigned without a display name.
	ErrAgentNameIsRequired = errs.NewValueIsRequiredError("agentName")
)

// Order is the aggregate root of the dispatch core. It owns the lifecycle state machine:
// every change of status goes through one of its methods and records a StatusChanged event.
//
// Invariants:
//   - id, customer id, address and at least one item are always present
//   - CONFIRMED and later (except CANCELLED) carry a store id and destination coordinates
//   - PROCESSING and later (except CANCELLED) carry an agent id and agent name
//   - version increases by exactly one per recorded status change
//
// Orders are never deleted; terminal states are kept for audit.
type Order struct {
	id                kernel.UUID
	customerID        kernel.UUID
	items             []Item
	address           string
	destination       *kernel.Location
	contactEmail      string
	status            Status
	storeID           *kernel.UUID
	agentID           *kernel.UUID
	agentName         string
	estimatedDelivery *time.Time
	orderDate         time.Time

	// version is the current optimistic-concurrency counter; originalVersion is the value
	// the aggregate was loaded with (0 for an order that was never stored).
	version         int64
	originalVersion int64

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder places an order in PENDING state and records the placement event (sequence 1).
//
// Parameters:
//   - id: identifier of the new order
//   - customerID: owning customer
//   - items: requested lines, at least one
//   - address: free-text destination address, geocoded later when destination is nil
//   - destination: resolved coordinates when checkout already knows them, may be nil
//   - contactEmail: optional customer e-mail for notifications, validated when present
//   - orderDate: placement time, stored in UTC
//
// Returns:
//   - *Order: the pending order
//   - error: every validation failure, joined
//
// Example:
//
//	item, _ := order.NewItem("sku-42", 2)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Item{item},
//	    "12 Adeniran Ogunsanya St, Surulere", nil, "", time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	address string,
	destination *kernel.Location,
	contactEmail string,
	orderDate time.Time,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		o.setDestination(destination),
		o.setContactEmail(contactEmail),
	); err != nil {
		return nil, err
	}
	o.orderDate = orderDate.UTC()

	o.record(Unknown, Pending, "", orderDate)
	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	Items             []Item
	Address           string
	Destination       *kernel.Location
	ContactEmail      string
	Status            Status
	StoreID           *kernel.UUID
	AgentID           *kernel.UUID
	AgentName         string
	EstimatedDelivery *time.Time
	OrderDate         time.Time
	Version           int64
}

// RestoreOrder rebuilds an order from storage without recording events.
// It validates the same invariants as NewOrder plus the status/assignment consistency.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		agentName:         s.AgentName,
		estimatedDelivery: s.EstimatedDelivery,
		orderDate:         s.OrderDate.UTC(),
		version:           s.Version,
		originalVersion:   s.Version,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setItems(s.Items),
		o.setAddress(s.Address),
		o.setDestination(s.Destination),
		o.setContactEmail(s.ContactEmail),
		o.setStatus(s.Status),
		o.setStoreID(s.StoreID),
		o.setAgentID(s.AgentID),
		o.setVersion(s.Version),
	); err != nil {
		return nil, err
	}

	if err := o.validateAssignments(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the requested lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Address returns the destination address as placed.
func (o *Order) Address() string {
	return o.address
}

// Destination returns the resolved coordinates, nil until geocoded.
func (o *Order) Destination() *kernel.Location {
	if o.destination == nil {
		return nil
	}
	d := *o.destination
	return &d
}

// ContactEmail returns the customer e-mail, empty when none was supplied.
func (o *Order) ContactEmail() string {
	return o.contactEmail
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// StoreID returns the assigned store, nil before CONFIRMED.
func (o *Order) StoreID() *kernel.UUID {
	return copyID(o.storeID)
}

// AgentID returns the assigned agent, nil before PROCESSING.
func (o *Order) AgentID() *kernel.UUID {
	return copyID(o.agentID)
}

// AgentName returns the display name of the assigned agent.
func (o *Order) AgentName() string {
	return o.agentName
}

// EstimatedDelivery returns the ETA computed at store assignment, nil before CONFIRMED.
func (o *Order) EstimatedDelivery() *time.Time {
	if o.estimatedDelivery == nil {
		return nil
	}
	t := *o.estimatedDelivery
	return &t
}

// OrderDate returns the placement time in UTC.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Version returns the current concurrency counter.
func (o *Order) Version() int64 {
	return o.version
}

// OriginalVersion returns the counter the order had when it was loaded; repositories use it
// as the compare-and-set condition.
func (o *Order) OriginalVersion() int64 {
	return o.originalVersion
}

// IsAwaitingAgent reports whether the order is CONFIRMED and still has no agent.
func (o *Order) IsAwaitingAgent() bool {
	return o.status == Confirmed && o.agentID == nil
}

// ResolveDestination stores geocoded coordinates. Only a PENDING order can change its destination.
func (o *Order) ResolveDestination(destination kernel.Location) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("destination",
			fmt.Errorf("cannot change the destination of a %s order", o.status))
	}
	return o.setDestination(&destination)
}

// Confirm assigns the fulfilling store and moves PENDING -> CONFIRMED.
//
// Parameters:
//   - storeID: the nearest eligible store
//   - estimatedDelivery: now plus the estimated travel time from the store
//   - at: time of the change
//
// Returns:
//   - error: ErrDestinationIsRequired when coordinates are unresolved,
//     *errs.InvalidStateTransitionError when the order is not PENDING
func (o *Order) Confirm(storeID kernel.UUID, estimatedDelivery time.Time, at time.Time) error {
	if err := errors.Join(o.Validate(), storeID.Validate()); err != nil {
		return err
	}
	if o.destination == nil {
		return ErrDestinationIsRequired
	}

	next, err := o.status.TransitionTo(Confirmed)
	if err != nil {
		return err
	}

	eta := estimatedDelivery.UTC()
	o.storeID = &storeID
	o.estimatedDelivery = &eta
	o.apply(next, "", at)
	return nil
}

// AssignAgent records the agent taking the order and moves CONFIRMED -> PROCESSING.
// It records an AgentAssigned event in addition to StatusChanged.
//
// The caller is responsible for reserving the agent itself (agent.Agent.Reserve) in the same
// unit of work so that both changes commit or neither does.
func (o *Order) AssignAgent(agentID kernel.UUID, agentName string, actor string, at time.Time) error {
	if err := errors.Join(o.Validate(), agentID.Validate()); err != nil {
		return err
	}
	agentName = strings.TrimSpace(agentName)
	if agentName == "" {
		return ErrAgentNameIsRequired
	}

	next, err := o.status.TransitionTo(Processing)
	if err != nil {
		return err
	}

	o.agentID = &agentID
	o.agentName = agentName
	o.apply(next, actor, at)
	o.events = append(o.events, AgentAssigned{
		OrderID:    o.id,
		StoreID:    *o.storeID,
		AgentID:    agentID,
		AgentName:  agentName,
		Message:    fmt.Sprintf("You have been assigned order %s", o.id),
		OccurredAt: at.UTC(),
	})
	return nil
}

// TransitionTo applies a status change that needs no extra data: PACKED, OUT_FOR_DELIVERY,
// DELIVERED, CANCELLED and REFUNDED. CONFIRMED and PROCESSING carry assignments and are only
// reachable through Confirm and AssignAgent.
//
// Parameters:
//   - target: requested state
//   - actor: who requested the change, may be empty
//   - at: time of the change
//
// Returns:
//   - error: *errs.InvalidStateTransitionError when target is not reachable from the current state
//
// Example:
//
//	if err := o.TransitionTo(order.Cancelled, "support@shop", time.Now()); err != nil {
//	    // errors.Is(err, errs.ErrInvalidStateTransition) for OUT_FOR_DELIVERY or DELIVERED orders
//	}
func (o *Order) TransitionTo(target Status, actor string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if target == Confirmed || target == Processing {
		return errs.NewInvalidStateTransitionErrorWithCause("order", o.status, target,
			errors.New("store and agent assignment go through dispatch"))
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.apply(next, actor, at)
	return nil
}

// Events returns the events recorded since the last PopEvents.
func (o *Order) Events() []Event {
	return slices.Clone(o.events)
}

// PopEvents returns and clears the recorded events.
func (o *Order) PopEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) apply(next Status, actor string, at time.Time) {
	prev := o.status
	o.status = next
	o.version++
	o.record(prev, next, actor, at)
}

func (o *Order) record(from, to Status, actor string, at time.Time) {
	if from == Unknown {
		o.version = 1
	}

	o.events = append(o.events, StatusChanged{
		OrderID:         o.id,
		CustomerID:      o.customerID,
		ContactEmail:    o.contactEmail,
		From:            from,
		To:              to,
		Message:         describe(to, o.agentName),
		Actor:           actor,
		AgentID:         copyID(o.agentID),
		AgentName:       o.agentName,
		ReleaseAgent:    to.IsTerminal() && o.agentID != nil && from != Delivered,
		RestockRequired: to == Cancelled && (from == Processing || from == Packed),
		Items:           slices.Clone(o.items),
		Sequence:        o.version,
		OccurredAt:      at.UTC(),
	})
}

// describe generates the customer-facing tracking message for a target state.
func describe(to Status, agentName string) string {
	switch to {
	case Pending:
		return "Order placed"
	case Confirmed:
		return "Order confirmed by the store"
	case Processing:
		return fmt.Sprintf("%s is assigned to your order, the store is preparing it", agentName)
	case Packed:
		return "Order packed and ready for pickup"
	case OutForDelivery:
		return fmt.Sprintf("%s is on the way with your order", agentName)
	case Delivered:
		return "Order delivered"
	case Cancelled:
		return "Order cancelled"
	case Refunded:
		return "Order refunded"
	case Unknown:
	}
	return to.String()
}

func (o *Order) validateAssignments() error {
	if o.status.requiresStore() && (o.storeID == nil || o.destination == nil) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s requires an assigned store and a destination", o.status))
	}
	if o.status.requiresAgent() && (o.agentID == nil || o.agentName == "") {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s requires an assigned agent", o.status))
	}
	if o.status == Pending && (o.storeID != nil || o.agentID != nil) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s cannot have assignments", o.status))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if item.productID == "" || item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", errors.New("items must be created via NewItem"))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}
	o.address = address
	return nil
}

func (o *Order) setDestination(destination *kernel.Location) error {
	if destination == nil {
		o.destination = nil
		return nil
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	d := *destination
	o.destination = &d
	return nil
}

func (o *Order) setContactEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		o.contactEmail = ""
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("contactEmail", err)
	}
	o.contactEmail = email
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setStoreID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.storeID = copyID(id)
	return nil
}

func (o *Order) setAgentID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.agentID = copyID(id)
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, int64(math.MaxInt64))
	}
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
