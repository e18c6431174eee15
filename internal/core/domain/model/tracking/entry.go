package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned for an Entry built as a literal.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Direction selects the replay order of an order's history.
type Direction int

const (
	// Ascending replays oldest first.
	Ascending Direction = iota
	// Descending replays newest first.
	Descending
)

// ParseDirection converts "asc"/"desc" (any case, empty meaning asc) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not asc or desc", s))
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// AgentSnapshot is the assigned agent's identity and last known position at the time of an entry.
type AgentSnapshot struct {
	AgentID   kernel.UUID
	AgentName string
	// Location is nil when the agent had not reported a position yet.
	Location *kernel.Location
}

// Entry is one immutable audit record of an order lifecycle change. Entries are only ever
// appended; (order id, sequence) is unique and sequence follows the order version, so the
// per-order append order matches the causal order of transitions.
type Entry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	sequence   int64
	status     order.Status
	message    string
	agent      *AgentSnapshot
	recordedAt time.Time
	actor      string
	guard      guard.ConstructorGuard
}

// NewEntry validates and creates a tracking entry.
//
// Parameters:
//   - id: entry identifier
//   - orderID: the tracked order
//   - sequence: order version after the change, starting at 1
//   - status: order status at the time of the entry
//   - message: human-readable description, required
//   - agent: optional snapshot of the assigned agent
//   - recordedAt: entry time, stored in UTC
//   - actor: optional identity of whoever requested the change
func NewEntry(
	id, orderID kernel.UUID,
	sequence int64,
	status order.Status,
	message string,
	agent *AgentSnapshot,
	recordedAt time.Time,
	actor string,
) (*Entry, error) {
	var errSequence, errMessage, errAgent error
	if sequence < 1 {
		errSequence = errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is not greater than 0", sequence))
	}
	if strings.TrimSpace(message) == "" {
		errMessage = errs.NewValueIsRequiredError("message")
	}
	if agent != nil {
		errAgent = agent.AgentID.Validate()
	}
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
		errSequence,
		errMessage,
		errAgent,
	); err != nil {
		return nil, err
	}

	e := &Entry{
		id:         id,
		orderID:    orderID,
		sequence:   sequence,
		status:     status,
		message:    message,
		recordedAt: recordedAt.UTC(),
		actor:      strings.TrimSpace(actor),
		guard:      guard.NewConstructorGuard(),
	}
	if agent != nil {
		snapshot := *agent
		if agent.Location != nil {
			loc := *agent.Location
			snapshot.Location = &loc
		}
		e.agent = &snapshot
	}
	return e, nil
}

// FromStatusChanged builds the entry recording a StatusChanged event.
func FromStatusChanged(id kernel.UUID, event order.StatusChanged, agent *AgentSnapshot) (*Entry, error) {
	return NewEntry(id, event.OrderID, event.Sequence, event.To, event.Message, agent, event.OccurredAt, event.Actor)
}

// Validate ensures the entry was created through NewEntry.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// OrderID returns the tracked order.
func (e *Entry) OrderID() kernel.UUID { return e.orderID }

// Sequence returns the per-order position of the entry.
func (e *Entry) Sequence() int64 { return e.sequence }

// Status returns the order status recorded by the entry.
func (e *Entry) Status() order.Status { return e.status }

// Message returns the human-readable description.
func (e *Entry) Message() string { return e.message }

// RecordedAt returns the entry time in UTC.
func (e *Entry) RecordedAt() time.Time { return e.recordedAt }

// Actor returns who requested the change, empty for system changes.
func (e *Entry) Actor() string { return e.actor }

// Agent returns a copy of the agent snapshot, nil when no agent was assigned.
func (e *Entry) Agent() *AgentSnapshot {
	if e.agent == nil {
		return nil
	}
	snapshot := *e.agent
	if e.agent.Location != nil {
		loc := *e.agent.Location
		snapshot.Location = &loc
	}
	return &snapshot
}
