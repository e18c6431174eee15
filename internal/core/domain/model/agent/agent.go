package agent

import (
	"errors"
	"math"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrAgentIsNotConstructed is returned when an Agent was not created through NewAgent or RestoreAgent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
	// ErrNameIsRequired is returned when an agent has an empty name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAgentIsInactive is the cause attached when a deactivated agent is reserved or put on shift.
	ErrAgentIsInactive = errors.New("agent is deactivated")
)

// Agent is a delivery rider. Its availability is a versioned record: every mutation bumps
// the version, and repositories persist it with a compare-and-set on the version the agent
// was loaded with. Two dispatches racing to reserve the same agent therefore cannot both commit.
//
// Business rules:
//   - eligible for a new order iff active and AVAILABLE
//   - Reserve re-checks eligibility (AVAILABLE -> BUSY)
//   - Release returns a BUSY agent to AVAILABLE when its order reaches a terminal state
//   - a BUSY agent cannot go off shift
//
// Example:
//
//	a, _ := agent.NewAgent(kernel.NewUUID(), "Tunde")
//	_ = a.GoOnline()
//	if err := a.Reserve(); err != nil {
//	    // agent became ineligible since it was found
//	}
type Agent struct {
	id     kernel.UUID
	name   string
	status Status
	active bool

	version         int64
	originalVersion int64

	guard guard.ConstructorGuard
}

// NewAgent registers an active agent that starts OFFLINE.
func NewAgent(id kernel.UUID, name string) (*Agent, error) {
	a := &Agent{
		status:  Offline,
		active:  true,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(a.setID(id), a.setName(name)); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent rebuilds an agent from storage; version becomes the compare-and-set baseline.
func RestoreAgent(id kernel.UUID, name string, status Status, active bool, version int64) (*Agent, error) {
	a := &Agent{
		active:          active,
		version:         version,
		originalVersion: version,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setStatus(status),
		a.setVersion(version),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the agent was created through a constructor.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// ID returns the agent identifier.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the display name shown to customers.
func (a *Agent) Name() string {
	return a.name
}

// Status returns the availability state.
func (a *Agent) Status() Status {
	return a.status
}

// IsActive reports the active flag.
func (a *Agent) IsActive() bool {
	return a.active
}

// Version returns the current concurrency counter.
func (a *Agent) Version() int64 {
	return a.version
}

// OriginalVersion returns the counter the agent was loaded with (0 for a new agent).
func (a *Agent) OriginalVersion() int64 {
	return a.originalVersion
}

// IsEligible reports whether the agent can take a new order.
func (a *Agent) IsEligible() bool {
	return a.active && a.status == Available
}

// Reserve flips an eligible agent to BUSY.
//
// Returns:
//   - error: *errs.InvalidStateTransitionError when the agent is not AVAILABLE or not active
func (a *Agent) Reserve() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.active {
		return errs.NewInvalidStateTransitionErrorWithCause("agent", a.status, Busy, ErrAgentIsInactive)
	}
	return a.moveTo(Busy)
}

// Release returns a BUSY agent to AVAILABLE.
func (a *Agent) Release() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != Busy {
		return errs.NewInvalidStateTransitionError("agent", a.status, Available)
	}
	return a.moveTo(Available)
}

// GoOnline starts a shift: OFFLINE -> AVAILABLE. Inactive agents cannot go online.
func (a *Agent) GoOnline() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.active {
		return errs.NewInvalidStateTransitionErrorWithCause("agent", a.status, Available, ErrAgentIsInactive)
	}
	if a.status != Offline {
		return errs.NewInvalidStateTransitionError("agent", a.status, Available)
	}
	return a.moveTo(Available)
}

// GoOffline ends a shift: AVAILABLE -> OFFLINE. A BUSY agent must finish its order first.
func (a *Agent) GoOffline() error {
	if err := a.Validate(); err != nil {
		return err
	}
	return a.moveTo(Offline)
}

func (a *Agent) moveTo(target Status) error {
	next, err := a.status.transitionTo(target)
	if err != nil {
		return err
	}
	a.status = next
	a.version++
	return nil
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Agent) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}

func (a *Agent) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, int64(math.MaxInt64))
	}
	return nil
}
