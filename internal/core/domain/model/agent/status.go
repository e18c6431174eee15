package agent

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the availability of a delivery agent.
//
//	OFFLINE <──> AVAILABLE <──> BUSY
//
// Only AVAILABLE agents can be reserved for an order; a BUSY agent must be released
// (its order reached a terminal state) before going OFFLINE.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	// Available agents are on shift and free.
	Available
	// Busy agents hold exactly one non-terminal order.
	Busy
	// Offline agents are off shift.
	Offline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Available: "AVAILABLE",
		Busy:      "BUSY",
		Offline:   "OFFLINE",
	}
}

func getTransitions() map[Status]map[Status]bool {
	//nolint:exhaustive // Unknown has no outgoing edges
	return map[Status]map[Status]bool{
		Available: {Busy: true, Offline: true},
		Busy:      {Available: true},
		Offline:   {Available: true},
	}
}

// ParseStatus converts "AVAILABLE", "BUSY" or "OFFLINE" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid agent status", s))
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

// Validate rejects Unknown and values outside the enum.
func (s Status) Validate() error {
	if s != Available && s != Busy && s != Offline {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// transitionTo validates the edge s -> target.
func (s Status) transitionTo(target Status) (Status, error) {
	if !getTransitions()[s][target] {
		return Unknown, errs.NewInvalidStateTransitionError("agent", s, target)
	}
	return target, nil
}
