package order

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	PENDING ──> CONFIRMED ──> PROCESSING ──> PACKED ──> OUT_FOR_DELIVERY ──> DELIVERED ──> REFUNDED
//	   │            │              │            │
//	   └────────────┴──────────────┴────────────┴──> CANCELLED
//
// DELIVERED, CANCELLED and REFUNDED are terminal. DELIVERED -> REFUNDED is the single
// post-hoc exception; nothing leaves CANCELLED or REFUNDED.
type Status int

const (
	// Unknown is the zero value and never a legal state.
	Unknown Status = iota

	// Pending is the state of a freshly placed order waiting for a store.
	Pending

	// Confirmed means a store has been assigned; the order waits for a delivery agent.
	Confirmed

	// Processing means an agent has been assigned and the store is preparing the order.
	Processing

	// Packed means the order is ready for pickup by the agent.
	Packed

	// OutForDelivery means the agent has picked the order up.
	OutForDelivery

	// Delivered is terminal: the customer received the order.
	Delivered

	// Cancelled is terminal: the order will not be fulfilled.
	Cancelled

	// Refunded is terminal: a delivered order was refunded.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Confirmed:      "CONFIRMED",
		Processing:     "PROCESSING",
		Packed:         "PACKED",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Refunded:       "REFUNDED",
	}
}

// getTransitions is the single source of truth for the lifecycle graph.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // states without outgoing edges are omitted
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Processing, Cancelled},
		Processing:     {Packed, Cancelled},
		Packed:         {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered},
		Delivered:      {Refunded},
	}
}

// ParseStatus converts the wire/database name of a status ("OUT_FOR_DELIVERY") into a Status.
//
// Returns:
//   - Status: the matching status
//   - error: errs.ValueIsInvalidError when the name is unknown or "UNKNOWN"
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Values outside the enum print as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

// IsTerminal reports whether s is DELIVERED, CANCELLED or REFUNDED.
//
// Terminal states release the assigned agent. DELIVERED still accepts the REFUNDED transition.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// CanTransitionTo reports whether target is directly reachable from s.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(getTransitions()[s], target)
}

// TransitionTo validates the edge s -> target.
//
// Returns:
//   - (target, nil) when the edge exists in the lifecycle graph
//   - (Unknown, *errs.InvalidStateTransitionError) otherwise
//
// Example:
//
//	next, err := order.Delivered.TransitionTo(order.Cancelled)
//	// next == order.Unknown, errors.Is(err, errs.ErrInvalidStateTransition) == true
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateTransitionError("order", s, target)
	}
	return target, nil
}

// requiresStore reports whether an order in state s must carry a store assignment.
func (s Status) requiresStore() bool {
	return s == Confirmed || s == Processing || s == Packed || s == OutForDelivery || s == Delivered || s == Refunded
}

// requiresAgent reports whether an order in state s must carry an agent assignment.
func (s Status) requiresAgent() bool {
	return s == Processing || s == Packed || s == OutForDelivery || s == Delivered || s == Refunded
}
