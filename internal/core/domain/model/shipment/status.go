package shipment

import (
	"errors"
	"fmt"

	"routex/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	NEW ──> ASSIGNED ──> IN_TRANSIT ──> DELIVERED
//	          │  ▲           │
//	          ▼  └───────────┘
//	         NEW      (backward moves allowed)
//
// DELIVERED is terminal: no transition leaves it. Transition checks always
// compare against the shipment's denormalized current status, not against the
// previous history row, so corrected or out-of-order history cannot skew them
// as long as the denormalized field is current.
type Status string

const (
	// StatusNew is the implicit initial state of every shipment.
	StatusNew Status = "NEW"

	// StatusAssigned means a driver has accepted the shipment.
	StatusAssigned Status = "ASSIGNED"

	// StatusInTransit means the driver is en route to the customer.
	StatusInTransit Status = "IN_TRANSIT"

	// StatusDelivered is the terminal state.
	StatusDelivered Status = "DELIVERED"
)

// ErrInvalidTransition indicates a status change that is not an edge of the
// transition table. Use errors.As with *InvalidTransitionError to read the
// allowed targets.
var ErrInvalidTransition = errors.New("invalid status transition")

// allowedTransitions is the directed edge set of the state machine.
// Absence of an edge means the transition is forbidden.
var allowedTransitions = map[Status][]Status{
	StatusNew:       {StatusAssigned},
	StatusAssigned:  {StatusInTransit, StatusNew},
	StatusInTransit: {StatusDelivered, StatusAssigned},
	StatusDelivered: {},
}

// ActiveStatuses are the in-progress states that make a driver "busy".
var ActiveStatuses = []Status{StatusAssigned, StatusInTransit}

// InvalidTransitionError reports a rejected transition with the targets that
// would have been legal from the current status.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s (allowed: %v)", ErrInvalidTransition, e.From, e.To, e.Allowed)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ParseStatus converts an external status string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the fixed enum values.
func (s Status) Validate() error {
	if _, ok := allowedTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	targets, ok := allowedTransitions[s]
	return ok && len(targets) == 0
}

// AllowedTargets returns the statuses reachable from this one in a fresh slice.
func (s Status) AllowedTargets() []Status {
	targets := allowedTransitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether (s -> next) is an edge of the transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, target := range allowedTransitions[s] {
		if target == next {
			return true
		}
	}
	return false
}

// ValidateTransition checks that (from -> to) is a legal edge.
// Both statuses must be valid enum values; an illegal edge yields an
// InvalidTransitionError naming the targets allowed from the current status.
func ValidateTransition(from, to Status) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{
			From:    from,
			To:      to,
			Allowed: from.AllowedTargets(),
		}
	}

	return nil
}
