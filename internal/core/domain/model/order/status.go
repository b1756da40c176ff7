package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with a validated edge set:
//
//	PENDING -> CONFIRMED -> PREPARING -> READY_FOR_PICKUP -> IN_TRANSIT -> DELIVERED
//	   └──────────┴───────────┴───────────────┴─────────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Any status write outside TransitionTo
// (or the administrative Override path on the aggregate) bypasses both
// validation and change notification and must not be used.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// The zero value helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a newly created order,
	// waiting for payment confirmation.
	StatusPending

	// StatusConfirmed indicates payment was resolved and the order is accepted.
	StatusConfirmed

	// StatusPreparing indicates the shipment is being prepared at the origin.
	StatusPreparing

	// StatusReadyForPickup indicates the shipment awaits the courier.
	StatusReadyForPickup

	// StatusInTransit indicates the courier is moving toward the destination.
	StatusInTransit

	// StatusDelivered indicates the shipment reached its destination. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was abandoned. Terminal, reachable
	// from any non-terminal status.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusPending:        "PENDING",
		StatusConfirmed:      "CONFIRMED",
		StatusPreparing:      "PREPARING",
		StatusReadyForPickup: "READY_FOR_PICKUP",
		StatusInTransit:      "IN_TRANSIT",
		StatusDelivered:      "DELIVERED",
		StatusCancelled:      "CANCELLED",
	}
}

// allowedTransitions is the sanctioned edge set. A missing entry means the
// status is terminal.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusConfirmed, StatusCancelled},
		StatusConfirmed:      {StatusPreparing, StatusCancelled},
		StatusPreparing:      {StatusReadyForPickup, StatusCancelled},
		StatusReadyForPickup: {StatusInTransit, StatusCancelled},
		StatusInTransit:      {StatusDelivered, StatusCancelled},
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the edge from s to next is sanctioned.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to next and returns the new status.
// Illegal edges are rejected with an InvalidTransitionError; administrative
// corrections go through Order.OverrideStatus instead.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(next) {
		return StatusUnknown, errs.NewInvalidTransitionError("order", s.String(), next.String())
	}
	return next, nil
}
