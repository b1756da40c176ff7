package payment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the settlement state of a payment.
//
//	PENDING -> PROCESSING -> APPROVED -> REFUNDED
//	               ├───────> REFUSED
//	               └───────> PENDING   (PIX: charge created, money not moved)
//
// APPROVED with a recorded processing time, REFUSED, and REFUNDED are the
// resolved states; PENDING and PROCESSING are unresolved, and an order admits
// only one unresolved payment at a time.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the payment awaits processing, or, for PIX, the
	// charge exists and awaits the payer.
	StatusPending

	// StatusProcessing means a gateway interaction or delayed settlement is
	// in flight.
	StatusProcessing

	// StatusApproved means money moved. Implies a processing timestamp.
	StatusApproved

	// StatusRefused means the gateway rejected the payment.
	StatusRefused

	// StatusRefunded means an approved payment was returned to the payer.
	StatusRefunded
)

func getPaymentStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusPending:    "PENDING",
		StatusProcessing: "PROCESSING",
		StatusApproved:   "APPROVED",
		StatusRefused:    "REFUSED",
		StatusRefunded:   "REFUNDED",
	}
}

func allowedPaymentTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:    {StatusProcessing},
		StatusProcessing: {StatusApproved, StatusRefused, StatusPending},
		StatusApproved:   {StatusRefunded},
	}
}

// StatusFromString parses the wire representation of a payment status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks that the Status is one of the defined settlement states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsResolved reports whether the payment reached a settled outcome.
func (s Status) IsResolved() bool {
	return s == StatusApproved || s == StatusRefused || s == StatusRefunded
}

// IsTerminallyFailed reports whether the payment failed for good. An order
// must not confirm while its payment is in this state.
func (s Status) IsTerminallyFailed() bool {
	return s == StatusRefused
}

// CanTransitionTo reports whether the edge from s to next is sanctioned.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedPaymentTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to next and returns the new status.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(next) {
		return StatusUnknown, errs.NewInvalidTransitionError("payment", s.String(), next.String())
	}
	return next, nil
}
