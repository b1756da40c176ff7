package commands

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// RetryPolicy decides what a process request does when the payment already
// reached REFUSED.
type RetryPolicy int

const (
	// RetryPolicyReject fails the request; a refused payment stays refused
	// and the caller must open a new payment attempt.
	RetryPolicyReject RetryPolicy = iota

	// RetryPolicyAllow returns the refused payment to PENDING and processes
	// it again.
	RetryPolicyAllow
)

// ParseRetryPolicy maps the configuration value to a policy,
// defaulting to reject.
func ParseRetryPolicy(value string) (RetryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "reject":
		return RetryPolicyReject, nil
	case "allow":
		return RetryPolicyAllow, nil
	default:
		return RetryPolicyReject, errs.NewValueIsInvalidError("paymentRetryPolicy")
	}
}
