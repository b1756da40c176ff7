// Package payment provides the Payment aggregate for the dispatch system.
//
// The package includes:
//   - Payment: the aggregate root owning settlement status, external
//     transaction id, and PIX charge artifacts
//   - Status: the settlement state machine
//   - Method: the supported collection methods
//
// Key business rules:
//   - PENDING -> PROCESSING -> {APPROVED | REFUSED}; REFUNDED from APPROVED
//   - PIX is special: after the gateway accepts the charge the payment
//     returns to PENDING; only a gateway confirmation advances it to APPROVED
//   - APPROVED always carries a processing timestamp
//   - gateway verdicts (ApplyConfirmation) and direct patches (ForceStatus)
//     are distinct paths from the edge-checked transitions
//
// Each order has at most one unresolved payment; that rule is enforced by the
// create-payment use case against the payment store.
package payment
