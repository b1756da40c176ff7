// Package order provides the Order aggregate for the dispatch system.
//
// The package includes:
//   - Order: the aggregate root owning lifecycle status, addresses, amount,
//     courier/route references, and the last reported courier position
//   - Status: a state machine enforcing the sanctioned lifecycle edges
//
// Key business rules:
//   - Orders start at PENDING and advance along
//     PENDING -> CONFIRMED -> PREPARING -> READY_FOR_PICKUP -> IN_TRANSIT -> DELIVERED,
//     with CANCELLED reachable from any non-terminal state
//   - ChangeStatus is the only non-administrative status write path;
//     OverrideStatus exists for manual correction and skips edge validation
//   - A position report older than the stored one is rejected, so racing
//     location updates cannot roll coordinates back
//
// Confirmation gating against the payment state lives in the application
// layer, which consults the payment store before CONFIRMED is written.
package order
