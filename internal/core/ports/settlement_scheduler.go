package ports

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// SettlementScheduler owns the delayed completion of non-PIX payments. Each
// payment has at most one pending timer, keyed by payment id: scheduling
// again replaces the previous timer, and Cancel drops it. Cancellation is
// how a later explicit status change prevents a stale settlement from firing.
// Timers never block process shutdown.
type SettlementScheduler interface {
	// Schedule runs fn after delay unless cancelled or replaced first.
	Schedule(paymentID kernel.UUID, delay time.Duration, fn func())

	// Cancel drops the pending timer for the payment, if any.
	// Reports whether a timer was cancelled before firing.
	Cancel(paymentID kernel.UUID) bool
}
