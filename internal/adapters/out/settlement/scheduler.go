// Package settlement provides the in-process timer that completes card and
// boleto payments after the configured delay.
package settlement

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// TimerScheduler implements ports.SettlementScheduler on time.AfterFunc.
// Each payment holds at most one armed timer; scheduling again replaces the
// previous one. Timers run on their own goroutine and never block shutdown.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[kernel.UUID]*time.Timer
}

// NewTimerScheduler creates an empty scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[kernel.UUID]*time.Timer),
	}
}

// Schedule arms fn to run after delay, replacing any pending timer for the
// same payment.
func (s *TimerScheduler) Schedule(paymentID kernel.UUID, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[paymentID]; ok {
		existing.Stop()
	}

	s.timers[paymentID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, paymentID)
		s.mu.Unlock()

		fn()
	})
}

// Cancel drops the pending timer for the payment. Reports whether a timer
// was stopped before firing.
func (s *TimerScheduler) Cancel(paymentID kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[paymentID]
	if !ok {
		return false
	}

	delete(s.timers, paymentID)
	return timer.Stop()
}
