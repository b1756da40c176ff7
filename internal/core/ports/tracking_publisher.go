package ports

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// LocationUpdatedEvent is broadcast to an order's room after a successful
// location update.
type LocationUpdatedEvent struct {
	OrderID   kernel.UUID
	Latitude  float64
	Longitude float64
	Status    string
	Timestamp time.Time
}

// StatusChangedEvent is broadcast to an order's room after a successful
// status transition.
type StatusChangedEvent struct {
	OrderID   kernel.UUID
	Status    string
	Timestamp time.Time
}

// TrackingPublisher fans events out to the clients subscribed to an order.
// Delivery is best-effort and at-most-once: publishing never blocks the
// caller, disconnected subscribers miss events, and there is no replay.
// Commands publish only after the state change is committed.
type TrackingPublisher interface {
	PublishLocationUpdated(event LocationUpdatedEvent)
	PublishStatusChanged(event StatusChangedEvent)
}
