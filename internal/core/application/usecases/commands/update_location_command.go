package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand represents a courier position report for an order.
// ReportedAt is the client-side timestamp used to reject out-of-order
// arrivals; couriers without a clock source pass their send time.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	position   kernel.GeoPoint
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a validated location report command.
func NewUpdateLocationCommand(
	orderID kernel.UUID,
	latitude float64,
	longitude float64,
	reportedAt time.Time,
) (UpdateLocationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateLocationCommand{}, err
	}

	position, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return UpdateLocationCommand{}, err
	}

	return UpdateLocationCommand{
		orderID:    orderID,
		position:   position,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c UpdateLocationCommand) OrderID() kernel.UUID { return c.orderID }

// Position returns the reported coordinates.
func (c UpdateLocationCommand) Position() kernel.GeoPoint { return c.position }

// ReportedAt returns the client timestamp of the report.
func (c UpdateLocationCommand) ReportedAt() time.Time { return c.reportedAt }
