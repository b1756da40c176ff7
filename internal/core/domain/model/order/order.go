package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a point-to-point delivery request. It owns
// the lifecycle status, the origin/destination addresses, the monetary amount,
// the optional courier and route references, and the courier's last reported
// position.
//
// Invariants:
//   - id, description, origin, destination, and amount are always valid
//   - status transitions follow the sanctioned edge set (see Status)
//   - the position is either a complete coordinate pair with its report time,
//     or entirely absent (nil before the first location update)
//   - a newer stored position is never overwritten by a staler report
//
// The courier reference is weak: the order points at a courier but does not
// own it. Only NewOrder and RestoreOrder may produce instances.
type Order struct {
	id          kernel.UUID
	description string
	origin      string
	destination string
	amount      kernel.Money
	status      Status

	courierID *kernel.UUID
	routeID   *kernel.UUID

	position           *kernel.GeoPoint
	positionReportedAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a pending Order with validated fields.
//
// Parameters:
//   - id: unique identifier
//   - description: free-form summary of the shipment (required)
//   - origin, destination: pickup and delivery addresses (required)
//   - amount: order value, fixed-point with two places
//   - courierID, routeID: optional references; courier resolution against the
//     courier store is the caller's responsibility
//
// The order starts at StatusPending with no recorded position.
func NewOrder(
	id kernel.UUID,
	description string,
	origin string,
	destination string,
	amount kernel.Money,
	courierID *kernel.UUID,
	routeID *kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDescription(description),
		o.setAddresses(origin, destination),
		o.setAmount(amount),
		o.setCourierID(courierID),
		o.setRouteID(routeID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time rules. The stored status is trusted; position and its report
// time must be present together or absent together.
func RestoreOrder(
	id kernel.UUID,
	description string,
	origin string,
	destination string,
	amount kernel.Money,
	status Status,
	courierID *kernel.UUID,
	routeID *kernel.UUID,
	position *kernel.GeoPoint,
	positionReportedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDescription(description),
		o.setAddresses(origin, destination),
		o.setAmount(amount),
		o.setCourierID(courierID),
		o.setRouteID(routeID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if (position == nil) != (positionReportedAt == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("position",
			errors.New("coordinates and report time must be present together"))
	}
	if position != nil {
		if err := position.Validate(); err != nil {
			return nil, err
		}
		p := *position
		at := *positionReportedAt
		o.position = &p
		o.positionReportedAt = &at
	}

	return o, nil
}

// Validate ensures the Order was produced by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Description returns the shipment summary.
func (o *Order) Description() string {
	return o.description
}

// Origin returns the pickup address.
func (o *Order) Origin() string {
	return o.origin
}

// Destination returns the delivery address.
func (o *Order) Destination() string {
	return o.destination
}

// Amount returns the order value.
func (o *Order) Amount() kernel.Money {
	return o.amount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the referenced courier id, or nil when unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Route returns the opaque route reference, or nil.
func (o *Order) Route() *kernel.UUID {
	return o.routeID
}

// Position returns the last reported coordinates, nil before the first update.
func (o *Order) Position() *kernel.GeoPoint {
	return o.position
}

// PositionReportedAt returns the client timestamp of the stored position,
// nil before the first update.
func (o *Order) PositionReportedAt() *time.Time {
	return o.positionReportedAt
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order along a sanctioned edge of the status machine.
// Illegal edges are rejected with an InvalidTransitionError and leave the
// order untouched. Broadcasting the change is the caller's responsibility;
// this is the only non-administrative status write path.
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// OverrideStatus is the administrative escape hatch: it writes any defined
// status without consulting the edge set. Reserved for manual correction;
// regular flows go through ChangeStatus.
func (o *Order) OverrideStatus(next Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// MoveTo records a courier position report. Reports older than the stored one
// are rejected so an out-of-order arrival cannot overwrite newer coordinates;
// a report equal to the stored timestamp wins (last writer within the same
// instant).
func (o *Order) MoveTo(position kernel.GeoPoint, reportedAt time.Time, now time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	if o.positionReportedAt != nil && reportedAt.Before(*o.positionReportedAt) {
		return errs.NewValueIsInvalidErrorWithCause("location timestamp",
			fmt.Errorf("report at %s is older than stored report at %s",
				reportedAt.UTC().Format(time.RFC3339Nano),
				o.positionReportedAt.UTC().Format(time.RFC3339Nano)))
	}

	o.position = &position
	o.positionReportedAt = &reportedAt
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	o.description = description
	return nil
}

func (o *Order) setAddresses(origin, destination string) error {
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	o.origin = origin
	o.destination = destination
	return nil
}

func (o *Order) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	o.amount = amount
	return nil
}

func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	id := *courierID
	o.courierID = &id
	return nil
}

func (o *Order) setRouteID(routeID *kernel.UUID) error {
	if routeID == nil {
		return nil
	}
	if err := routeID.Validate(); err != nil {
		return err
	}
	id := *routeID
	o.routeID = &id
	return nil
}
