// Package courier provides the Courier entity. Courier management (vehicles,
// shifts, routing) lives in a separate back-office system; the dispatch core
// only references couriers from orders and surfaces a summary to tracking
// clients, so the entity here is deliberately small.
package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrCourierIsNotConstructed is returned when a Courier instance was not
// created through NewCourier or RestoreCourier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")

// Courier is the delivery agent referenced, never owned, by orders.
type Courier struct {
	id        kernel.UUID
	name      string
	phone     string
	available bool
	createdAt time.Time

	isConstructed bool
}

// NewCourier creates an available Courier with validated fields.
func NewCourier(id kernel.UUID, name, phone string, now time.Time) (*Courier, error) {
	c := &Courier{
		available:     true,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistence.
func RestoreCourier(id kernel.UUID, name, phone string, available bool, createdAt time.Time) (*Courier, error) {
	c, err := NewCourier(id, name, phone, createdAt)
	if err != nil {
		return nil, err
	}
	c.available = available
	return c, nil
}

// Validate ensures the Courier was produced by a constructor.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact number.
func (c *Courier) Phone() string {
	return c.phone
}

// Available reports whether the courier accepts assignments.
func (c *Courier) Available() bool {
	return c.available
}

// CreatedAt returns the registration timestamp.
func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

// SetAvailable toggles assignment availability.
func (c *Courier) SetAvailable(available bool) {
	c.available = available
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}
