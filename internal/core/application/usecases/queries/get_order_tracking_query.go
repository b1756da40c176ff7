// Package queries contains the read-side operations. Query handlers go
// straight to the database with raw SQL and return flat response structs;
// they never load aggregates or mutate state.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the tracking snapshot for one order: its
// lifecycle status, the last reported position, and the assigned courier.
type GetOrderTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a tracking snapshot query.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return GetOrderTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the order to snapshot.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID { return q.orderID }

// CourierSummary is the courier slice of a tracking snapshot.
type CourierSummary struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

// GetOrderTrackingQueryResponse is one order's tracking snapshot. Position
// fields are nil until the first location report; Courier is nil while the
// order is unassigned.
type GetOrderTrackingQueryResponse struct {
	OrderID    kernel.UUID
	Status     string
	Latitude   *float64
	Longitude  *float64
	ReportedAt *time.Time
	Courier    *CourierSummary
}
