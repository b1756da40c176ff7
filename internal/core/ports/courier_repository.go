package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier entities.
// Courier management is an external concern; the dispatch core only needs to
// register couriers and resolve references from orders.
type CourierRepository interface {
	// Add persists a new courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by id.
	// Returns an ObjectNotFoundError naming the courier when missing.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
}
