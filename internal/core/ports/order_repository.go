package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Last writer wins; transitions that must not race use guarded updates.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	// Returns an ObjectNotFoundError naming the order when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order by id. Returns ObjectNotFoundError when no row
	// was deleted.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteExpiredUnpaid bulk-deletes orders that are still PENDING, were
	// created before the cutoff, and have no payment row at all. Returns the
	// number of deleted orders. Repeat runs find zero matches.
	DeleteExpiredUnpaid(ctx context.Context, cutoff time.Time) (int64, error)
}
