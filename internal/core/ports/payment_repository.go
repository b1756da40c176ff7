package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// Add persists a new payment aggregate.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment aggregate,
	// last writer wins.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// UpdateIfStatus persists the aggregate only while the stored row still
	// carries expected (compare-and-set on status). A lost race returns
	// ErrPaymentModifiedConcurrently from the implementation so two
	// interleaved process calls cannot both advance the same payment.
	UpdateIfStatus(ctx context.Context, aggregate *payment.Payment, expected payment.Status) error

	// Get retrieves a payment by its unique identifier.
	// Returns an ObjectNotFoundError naming the payment when missing.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetUnresolvedByOrder retrieves the order's PENDING or PROCESSING
	// payment, if any. Used to enforce the one-unresolved-payment rule.
	// Returns nil without error when the order has no unresolved payment.
	GetUnresolvedByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// GetLatestByOrder retrieves the order's most recent payment, or nil
	// without error when the order has none. Used to gate order confirmation
	// on the payment outcome.
	GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
