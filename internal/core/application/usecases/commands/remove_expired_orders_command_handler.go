package commands

import (
	"context"
	"time"
)

// RemoveExpiredOrdersCommandHandler sweeps orders that are still PENDING
// after the retention window with no payment row at all. An order with any
// payment attempt, even a pending one, is never swept.
type RemoveExpiredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	retention  time.Duration
}

// NewRemoveExpiredOrdersCommandHandler creates a sweep handler with the
// given retention window.
func NewRemoveExpiredOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	retention time.Duration,
) RemoveExpiredOrdersCommandHandler {
	return RemoveExpiredOrdersCommandHandler{
		uowFactory: uowFactory,
		retention:  retention,
	}
}

// Handle bulk-deletes the stale unpaid orders and returns the count.
// A repeat run finds zero matches.
func (h *RemoveExpiredOrdersCommandHandler) Handle(ctx context.Context, cmd RemoveExpiredOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().Add(-h.retention)
	removed, err := uow.OrderRepository().DeleteExpiredUnpaid(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
