package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpirationJob periodically removes abandoned orders. An order counts
// as abandoned when it is still PENDING past the retention window and no
// payment was ever attempted against it.
type OrderExpirationJob struct {
	handler  commands.RemoveExpiredOrdersCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpirationJob creates the reaper job running at the given interval.
func NewOrderExpirationJob(
	handler commands.RemoveExpiredOrdersCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *OrderExpirationJob {
	return &OrderExpirationJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "order_expiration_job"),
	}
}

// Start schedules the reaper. A failing run is logged and the schedule keeps
// going; the next tick retries.
func (j *OrderExpirationJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.sweep(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiration job started", "interval", j.interval)
	return nil
}

// sweep runs one expiration pass. Every run reports its count, including
// zero, so an operator can tell an idle sweep from a stalled one.
func (j *OrderExpirationJob) sweep(ctx context.Context) {
	cmd := commands.NewRemoveExpiredOrdersCommand()

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiration sweep failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Expired orders removed", "count", removed)
}

// Stop stops the reaper.
func (j *OrderExpirationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiration job stopped")
}
