package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrRemoveExpiredOrdersCommandIsNotConstructed = errors.New(
	"RemoveExpiredOrdersCommand must be created via NewRemoveExpiredOrdersCommand constructor",
)

// RemoveExpiredOrdersCommand triggers one sweep of stale unpaid orders.
// The retention window is handler configuration, not command input.
type RemoveExpiredOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewRemoveExpiredOrdersCommand creates a sweep command.
func NewRemoveExpiredOrdersCommand() RemoveExpiredOrdersCommand {
	return RemoveExpiredOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RemoveExpiredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemoveExpiredOrdersCommandIsNotConstructed)
}
