package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	amount := testMoney(t, "42.50")

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "two pizzas", "1 Origin St", "2 Destination Ave", amount, nil, nil,
		)
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "two pizzas", cmd.Description())
	})

	t.Run("empty description", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "", "1 Origin St", "2 Destination Ave", amount, nil, nil,
		)
		assert.Error(t, err)
	})

	t.Run("empty origin", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "two pizzas", "", "2 Destination Ave", amount, nil, nil,
		)
		assert.Error(t, err)
	})

	t.Run("empty destination", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "two pizzas", "1 Origin St", "", amount, nil, nil,
		)
		assert.Error(t, err)
	})

	t.Run("zero uuid", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, "two pizzas", "1 Origin St", "2 Destination Ave", amount, nil, nil,
		)
		assert.Error(t, err)
	})

	t.Run("default constructed command fails validation", func(t *testing.T) {
		assert.Error(t, commands.CreateOrderCommand{}.Validate())
	})
}
