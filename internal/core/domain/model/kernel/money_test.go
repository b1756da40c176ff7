package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds_to_two_places", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(10.999))

		require.NoError(t, err)
		assert.Equal(t, "11.00", m.String())
	})

	t.Run("zero_amount_is_allowed", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.False(t, m.IsPositive())
	})

	t.Run("negative_amount_is_rejected", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromFloat(-0.01))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := kernel.MoneyFromString("150.00")

		require.NoError(t, err)
		assert.Equal(t, "150.00", m.String())
		assert.True(t, m.IsPositive())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("abc")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.MoneyFromString("150.00")
	b, _ := kernel.MoneyFromString("150.0")
	c, _ := kernel.MoneyFromString("150.01")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestMoney_Validate_ZeroValue(t *testing.T) {
	var m kernel.Money

	require.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
}
