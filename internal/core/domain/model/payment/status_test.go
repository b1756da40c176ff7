package payment_test

import (
	"testing"

	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("sanctioned_edges", func(t *testing.T) {
		edges := []struct {
			from payment.Status
			to   payment.Status
		}{
			{payment.StatusPending, payment.StatusProcessing},
			{payment.StatusProcessing, payment.StatusApproved},
			{payment.StatusProcessing, payment.StatusRefused},
			{payment.StatusProcessing, payment.StatusPending},
			{payment.StatusApproved, payment.StatusRefunded},
		}

		for _, edge := range edges {
			next, err := edge.from.TransitionTo(edge.to)
			require.NoError(t, err, "%s -> %s", edge.from, edge.to)
			assert.Equal(t, edge.to, next)
		}
	})

	t.Run("illegal_edges", func(t *testing.T) {
		cases := []struct {
			from payment.Status
			to   payment.Status
		}{
			{payment.StatusPending, payment.StatusApproved},
			{payment.StatusPending, payment.StatusRefused},
			{payment.StatusRefused, payment.StatusProcessing},
			{payment.StatusRefunded, payment.StatusApproved},
			{payment.StatusApproved, payment.StatusProcessing},
		}

		for _, tc := range cases {
			_, err := tc.from.TransitionTo(tc.to)
			require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		}
	})
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, payment.StatusApproved.IsResolved())
	assert.True(t, payment.StatusRefused.IsResolved())
	assert.True(t, payment.StatusRefunded.IsResolved())
	assert.False(t, payment.StatusPending.IsResolved())
	assert.False(t, payment.StatusProcessing.IsResolved())

	assert.True(t, payment.StatusRefused.IsTerminallyFailed())
	assert.False(t, payment.StatusRefunded.IsTerminallyFailed())
	assert.False(t, payment.StatusApproved.IsTerminallyFailed())
}

func TestStatusFromString(t *testing.T) {
	for _, s := range []payment.Status{
		payment.StatusPending,
		payment.StatusProcessing,
		payment.StatusApproved,
		payment.StatusRefused,
		payment.StatusRefunded,
	} {
		parsed, err := payment.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := payment.StatusFromString("SETTLED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMethodFromString(t *testing.T) {
	for _, m := range []payment.Method{
		payment.MethodCardCredit,
		payment.MethodCardDebit,
		payment.MethodPix,
		payment.MethodBoleto,
	} {
		parsed, err := payment.MethodFromString(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := payment.MethodFromString("CASH")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.True(t, payment.MethodPix.IsPix())
	assert.False(t, payment.MethodBoleto.IsPix())
}
