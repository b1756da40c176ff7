package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/payment"

	"github.com/stretchr/testify/require"
)

func testMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"two pizzas",
		"1 Origin St",
		"2 Destination Ave",
		testMoney(t, "42.50"),
		nil,
		nil,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func newTestPayment(t *testing.T, method payment.Method) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(
		kernel.NewUUID(),
		kernel.NewUUID(),
		testMoney(t, "42.50"),
		method,
		time.Now(),
	)
	require.NoError(t, err)
	return p
}

func newProcessingPayment(t *testing.T, method payment.Method) *payment.Payment {
	t.Helper()
	p := newTestPayment(t, method)
	require.NoError(t, p.MarkProcessing(time.Now()))
	return p
}

func newApprovedPayment(t *testing.T, method payment.Method) *payment.Payment {
	t.Helper()
	p := newProcessingPayment(t, method)
	require.NoError(t, p.Approve(time.Now()))
	return p
}

func newRefusedPayment(t *testing.T, method payment.Method) *payment.Payment {
	t.Helper()
	p := newProcessingPayment(t, method)
	require.NoError(t, p.Refuse(time.Now()))
	return p
}
