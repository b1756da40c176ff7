package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Gateway verdict strings as the adapter normalizes them.
const (
	GatewayStatusApproved = "approved"
	GatewayStatusRejected = "rejected"
	GatewayStatusPending  = "pending"
)

// PixChargeRequest carries the data for a PIX charge creation.
type PixChargeRequest struct {
	Amount      kernel.Money
	Description string
	PayerEmail  string
}

// PixCharge is the gateway's answer to a charge creation. The QR artifacts
// may be empty when the gateway omits them.
type PixCharge struct {
	ExternalID    string
	Status        string
	QRPayload     string
	QRImageBase64 string
	TicketURL     string
}

// GatewayPaymentStatus is the gateway's answer to a status poll.
type GatewayPaymentStatus struct {
	ExternalID string
	Status     string
}

// PaymentGateway is the boundary to the external (untrusted) payment
// provider. Every call carries a bounded timeout; failures come back as
// errs.GatewayError preserving the upstream message. The adapter generates a
// fresh idempotency key per charge-creation call.
type PaymentGateway interface {
	// CreatePixCharge registers a PIX charge and returns its artifacts.
	CreatePixCharge(ctx context.Context, req PixChargeRequest) (PixCharge, error)

	// GetPaymentStatus polls the gateway for the charge identified by the
	// external transaction id.
	GetPaymentStatus(ctx context.Context, externalID string) (GatewayPaymentStatus, error)
}
