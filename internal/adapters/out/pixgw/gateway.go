// Package pixgw is the HTTP adapter for the external payment provider. It
// speaks the provider's charge API over resty and normalizes its verdicts to
// the gateway strings the core understands.
package pixgw

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

type chargeRequestBody struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	PayerEmail  string `json:"payer_email,omitempty"`
	Method      string `json:"method"`
}

type chargeResponseBody struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	QRPayload     string `json:"qr_code"`
	QRImageBase64 string `json:"qr_code_base64"`
	TicketURL     string `json:"ticket_url"`
}

type statusResponseBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// RestyPaymentGateway implements ports.PaymentGateway against the provider's
// REST API. Every charge creation carries a fresh idempotency key so a retry
// after a network failure cannot double-charge.
type RestyPaymentGateway struct {
	client *resty.Client
	logger *slog.Logger
}

// NewRestyPaymentGateway creates a gateway adapter with a bounded timeout on
// every call.
func NewRestyPaymentGateway(baseURL string, timeout time.Duration, logger *slog.Logger) *RestyPaymentGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &RestyPaymentGateway{
		client: client,
		logger: logger,
	}
}

// CreatePixCharge registers a PIX charge with the provider.
func (g *RestyPaymentGateway) CreatePixCharge(
	ctx context.Context,
	req ports.PixChargeRequest,
) (ports.PixCharge, error) {
	body := chargeRequestBody{
		Amount:      req.Amount.String(),
		Description: req.Description,
		PayerEmail:  req.PayerEmail,
		Method:      "pix",
	}

	g.logger.Info("creating pix charge", "amount", body.Amount)

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", newIdempotencyKey()).
		SetBody(body).
		Post("/v1/charges")
	if err != nil {
		return ports.PixCharge{}, errs.NewGatewayError("create pix charge", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return ports.PixCharge{}, errs.NewGatewayError("create pix charge",
			fmt.Errorf("provider returned %s: %s", resp.Status(), resp.String()))
	}

	var parsed chargeResponseBody
	if err = json.Unmarshal(resp.Body(), &parsed); err != nil {
		return ports.PixCharge{}, errs.NewGatewayError("create pix charge", err)
	}

	g.logger.Info("pix charge created", "transactionID", parsed.ID, "status", parsed.Status)

	return ports.PixCharge{
		ExternalID:    parsed.ID,
		Status:        normalizeStatus(parsed.Status),
		QRPayload:     parsed.QRPayload,
		QRImageBase64: parsed.QRImageBase64,
		TicketURL:     parsed.TicketURL,
	}, nil
}

// GetPaymentStatus polls the provider for a charge's settlement status.
func (g *RestyPaymentGateway) GetPaymentStatus(
	ctx context.Context,
	externalID string,
) (ports.GatewayPaymentStatus, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		Get("/v1/charges/" + externalID)
	if err != nil {
		return ports.GatewayPaymentStatus{}, errs.NewGatewayError("get payment status", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return ports.GatewayPaymentStatus{}, errs.NewGatewayError("get payment status",
			fmt.Errorf("provider returned %s: %s", resp.Status(), resp.String()))
	}

	var parsed statusResponseBody
	if err = json.Unmarshal(resp.Body(), &parsed); err != nil {
		return ports.GatewayPaymentStatus{}, errs.NewGatewayError("get payment status", err)
	}

	return ports.GatewayPaymentStatus{
		ExternalID: parsed.ID,
		Status:     normalizeStatus(parsed.Status),
	}, nil
}

// normalizeStatus folds the provider's verdict vocabulary into the three
// gateway strings. Unknown verdicts map to pending, leaving the payment
// unresolved rather than guessing an outcome.
func normalizeStatus(providerStatus string) string {
	switch providerStatus {
	case "approved", "paid", "settled":
		return ports.GatewayStatusApproved
	case "rejected", "refused", "failed":
		return ports.GatewayStatusRejected
	default:
		return ports.GatewayStatusPending
	}
}

// newIdempotencyKey builds a unique key from the current time and random
// bytes. The provider deduplicates retried requests carrying the same key.
func newIdempotencyKey() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), hex.EncodeToString(buf))
}
