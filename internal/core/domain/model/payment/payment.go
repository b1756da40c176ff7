package payment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment is the aggregate root for a monetary transaction tied to exactly
// one order. It owns the settlement status, the external gateway transaction
// id, and the PIX charge artifacts (QR payload, QR image, ticket URL).
//
// Invariants:
//   - the amount equals the order amount at creation (checked by the caller
//     against the order store) and is always a valid Money
//   - APPROVED implies a recorded processing time
//   - PIX artifacts appear only on PIX payments, and only after the gateway
//     accepted the charge
//   - edge-checked transitions go through MarkProcessing/Approve/Refuse/
//     Refund/ReturnToPending; ApplyConfirmation applies a gateway verdict,
//     and ForceStatus is the direct-patch path
type Payment struct {
	id      kernel.UUID
	orderID kernel.UUID
	amount  kernel.Money
	method  Method
	status  Status

	transactionID *string
	qrPayload     *string
	qrImageBase64 *string
	ticketURL     *string
	processedAt   *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPayment creates a pending Payment for the given order.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	now time.Time,
) (*Payment, error) {
	p := &Payment{
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setMethod(method),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a Payment from persistence. The stored status
// is trusted, but the "APPROVED implies processedAt" invariant is re-checked.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	status Status,
	transactionID *string,
	qrPayload *string,
	qrImageBase64 *string,
	ticketURL *string,
	processedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Payment, error) {
	p := &Payment{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setMethod(method),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	p.status = status

	if status == StatusApproved && processedAt == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("processedAt",
			errors.New("approved payment has no processing time"))
	}

	p.transactionID = cloneString(transactionID)
	p.qrPayload = cloneString(qrPayload)
	p.qrImageBase64 = cloneString(qrImageBase64)
	p.ticketURL = cloneString(ticketURL)
	p.processedAt = cloneTime(processedAt)

	return p, nil
}

// Validate ensures the Payment was produced by a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// IsEqual compares two payments by identifier.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the order this payment settles.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the payment amount.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Method returns the payment method.
func (p *Payment) Method() Method {
	return p.method
}

// Status returns the current settlement status.
func (p *Payment) Status() Status {
	return p.status
}

// TransactionID returns the external gateway transaction id, nil until the
// gateway accepted a charge.
func (p *Payment) TransactionID() *string {
	return p.transactionID
}

// QRPayload returns the PIX copy-and-paste payload, nil unless a PIX charge
// was created.
func (p *Payment) QRPayload() *string {
	return p.qrPayload
}

// QRImageBase64 returns the PIX QR image, nil unless a PIX charge was created.
func (p *Payment) QRImageBase64() *string {
	return p.qrImageBase64
}

// TicketURL returns the gateway's hosted charge page, nil unless set.
func (p *Payment) TicketURL() *string {
	return p.ticketURL
}

// ProcessedAt returns when the payment was approved, nil before approval.
func (p *Payment) ProcessedAt() *time.Time {
	return p.processedAt
}

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsResolved reports whether the payment reached a settled outcome.
func (p *Payment) IsResolved() bool {
	return p.status.IsResolved()
}

// MarkProcessing moves the payment into PROCESSING before a gateway call or
// a delayed settlement.
func (p *Payment) MarkProcessing(now time.Time) error {
	return p.transition(StatusProcessing, now)
}

// AttachPixCharge records a gateway-accepted PIX charge: the external
// transaction id plus the QR artifacts. The payment returns to PENDING:
// the charge exists but money has not moved until the payer acts.
func (p *Payment) AttachPixCharge(transactionID, qrPayload, qrImageBase64, ticketURL string, now time.Time) error {
	if !p.method.IsPix() {
		return errs.NewValueIsInvalidErrorWithCause("method",
			errors.New("pix charge attached to a non-pix payment"))
	}
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}
	if err := p.transition(StatusPending, now); err != nil {
		return err
	}

	p.transactionID = &transactionID
	p.qrPayload = &qrPayload
	p.qrImageBase64 = &qrImageBase64
	if ticketURL != "" {
		p.ticketURL = &ticketURL
	}
	return nil
}

// Approve settles the payment, stamping the processing time if not yet set.
func (p *Payment) Approve(now time.Time) error {
	if err := p.transition(StatusApproved, now); err != nil {
		return err
	}
	if p.processedAt == nil {
		at := now
		p.processedAt = &at
	}
	return nil
}

// Refuse marks the payment as terminally failed.
func (p *Payment) Refuse(now time.Time) error {
	return p.transition(StatusRefused, now)
}

// Refund returns an approved payment to the payer.
func (p *Payment) Refund(now time.Time) error {
	return p.transition(StatusRefunded, now)
}

// ApplyConfirmation applies a gateway verdict from a confirmation poll or
// callback. The gateway is authoritative for its own charge, so the verdict
// is not edge-checked: an approved PIX charge moves PENDING straight to
// APPROVED. Only the three verdict states are accepted.
func (p *Payment) ApplyConfirmation(verdict Status, now time.Time) error {
	switch verdict {
	case StatusApproved:
		if p.processedAt == nil {
			at := now
			p.processedAt = &at
		}
	case StatusRefused, StatusPending:
		// no artifact changes
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			errors.New(verdict.String()+" is not a gateway verdict"))
	}

	p.status = verdict
	p.updatedAt = now
	return nil
}

// ForceStatus writes any defined status without consulting the edge set.
// This is the direct-patch path; forcing APPROVED with no recorded processing
// time stamps it, modeling manual or test approval.
func (p *Payment) ForceStatus(next Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}

	p.status = next
	if next == StatusApproved && p.processedAt == nil {
		at := now
		p.processedAt = &at
	}
	p.updatedAt = now
	return nil
}

// SetAmount patches the payment amount.
func (p *Payment) SetAmount(amount kernel.Money, now time.Time) error {
	if err := p.setAmount(amount); err != nil {
		return err
	}
	p.updatedAt = now
	return nil
}

// SetMethod patches the payment method.
func (p *Payment) SetMethod(method Method, now time.Time) error {
	if err := p.setMethod(method); err != nil {
		return err
	}
	p.updatedAt = now
	return nil
}

// SetTransactionID patches the external transaction id.
func (p *Payment) SetTransactionID(transactionID string, now time.Time) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}
	p.transactionID = &transactionID
	p.updatedAt = now
	return nil
}

func (p *Payment) transition(next Status, now time.Time) error {
	newStatus, err := p.status.TransitionTo(next)
	if err != nil {
		return err
	}
	p.status = newStatus
	p.updatedAt = now
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	p.amount = amount
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
