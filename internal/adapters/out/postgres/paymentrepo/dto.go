// Package paymentrepo implements payment persistence over GORM. Besides the
// usual repository operations it offers a compare-and-set update used to
// serialize concurrent processing of the same payment.
package paymentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO is the database row for a payment aggregate. Gateway artifacts
// stay NULL until a PIX charge is created.
type PaymentDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method        string          `gorm:"type:varchar(32);not null"`
	Status        string          `gorm:"type:varchar(32);not null;index"`
	TransactionID *string         `gorm:"type:text"`
	QRPayload     *string         `gorm:"type:text"`
	QRImageBase64 *string         `gorm:"type:text"`
	TicketURL     *string         `gorm:"type:text"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		Amount:        aggregate.Amount().Decimal(),
		Method:        aggregate.Method().String(),
		Status:        aggregate.Status().String(),
		TransactionID: aggregate.TransactionID(),
		QRPayload:     aggregate.QRPayload(),
		QRImageBase64: aggregate.QRImageBase64(),
		TicketURL:     aggregate.TicketURL(),
		ProcessedAt:   aggregate.ProcessedAt(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	method, err := payment.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		amount,
		method,
		status,
		dto.TransactionID,
		dto.QRPayload,
		dto.QRImageBase64,
		dto.TicketURL,
		dto.ProcessedAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
