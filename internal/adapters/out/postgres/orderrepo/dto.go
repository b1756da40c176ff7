// Package orderrepo implements order persistence over GORM, mapping the
// order aggregate to its relational representation and back.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row for an order aggregate. The lifecycle status
// is stored as its wire string so raw SQL stays readable; the position pair
// is nullable and written together with its report timestamp.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Description        string     `gorm:"type:text;not null"`
	Origin             string     `gorm:"type:text;not null"`
	Destination        string     `gorm:"type:text;not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status             string     `gorm:"type:varchar(32);not null;index"`
	CourierID          *uuid.UUID `gorm:"type:uuid;index"`
	RouteID            *uuid.UUID `gorm:"type:uuid"`
	Latitude           *float64
	Longitude          *float64
	PositionReportedAt *time.Time
	CreatedAt          time.Time `gorm:"not null;index"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		Description: aggregate.Description(),
		Origin:      aggregate.Origin(),
		Destination: aggregate.Destination(),
		Amount:      aggregate.Amount().Decimal(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}

	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		dto.CourierID = &raw
	}
	if id := aggregate.Route(); id != nil {
		raw := id.Bytes()
		dto.RouteID = &raw
	}
	if pos := aggregate.Position(); pos != nil {
		lat, lng := pos.Latitude(), pos.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
		dto.PositionReportedAt = aggregate.PositionReportedAt()
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &cID
	}

	var routeID *kernel.UUID
	if dto.RouteID != nil {
		rID, rErr := kernel.UUIDFromBytes((*dto.RouteID)[:])
		if rErr != nil {
			return nil, rErr
		}
		routeID = &rID
	}

	var position *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pErr != nil {
			return nil, pErr
		}
		position = &point
	}

	return order.RestoreOrder(
		id,
		dto.Description,
		dto.Origin,
		dto.Destination,
		amount,
		status,
		courierID,
		routeID,
		position,
		dto.PositionReportedAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
