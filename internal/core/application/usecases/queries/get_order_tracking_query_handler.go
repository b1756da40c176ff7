package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads a tracking snapshot straight from the
// database, joining the courier when one is assigned.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking snapshots.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle returns the snapshot, or an ObjectNotFoundError when the order does
// not exist.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.latitude,
			o.longitude,
			o.position_reported_at,
			c.id,
			c.name,
			c.phone
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
		return GetOrderTrackingQueryResponse{},
			errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	var (
		id          uuid.UUID
		status      string
		latitude    sql.NullFloat64
		longitude   sql.NullFloat64
		reportedAt  sql.NullTime
		courierID   uuid.NullUUID
		courierName sql.NullString
		phone       sql.NullString
	)

	if err = rows.Scan(
		&id, &status, &latitude, &longitude, &reportedAt,
		&courierID, &courierName, &phone,
	); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	resp := GetOrderTrackingQueryResponse{
		OrderID: orderID,
		Status:  status,
	}

	if latitude.Valid && longitude.Valid {
		lat, lng := latitude.Float64, longitude.Float64
		resp.Latitude = &lat
		resp.Longitude = &lng
	}
	if reportedAt.Valid {
		at := reportedAt.Time.UTC()
		resp.ReportedAt = &at
	}

	if courierID.Valid {
		summaryID, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return GetOrderTrackingQueryResponse{}, idErr
		}
		resp.Courier = &CourierSummary{
			ID:    summaryID,
			Name:  courierName.String,
			Phone: phone.String,
		}
	}

	if err = rows.Err(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	return resp, nil
}
