// Package ws is the realtime tracking surface. Clients hold one WebSocket
// connection, join rooms keyed by order id, and receive the events produced
// by location and status commands. Delivery is best-effort and at-most-once:
// events are fanned out only to the clients joined at publish time, a slow
// client's events are dropped rather than blocking the publisher, and there
// is no replay after reconnect.
package ws

import "time"

// Client-to-server message types.
const (
	MessageTypeJoinTracking   = "join_tracking"
	MessageTypeLeaveTracking  = "leave_tracking"
	MessageTypeUpdateLocation = "update_location"
	MessageTypeGetStatus      = "get_status"
)

// Server-to-client message types.
const (
	MessageTypeLocationUpdated  = "location_updated"
	MessageTypeLocationAccepted = "location_accepted"
	MessageTypeStatusChanged    = "status_changed"
	MessageTypeStatus           = "status"
	MessageTypeError            = "error"
)

// InboundMessage is the envelope for every client-to-server frame. Fields
// beyond Type and OrderID are set only for the message types that need them.
type InboundMessage struct {
	Type       string     `json:"type"`
	OrderID    string     `json:"order_id"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	ReportedAt *time.Time `json:"reported_at,omitempty"`
}

// CourierInfo is the courier summary carried in a status snapshot reply.
type CourierInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// OutboundMessage is the envelope for every server-to-client frame.
type OutboundMessage struct {
	Type       string       `json:"type"`
	OrderID    string       `json:"order_id,omitempty"`
	Status     string       `json:"status,omitempty"`
	Latitude   *float64     `json:"latitude,omitempty"`
	Longitude  *float64     `json:"longitude,omitempty"`
	Timestamp  *time.Time   `json:"timestamp,omitempty"`
	ReportedAt *time.Time   `json:"reported_at,omitempty"`
	Courier    *CourierInfo `json:"courier,omitempty"`
	Message    string       `json:"message,omitempty"`
}
