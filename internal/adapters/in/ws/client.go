package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one WebSocket connection. The read pump dispatches inbound
// frames; the write pump drains the send buffer. When the buffer is full the
// frame is dropped, keeping a slow consumer from backing up the broker.
type Client struct {
	conn     *websocket.Conn
	broker   *Broker
	handlers Handlers
	logger   *slog.Logger
	send     chan OutboundMessage
}

// LocationUpdateHandler applies a courier position report.
type LocationUpdateHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateLocationCommand) error
}

// TrackingSnapshotHandler reads the catch-up snapshot for one order.
type TrackingSnapshotHandler interface {
	Handle(ctx context.Context, query queries.GetOrderTrackingQuery) (queries.GetOrderTrackingQueryResponse, error)
}

// Handlers bundles the use cases a tracking connection can invoke.
type Handlers struct {
	UpdateLocation   LocationUpdateHandler
	GetOrderTracking TrackingSnapshotHandler
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn, broker *Broker, handlers Handlers, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		broker:   broker,
		handlers: handlers,
		logger:   logger,
		send:     make(chan OutboundMessage, sendBuffer),
	}
}

// Enqueue hands a frame to the write pump without blocking. A full buffer
// drops the frame; tracking events are at-most-once.
func (c *Client) Enqueue(msg OutboundMessage) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Run services the connection until it closes, then detaches it from every
// room. LeaveAll must complete before the send channel closes: its write
// lock waits out in-flight broadcasts, so no publisher can reach the channel
// once it is closed.
func (c *Client) Run(ctx context.Context) {
	defer func() {
		c.broker.LeaveAll(c)
		close(c.send)
	}()

	go c.writePump()
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("tracking connection closed unexpectedly", "error", err)
			}
			return
		}

		var msg InboundMessage
		if err = json.Unmarshal(raw, &msg); err != nil {
			c.Enqueue(OutboundMessage{Type: MessageTypeError, Message: "malformed message"})
			continue
		}

		c.dispatch(ctx, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) dispatch(ctx context.Context, msg InboundMessage) {
	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		c.Enqueue(OutboundMessage{Type: MessageTypeError, Message: "invalid order_id"})
		return
	}

	switch msg.Type {
	case MessageTypeJoinTracking:
		c.broker.Join(orderID, c)
	case MessageTypeLeaveTracking:
		c.broker.Leave(orderID, c)
	case MessageTypeUpdateLocation:
		c.handleUpdateLocation(ctx, orderID, msg)
	case MessageTypeGetStatus:
		c.handleGetStatus(ctx, orderID)
	default:
		c.Enqueue(OutboundMessage{Type: MessageTypeError, Message: "unknown message type"})
	}
}

func (c *Client) handleUpdateLocation(ctx context.Context, orderID kernel.UUID, msg InboundMessage) {
	if msg.Latitude == nil || msg.Longitude == nil {
		c.Enqueue(OutboundMessage{Type: MessageTypeError, OrderID: msg.OrderID,
			Message: "latitude and longitude are required"})
		return
	}

	reportedAt := time.Now()
	if msg.ReportedAt != nil {
		reportedAt = *msg.ReportedAt
	}

	cmd, err := commands.NewUpdateLocationCommand(orderID, *msg.Latitude, *msg.Longitude, reportedAt)
	if err != nil {
		c.Enqueue(OutboundMessage{Type: MessageTypeError, OrderID: msg.OrderID, Message: err.Error()})
		return
	}

	if err = c.handlers.UpdateLocation.Handle(ctx, cmd); err != nil {
		c.Enqueue(OutboundMessage{Type: MessageTypeError, OrderID: msg.OrderID, Message: err.Error()})
		return
	}

	c.Enqueue(OutboundMessage{
		Type:       MessageTypeLocationAccepted,
		OrderID:    msg.OrderID,
		Latitude:   msg.Latitude,
		Longitude:  msg.Longitude,
		ReportedAt: &reportedAt,
	})
}

func (c *Client) handleGetStatus(ctx context.Context, orderID kernel.UUID) {
	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		c.Enqueue(OutboundMessage{Type: MessageTypeError, OrderID: orderID.String(), Message: err.Error()})
		return
	}

	snapshot, err := c.handlers.GetOrderTracking.Handle(ctx, query)
	if err != nil {
		c.Enqueue(OutboundMessage{Type: MessageTypeError, OrderID: orderID.String(), Message: err.Error()})
		return
	}

	out := OutboundMessage{
		Type:       MessageTypeStatus,
		OrderID:    snapshot.OrderID.String(),
		Status:     snapshot.Status,
		Latitude:   snapshot.Latitude,
		Longitude:  snapshot.Longitude,
		ReportedAt: snapshot.ReportedAt,
	}
	if snapshot.Courier != nil {
		out.Courier = &CourierInfo{
			ID:    snapshot.Courier.ID.String(),
			Name:  snapshot.Courier.Name,
			Phone: snapshot.Courier.Phone,
		}
	}
	c.Enqueue(out)
}
