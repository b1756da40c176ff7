package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests into tracking connections.
type Handler struct {
	broker   *Broker
	handlers Handlers
	logger   *slog.Logger
}

// NewHandler creates the tracking endpoint handler.
func NewHandler(broker *Broker, handlers Handlers, logger *slog.Logger) *Handler {
	return &Handler{
		broker:   broker,
		handlers: handlers,
		logger:   logger,
	}
}

// Serve handles GET /ws/tracking, servicing the connection until the client
// disconnects.
func (h *Handler) Serve(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return err
	}

	client := NewClient(conn, h.broker, h.handlers, h.logger)
	client.Run(ctx.Request().Context())

	return nil
}
