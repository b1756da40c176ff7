package ws_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationHandler struct {
	mu   sync.Mutex
	cmds []commands.UpdateLocationCommand
	err  error
}

func (f *fakeLocationHandler) Handle(_ context.Context, cmd commands.UpdateLocationCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cmds = append(f.cmds, cmd)
	return f.err
}

type fakeSnapshotHandler struct {
	snapshot queries.GetOrderTrackingQueryResponse
	err      error
}

func (f *fakeSnapshotHandler) Handle(
	_ context.Context, _ queries.GetOrderTrackingQuery,
) (queries.GetOrderTrackingQueryResponse, error) {
	return f.snapshot, f.err
}

// startTrackingServer serves the tracking endpoint on a test HTTP server and
// returns the websocket URL to dial.
func startTrackingServer(t *testing.T, broker *ws.Broker, handlers ws.Handlers) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.GET("/ws/tracking", ws.NewHandler(broker, handlers, logger).Serve)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/tracking"
}

func dialTracking(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ws.OutboundMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame ws.OutboundMessage
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestClient_GetStatusRepliesWithCourierSummary(t *testing.T) {
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	lat, lng := -23.5505, -46.6333
	reportedAt := time.Now().UTC().Truncate(time.Second)

	snapshot := queries.GetOrderTrackingQueryResponse{
		OrderID:    orderID,
		Status:     "IN_TRANSIT",
		Latitude:   &lat,
		Longitude:  &lng,
		ReportedAt: &reportedAt,
		Courier: &queries.CourierSummary{
			ID:    courierID,
			Name:  "Ana",
			Phone: "+55 11 90000-0000",
		},
	}

	url := startTrackingServer(t, ws.NewBroker(), ws.Handlers{
		GetOrderTracking: &fakeSnapshotHandler{snapshot: snapshot},
	})
	conn := dialTracking(t, url)

	require.NoError(t, conn.WriteJSON(ws.InboundMessage{
		Type:    ws.MessageTypeGetStatus,
		OrderID: orderID.String(),
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, ws.MessageTypeStatus, frame.Type)
	assert.Equal(t, orderID.String(), frame.OrderID)
	assert.Equal(t, "IN_TRANSIT", frame.Status)
	require.NotNil(t, frame.Latitude)
	assert.InDelta(t, lat, *frame.Latitude, 1e-9)

	require.NotNil(t, frame.Courier)
	assert.Equal(t, courierID.String(), frame.Courier.ID)
	assert.Equal(t, "Ana", frame.Courier.Name)
	assert.Equal(t, "+55 11 90000-0000", frame.Courier.Phone)
}

func TestClient_GetStatusWithoutCourierOmitsSummary(t *testing.T) {
	orderID := kernel.NewUUID()

	url := startTrackingServer(t, ws.NewBroker(), ws.Handlers{
		GetOrderTracking: &fakeSnapshotHandler{snapshot: queries.GetOrderTrackingQueryResponse{
			OrderID: orderID,
			Status:  "PENDING",
		}},
	})
	conn := dialTracking(t, url)

	require.NoError(t, conn.WriteJSON(ws.InboundMessage{
		Type:    ws.MessageTypeGetStatus,
		OrderID: orderID.String(),
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, ws.MessageTypeStatus, frame.Type)
	assert.Nil(t, frame.Courier)
}

func TestClient_UpdateLocationAcknowledged(t *testing.T) {
	handler := &fakeLocationHandler{}
	orderID := kernel.NewUUID()
	lat, lng := -23.5505, -46.6333
	reportedAt := time.Now().UTC().Truncate(time.Second)

	url := startTrackingServer(t, ws.NewBroker(), ws.Handlers{UpdateLocation: handler})
	conn := dialTracking(t, url)

	require.NoError(t, conn.WriteJSON(ws.InboundMessage{
		Type:       ws.MessageTypeUpdateLocation,
		OrderID:    orderID.String(),
		Latitude:   &lat,
		Longitude:  &lng,
		ReportedAt: &reportedAt,
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, ws.MessageTypeLocationAccepted, frame.Type)
	assert.Equal(t, orderID.String(), frame.OrderID)
	require.NotNil(t, frame.Latitude)
	assert.InDelta(t, lat, *frame.Latitude, 1e-9)
	require.NotNil(t, frame.Longitude)
	assert.InDelta(t, lng, *frame.Longitude, 1e-9)
	require.NotNil(t, frame.ReportedAt)
	assert.True(t, frame.ReportedAt.Equal(reportedAt))

	handler.mu.Lock()
	defer handler.mu.Unlock()
	require.Len(t, handler.cmds, 1)
	assert.Equal(t, orderID, handler.cmds[0].OrderID())
}

func TestClient_UpdateLocationFailureRepliesError(t *testing.T) {
	orderID := kernel.NewUUID()
	lat, lng := -23.5505, -46.6333

	url := startTrackingServer(t, ws.NewBroker(), ws.Handlers{
		UpdateLocation: &fakeLocationHandler{
			err: errs.NewObjectNotFoundError("orderID", orderID.String()),
		},
	})
	conn := dialTracking(t, url)

	require.NoError(t, conn.WriteJSON(ws.InboundMessage{
		Type:      ws.MessageTypeUpdateLocation,
		OrderID:   orderID.String(),
		Latitude:  &lat,
		Longitude: &lng,
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, ws.MessageTypeError, frame.Type)
	assert.Equal(t, orderID.String(), frame.OrderID)
	assert.NotEmpty(t, frame.Message)
}

func TestClient_DisconnectChurnSurvivesBroadcasts(t *testing.T) {
	broker := ws.NewBroker()
	url := startTrackingServer(t, broker, ws.Handlers{})
	orderID := kernel.NewUUID()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				broker.PublishStatusChanged(ports.StatusChangedEvent{
					OrderID:   orderID,
					Status:    "CONFIRMED",
					Timestamp: time.Now(),
				})
			}
		}
	}()

	// joins race the publisher; a disconnect must never crash a broadcast
	for range 150 {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		require.NoError(t, conn.WriteJSON(ws.InboundMessage{
			Type:    ws.MessageTypeJoinTracking,
			OrderID: orderID.String(),
		}))
		require.NoError(t, conn.Close())
	}

	close(stop)
	wg.Wait()

	// connections detach asynchronously after close
	deadline := time.Now().Add(2 * time.Second)
	for broker.RoomSize(orderID) != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Zero(t, broker.RoomSize(orderID))
}
