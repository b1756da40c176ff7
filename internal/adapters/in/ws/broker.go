package ws

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Subscriber receives outbound frames from the rooms it joined. Enqueue must
// not block; it reports false when the frame was dropped.
type Subscriber interface {
	Enqueue(msg OutboundMessage) bool
}

// Broker keeps one room per order and fans committed events out to the
// room's subscribers. It implements ports.TrackingPublisher; command
// handlers publish through it after their transaction commits.
//
// Rooms are open: joining requires only the order id, and joining an order
// that does not exist simply yields a silent room.
type Broker struct {
	mu    sync.RWMutex
	rooms map[kernel.UUID]map[Subscriber]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		rooms: make(map[kernel.UUID]map[Subscriber]struct{}),
	}
}

// Join adds the subscriber to the order's room, creating the room on first
// join. Joining twice is a no-op.
func (b *Broker) Join(orderID kernel.UUID, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms[orderID]
	if !ok {
		room = make(map[Subscriber]struct{})
		b.rooms[orderID] = room
	}
	room[sub] = struct{}{}
}

// Leave removes the subscriber from the order's room, dropping the room when
// it empties.
func (b *Broker) Leave(orderID kernel.UUID, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms[orderID]
	if !ok {
		return
	}

	delete(room, sub)
	if len(room) == 0 {
		delete(b.rooms, orderID)
	}
}

// LeaveAll removes the subscriber from every room, used when a connection
// closes.
func (b *Broker) LeaveAll(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for orderID, room := range b.rooms {
		delete(room, sub)
		if len(room) == 0 {
			delete(b.rooms, orderID)
		}
	}
}

// RoomSize reports the number of subscribers in the order's room.
func (b *Broker) RoomSize(orderID kernel.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.rooms[orderID])
}

// PublishLocationUpdated fans a committed location update out to the order's
// room.
func (b *Broker) PublishLocationUpdated(event ports.LocationUpdatedEvent) {
	lat, lng := event.Latitude, event.Longitude
	at := event.Timestamp

	b.broadcast(event.OrderID, OutboundMessage{
		Type:      MessageTypeLocationUpdated,
		OrderID:   event.OrderID.String(),
		Status:    event.Status,
		Latitude:  &lat,
		Longitude: &lng,
		Timestamp: &at,
	})
}

// PublishStatusChanged fans a committed status transition out to the order's
// room.
func (b *Broker) PublishStatusChanged(event ports.StatusChangedEvent) {
	at := event.Timestamp

	b.broadcast(event.OrderID, OutboundMessage{
		Type:      MessageTypeStatusChanged,
		OrderID:   event.OrderID.String(),
		Status:    event.Status,
		Timestamp: &at,
	})
}

func (b *Broker) broadcast(orderID kernel.UUID, msg OutboundMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.rooms[orderID] {
		sub.Enqueue(msg)
	}
}
