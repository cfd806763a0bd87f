package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	EventReservationCreated       = "reservation_created"
	EventReservationStatusChanged = "reservation_status_changed"
	EventRoomCreated              = "room_created"
	EventRoomUpdated              = "room_updated"
	EventRoomDeleted              = "room_deleted"

	// AllEvents subscribes a handler to every event type.
	AllEvents = "*"
)

// ReservationEventPayload is the reservation snapshot sent to consumers.
type ReservationEventPayload struct {
	ReservationID  string  `json:"reservation_id"`
	UserID         string  `json:"user_id"`
	RoomID         string  `json:"room_id"`
	RoomNumber     string  `json:"room_number,omitempty"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	Guests         int     `json:"guests"`
	GuestName      string  `json:"guest_name"`
	Status         string  `json:"status"`
	PreviousStatus string  `json:"previous_status,omitempty"`
	TotalPrice     float64 `json:"total_price"`
	ChangedBy      string  `json:"changed_by,omitempty"`
}

// RoomEventPayload describes catalog changes.
type RoomEventPayload struct {
	RoomID    string  `json:"room_id"`
	Number    string  `json:"number"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price_per_night,omitempty"`
	Available bool    `json:"available"`
	ChangedBy string  `json:"changed_by,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        string
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Decode unmarshals the payload into v.
func (e *Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	logger      *zerolog.Logger
}

// NewEventBus constructs an empty bus. Handler errors are logged with logger.
func NewEventBus(logger *zerolog.Logger) *EventBus {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &EventBus{subscribers: make(map[string][]EventHandler), logger: logger}
}

// Subscribe registers a handler for a given event type, or AllEvents.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type, then wildcard subscribers.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	handlers = append(handlers, b.subscribers[AllEvents]...)
	b.mu.RUnlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	// Handlers run synchronously; caller decides concurrency model.
	for _, handler := range handlers {
		if err := handler(event); err != nil {
			b.logger.Warn().Err(err).Str("event_type", event.Type).Str("event_id", event.ID).Msg("event handler failed")
		}
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
