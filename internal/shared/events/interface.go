package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event represents a workspace event travelling over the bus
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Source        string    `json:"source"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`

	Data any `json:"data"`
}

// NewEvent creates a new event with auto-generated ID and timestamp
func NewEvent(eventType, source string, data any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// WithCorrelation sets the correlation ID for request tracing
func (e Event) WithCorrelation(correlationID string) Event {
	e.CorrelationID = correlationID
	return e
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher publishes events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// EventBus defines the interface for event publishing and subscription
type EventBus interface {
	Publisher

	// Subscribe delivers events whose type matches pattern to handler until
	// ctx is cancelled.
	Subscribe(ctx context.Context, pattern string, consumerName string, handler Handler) error

	// Close closes the event bus connection
	Close()

	// Health checks the event bus connection
	Health() error
}

// Ensure Bus implements EventBus
var _ EventBus = (*Bus)(nil)

// Reader reads back stored events.
type Reader interface {
	Recent(ctx context.Context, eventType string, limit int) ([]Event, error)
}

var _ Reader = (*Bus)(nil)
