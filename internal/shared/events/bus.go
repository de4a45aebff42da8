package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medflow-ai/caseroom/internal/shared/config"
)

// Bus provides event publishing and subscription using KurrentDB
type Bus struct {
	client *esdb.Client
	prefix string
	log    zerolog.Logger
}

// NewBus creates a new event bus connected to KurrentDB
func NewBus(ctx context.Context, cfg config.KurrentDBConfig) (*Bus, error) {
	settings, err := esdb.ParseConnectionString(ConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	client, err := esdb.NewClient(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create KurrentDB client: %w", err)
	}

	prefix := cfg.StreamPrefix
	if prefix == "" {
		prefix = "caseroom"
	}

	bus := &Bus{
		client: client,
		prefix: prefix,
		log:    log.With().Str("component", "event-bus").Logger(),
	}

	if err := bus.Health(); err != nil {
		client.Close()
		return nil, err
	}

	return bus, nil
}

// ConnectionString creates the esdb:// connection string
func ConnectionString(cfg config.KurrentDBConfig) string {
	var auth string
	if cfg.Username != "" && cfg.Password != "" {
		auth = fmt.Sprintf("%s:%s@", cfg.Username, cfg.Password)
	}

	params := ""
	if cfg.Insecure {
		params = "?tls=false&tlsVerifyCert=false&keepAliveInterval=10000&keepAliveTimeout=10000"
	}

	return fmt.Sprintf("esdb://%s%s:%d%s", auth, cfg.Host, cfg.Port, params)
}

// StreamName maps an event type to its stream: alert.raised -> caseroom-alert-raised
func StreamName(prefix, eventType string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ReplaceAll(eventType, ".", "-"))
}

// Publish publishes an event to the bus
func (b *Bus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	eventID, err := uuid.Parse(event.ID)
	if err != nil {
		eventID = uuid.New()
	}

	esdbEvent := esdb.EventData{
		EventType:   event.Type,
		ContentType: esdb.ContentTypeJson,
		Data:        data,
		EventID:     eventID,
	}

	_, err = b.client.AppendToStream(ctx, StreamName(b.prefix, event.Type), esdb.AppendToStreamOptions{
		ExpectedRevision: esdb.Any{},
	}, esdbEvent)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe starts a catch-up subscription on $all filtered by event type.
// Only events appended after the call are delivered.
func (b *Bus) Subscribe(ctx context.Context, pattern string, consumerName string, handler Handler) error {
	sub, err := b.client.SubscribeToAll(ctx, esdb.SubscribeToAllOptions{
		From: esdb.End{},
		Filter: &esdb.SubscriptionFilter{
			Type:  esdb.EventFilterType,
			Regex: patternToRegex(pattern),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to pattern: %w", err)
	}

	go b.handleSubscription(ctx, sub, pattern, consumerName, handler)
	return nil
}

// handleSubscription processes events from a catch-up subscription
func (b *Bus) handleSubscription(ctx context.Context, sub *esdb.Subscription, pattern, consumerName string, handler Handler) {
	defer sub.Close()
	logger := b.log.With().Str("consumer", consumerName).Str("pattern", pattern).Logger()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		subEvent := sub.Recv()
		if subEvent.EventAppeared == nil {
			if subEvent.SubscriptionDropped != nil {
				logger.Warn().Err(subEvent.SubscriptionDropped.Error).Msg("subscription dropped")
				return
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}

		recorded := subEvent.EventAppeared.Event
		if recorded == nil {
			continue
		}

		// Skip system events
		if strings.HasPrefix(recorded.EventType, "$") || !matchesPattern(recorded.EventType, pattern) {
			continue
		}

		event, err := decodeRecorded(recorded.EventID.String(), recorded.Data)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to convert event")
			continue
		}

		if err := handler(ctx, event); err != nil {
			logger.Warn().Err(err).Str("event_id", event.ID).Msg("handler error")
		}
	}
}

// patternToRegex converts a simple wildcard pattern to regex
func patternToRegex(pattern string) string {
	if pattern == "*" || pattern == ">" {
		return ".*"
	}
	var sb strings.Builder
	sb.WriteByte('^')
	for _, c := range pattern {
		switch c {
		case '.':
			sb.WriteString(`\.`)
		case '*':
			sb.WriteString(".*")
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// matchesPattern checks if an event type matches a wildcard pattern:
// "alert.*" matches "alert.raised" and "alert.applied".
func matchesPattern(eventType, pattern string) bool {
	if pattern == "*" || pattern == ">" {
		return true
	}
	if eventType == "" {
		return false
	}

	patternParts := strings.Split(pattern, ".")
	typeParts := strings.Split(eventType, ".")

	for i, pp := range patternParts {
		if pp == "*" {
			return true
		}
		if i >= len(typeParts) || pp != typeParts[i] {
			return false
		}
	}

	return len(patternParts) == len(typeParts)
}

// decodeRecorded converts a stored payload back into an Event
func decodeRecorded(recordedID string, data []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.ID == "" {
		event.ID = recordedID
	}

	return event, nil
}

// Recent reads up to limit events of eventType, newest first. A stream that
// does not exist yet yields an empty slice.
func (b *Bus) Recent(ctx context.Context, eventType string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	stream, err := b.client.ReadStream(ctx, StreamName(b.prefix, eventType), esdb.ReadStreamOptions{
		Direction: esdb.Backwards,
		From:      esdb.End{},
	}, uint64(limit))
	if err != nil {
		if isStreamNotFound(err) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", eventType, err)
	}
	defer stream.Close()

	out := make([]Event, 0, limit)
	for {
		resolved, err := stream.Recv()
		if err != nil {
			if isStreamNotFound(err) || errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("failed to read %s: %w", eventType, err)
		}
		if resolved.Event == nil {
			continue
		}

		event, err := decodeRecorded(resolved.Event.EventID.String(), resolved.Event.Data)
		if err != nil {
			b.log.Warn().Err(err).Str("stream", resolved.Event.StreamID).Msg("skipping undecodable event")
			continue
		}
		out = append(out, event)
	}
}

// isStreamNotFound reports whether err is the client's not-found error,
// which is what reading a stream that was never written returns.
func isStreamNotFound(err error) bool {
	var coded interface{ Code() esdb.ErrorCode }
	return errors.As(err, &coded) && coded.Code() == esdb.ErrorCodeResourceNotFound
}

// Close closes the event bus connection
func (b *Bus) Close() {
	if b.client != nil {
		b.client.Close()
	}
}

// Health checks the KurrentDB connection
func (b *Bus) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := b.client.ReadStream(ctx, "$streams", esdb.ReadStreamOptions{
		From:      esdb.Start{},
		Direction: esdb.Forwards,
	}, 1)
	if err != nil {
		return fmt.Errorf("KurrentDB health check failed: %w", err)
	}
	defer stream.Close()

	return nil
}

// DecodeData re-decodes a generic event payload into out. Payloads read back
// from the store arrive as map[string]any.
func DecodeData(event Event, out any) error {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode event data: %w", err)
	}
	return nil
}
