package consumer

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestParseEvent(t *testing.T) {
	message := redis.XMessage{
		ID: "1700000000000-0",
		Values: map[string]interface{}{
			"event_id":   "evt-1",
			"event_type": "ServiceCreated",
			"source":     "catalog-service",
			"created_at": "2024-01-01T00:00:00Z",
			"payload":    `{"service_id":"42"}`,
			"metadata":   `{"trace_id":"abc"}`,
		},
	}

	event := parseEvent(message)

	if event.MessageID != "1700000000000-0" {
		t.Errorf("MessageID = %q", event.MessageID)
	}
	if event.EventType != "ServiceCreated" || event.Source != "catalog-service" {
		t.Errorf("event = %+v", event)
	}
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !event.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", event.CreatedAt, want)
	}
	if string(event.Payload) != `{"service_id":"42"}` {
		t.Errorf("Payload = %s", event.Payload)
	}
	if event.Metadata["trace_id"] != "abc" {
		t.Errorf("Metadata = %v", event.Metadata)
	}
}

func TestParseEventMissingFields(t *testing.T) {
	// Non-string or absent values fall back to zero values instead of
	// panicking on type assertions.
	event := parseEvent(redis.XMessage{
		ID:     "1-0",
		Values: map[string]interface{}{"event_type": 7},
	})

	if event.EventType != "" {
		t.Errorf("EventType = %q, want empty", event.EventType)
	}
	if !event.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero", event.CreatedAt)
	}
	if event.Payload != nil {
		t.Errorf("Payload = %s, want nil", event.Payload)
	}
}

func TestDisabledConsumerIsInert(t *testing.T) {
	cfg := DefaultConfig()

	c, err := NewConsumer(cfg, nil, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	if c.IsEnabled() {
		t.Error("IsEnabled() = true, want false")
	}
	if err := c.Start(context.Background()); err != nil {
		t.Errorf("Start() = %v, want nil", err)
	}
	// Stop on a consumer that never started a loop must not block or panic.
	c.Stop()
}
