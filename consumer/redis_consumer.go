package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// errorBackoff is the pause after a failed stream read, so a broken Redis
// connection does not spin the loop.
const errorBackoff = time.Second

// Event is one catalog event read off the stream.
type Event struct {
	MessageID string
	EventID   string
	EventType string
	Source    string
	CreatedAt time.Time
	Payload   json.RawMessage
	Metadata  map[string]string
}

// EventHandler processes a single event. A nil return acknowledges the
// message; an error leaves it pending for redelivery.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer reads catalog events from a Redis Stream consumer group.
type Consumer struct {
	client  *redis.Client
	config  Config
	handler EventHandler
	logger  *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewConsumer(config Config, handler EventHandler, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !config.Enabled {
		return &Consumer{config: config, logger: logger}, nil
	}

	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		client:  redis.NewClient(opts),
		config:  config,
		handler: handler,
		logger:  logger,
	}, nil
}

// Start ensures the consumer group exists and launches the read loop. The
// loop stops when ctx is cancelled or Stop is called.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.config.Enabled {
		c.logger.Info("consumer disabled, not starting")
		return nil
	}

	if err := c.ensureConsumerGroup(ctx); err != nil {
		return err
	}

	c.logger.Info("starting consumer",
		"stream", c.config.StreamKey,
		"group", c.config.GroupName,
		"consumer", c.config.ConsumerName,
	)

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.consumeLoop(ctx)
	return nil
}

// Stop cancels the read loop, waits for it to drain, and closes the client.
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	if c.client != nil {
		c.client.Close()
	}
}

// IsEnabled reports whether the consumer was configured to run.
func (c *Consumer) IsEnabled() bool {
	return c.config.Enabled
}

func (c *Consumer) ensureConsumerGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.StreamKey, c.config.GroupName, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer close(c.done)

	for {
		if ctx.Err() != nil {
			c.logger.Info("consumer stopping")
			return
		}

		if err := c.readAndProcess(ctx); err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping")
				return
			}
			c.logger.Error("stream read failed", "error", err)
			select {
			case <-time.After(errorBackoff):
			case <-ctx.Done():
			}
		}
	}
}

// readAndProcess blocks on one group read and dispatches each message.
// Messages the handler rejects stay pending; Redis redelivers them to a
// group member later.
func (c *Consumer) readAndProcess(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		Streams:  []string{c.config.StreamKey, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.BlockTimeout,
	}).Result()

	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			event := parseEvent(message)

			if err := c.handler.HandleEvent(ctx, event); err != nil {
				c.logger.Error("failed to process event",
					"message_id", message.ID,
					"event_type", event.EventType,
					"error", err,
				)
				continue
			}

			if err := c.client.XAck(ctx, c.config.StreamKey, c.config.GroupName, message.ID).Err(); err != nil {
				c.logger.Error("failed to acknowledge message",
					"message_id", message.ID,
					"error", err,
				)
			}
		}
	}

	return nil
}

func parseEvent(message redis.XMessage) Event {
	event := Event{
		MessageID: message.ID,
		EventID:   stringField(message, "event_id"),
		EventType: stringField(message, "event_type"),
		Source:    stringField(message, "source"),
		Metadata:  make(map[string]string),
	}

	if v := stringField(message, "created_at"); v != "" {
		event.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	if v := stringField(message, "payload"); v != "" {
		event.Payload = json.RawMessage(v)
	}
	if v := stringField(message, "metadata"); v != "" {
		_ = json.Unmarshal([]byte(v), &event.Metadata)
	}

	return event
}

func stringField(message redis.XMessage, key string) string {
	if v, ok := message.Values[key].(string); ok {
		return v
	}
	return ""
}
