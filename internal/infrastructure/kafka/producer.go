package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types published on the activity topic
const (
	EventBabyCreated = "baby.created"
	EventBabyDeleted = "baby.deleted"
	EventNapStarted  = "nap.started"
	EventNapEnded    = "nap.ended"
	EventNapLogged   = "nap.logged"
	EventFeedLogged  = "feed.logged"
	EventDayRated    = "day.rated"
)

// ActivityEvent is the JSON payload published after a successful mutation
type ActivityEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	BabyID     uuid.UUID `json:"baby_id"`
	EntityID   uuid.UUID `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer publishes activity events to Kafka
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a new activity event producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true, // Async for better performance
	}

	return &Producer{
		writer: writer,
	}
}

// PublishActivity publishes one activity event, keyed by baby id so that
// events for a baby stay ordered within a partition
func (p *Producer) PublishActivity(ctx context.Context, event ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.BabyID.String()),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NewEventID creates an event ID
func NewEventID() string {
	return uuid.New().String()
}
