// Package audit publishes a record of every admin mutation that the backend
// accepted.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.vocdoni.io/dvote/log"
)

// Actions recorded by the console.
const (
	ActionVerifyCreator = "creator.verify"
	ActionVerifyBrand   = "brand.verify"
	ActionDeleteAccount = "account.delete"
	ActionVideoStatus   = "video.status"
	ActionPaymentDone   = "collaboration.payment_done"
)

// Event is one accepted admin mutation.
type Event struct {
	ID         string            `json:"id"`
	Action     string            `json:"action"`
	Admin      string            `json:"admin"`
	TargetID   string            `json:"targetId"`
	Attributes map[string]string `json:"attributes,omitempty"`
	At         time.Time         `json:"at"`
}

// NewEvent returns an event with a fresh id and timestamp.
func NewEvent(action, admin, targetID string, attrs map[string]string) Event {
	return Event{
		ID:         uuid.NewString(),
		Action:     action,
		Admin:      admin,
		TargetID:   targetID,
		Attributes: attrs,
		At:         time.Now().UTC(),
	}
}

// Publisher records events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// KafkaPublisher writes events as JSON to a Kafka topic, keyed by target id
// so every event about one record lands on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is not defined")
	}
	log.Infow("audit events enabled", "brokers", brokers, "topic", topic)
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.TargetID),
		Value: value,
		Time:  e.At,
	})
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Recorder keeps events in memory. Tests use it to check what was published.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
