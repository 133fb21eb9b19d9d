package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Topic names.
const (
	TopicPerceptionCompleted = "perception.completed"
)

// EventEnvelope is the wire shape shared by every event this service emits.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// PerceptionCompletedPayload describes one finished classification.
type PerceptionCompletedPayload struct {
	ResultID       string         `json:"result_id"`
	ContentHash    string         `json:"content_hash"`
	Name           string         `json:"name"`
	Formula        string         `json:"formula"`
	Mode           string         `json:"mode"`
	AtomCount      int            `json:"atom_count"`
	UnmatchedCount int            `json:"unmatched_count"`
	TypeCounts     map[string]int `json:"type_counts"`
	CompletedAt    time.Time      `json:"completed_at"`
}

// NewEventEnvelope wraps a payload in the standard envelope.
func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "v1",
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the envelope payload into target.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return errors.New(errors.ErrCodeSerialization, "envelope has no payload")
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode payload")
	}
	return nil
}

// EventPublisher emits perception events through a Producer.
type EventPublisher struct {
	producer *Producer
	topic    string
	log      logging.Logger
}

var _ app.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher builds the publisher. An empty topic falls back to the
// canonical perception.completed topic.
func NewEventPublisher(p *Producer, topic string, log logging.Logger) *EventPublisher {
	if topic == "" {
		topic = TopicPerceptionCompleted
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &EventPublisher{producer: p, topic: topic, log: log}
}

// PublishPerceptionCompleted announces one finished classification. Messages
// are keyed by content hash so replays of the same molecule land on the same
// partition.
func (ep *EventPublisher) PublishPerceptionCompleted(ctx context.Context, r *app.Result) error {
	if r == nil {
		return errors.InvalidParam("result is required")
	}

	env, err := NewEventEnvelope(TopicPerceptionCompleted, "atomsense", PerceptionCompletedPayload{
		ResultID:       string(r.ID),
		ContentHash:    r.ContentHash,
		Name:           r.Name,
		Formula:        r.Formula,
		Mode:           r.Mode,
		AtomCount:      len(r.Atoms),
		UnmatchedCount: r.UnmatchedCount,
		TypeCounts:     r.TypeCounts(),
		CompletedAt:    r.CreatedAt,
	})
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal envelope")
	}
	return ep.producer.Publish(ctx, ep.topic, []byte(r.ContentHash), value)
}
