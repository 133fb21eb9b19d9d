// Package kafka publishes classification events to a Kafka cluster.
package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// writerIface abstracts kafka.Writer so tests can substitute a fake.
type writerIface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer wraps a kafka.Writer with sensible defaults and close-once
// semantics. Topics are set per message, the writer itself is topic-less.
type Producer struct {
	writer writerIface
	log    logging.Logger
	closed atomic.Bool

	sent   atomic.Int64
	failed atomic.Int64
}

// NewProducer builds a producer from configuration.
func NewProducer(cfg *config.KafkaConfig, log logging.Logger) (*Producer, error) {
	if cfg == nil || len(cfg.Brokers) == 0 {
		return nil, errors.InvalidParam("kafka brokers are required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchSize:    batchSize,
		BatchTimeout: time.Second,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
		Async:        cfg.Async,
	}
	return &Producer{writer: w, log: log}, nil
}

func newProducer(w writerIface, log logging.Logger) *Producer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Producer{writer: w, log: log}
}

// Publish writes one message and records the outcome.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if p.closed.Load() {
		return errors.New(errors.ErrCodeMessaging, "producer closed")
	}
	if topic == "" {
		return errors.InvalidParam("topic is required")
	}
	if len(value) == 0 {
		return errors.InvalidParam("message value is required")
	}

	start := time.Now()
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  start,
	})
	if err != nil {
		p.failed.Add(1)
		return errors.Wrap(err, errors.ErrCodeMessaging, "publish failed").
			WithDetail("topic " + topic)
	}

	p.sent.Add(1)
	p.log.Debug("message published",
		logging.String("topic", topic),
		logging.Int64("latency_ms", time.Since(start).Milliseconds()))
	return nil
}

// Stats reports how many messages were sent and how many failed.
func (p *Producer) Stats() (sent, failed int64) {
	return p.sent.Load(), p.failed.Load()
}

// Close flushes and closes the underlying writer. Safe to call twice.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.log.Info("kafka producer closed", logging.Int64("sent", p.sent.Load()))
	return err
}
