package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// MessageWriter is the subset of *kafka.Writer used by KafkaSink.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes events to a single Kafka topic keyed by slug, so every
// event for one site lands on the same partition in order.
type KafkaSink struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaSink creates a sink writing to topic on brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return NewKafkaSinkWithWriter(writer), nil
}

// NewKafkaSinkWithWriter wraps an existing writer.
func NewKafkaSinkWithWriter(w MessageWriter) *KafkaSink {
	return &KafkaSink{writer: w, timeout: 10 * time.Second}
}

var _ siteconfig.EventSink = (*KafkaSink)(nil)

func (s *KafkaSink) ConfigCreated(ctx context.Context, record *siteconfig.Record) error {
	return s.write(ctx, TopicConfigCreated, record)
}

func (s *KafkaSink) ConfigUpdated(ctx context.Context, record *siteconfig.Record) error {
	return s.write(ctx, TopicConfigUpdated, record)
}

func (s *KafkaSink) write(ctx context.Context, eventType string, record *siteconfig.Record) error {
	event := newEvent(eventType, record)
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(record.Slug),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing %s event for %s: %w", eventType, record.Slug, err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
