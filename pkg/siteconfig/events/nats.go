package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// NATSSink publishes JSON-encoded events to NATS subjects.
type NATSSink struct {
	conn   *nats.Conn
	prefix string
}

// NATSOption configures a NATSSink.
type NATSOption func(*NATSSink)

// WithSubjectPrefix prepends prefix and a dot to every subject.
func WithSubjectPrefix(prefix string) NATSOption {
	return func(s *NATSSink) {
		s.prefix = prefix
	}
}

// NewNATSSink connects to url with automatic reconnection.
func NewNATSSink(url string, opts ...NATSOption) (*NATSSink, error) {
	nc, err := nats.Connect(url,
		nats.Name("simple-site"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return NewNATSSinkWithConn(nc, opts...), nil
}

// NewNATSSinkWithConn wraps an existing connection.
func NewNATSSinkWithConn(nc *nats.Conn, opts ...NATSOption) *NATSSink {
	s := &NATSSink{conn: nc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ siteconfig.EventSink = (*NATSSink)(nil)

func (s *NATSSink) ConfigCreated(ctx context.Context, record *siteconfig.Record) error {
	return s.publish(TopicConfigCreated, record)
}

func (s *NATSSink) ConfigUpdated(ctx context.Context, record *siteconfig.Record) error {
	return s.publish(TopicConfigUpdated, record)
}

func (s *NATSSink) publish(topic string, record *siteconfig.Record) error {
	data, err := json.Marshal(newEvent(topic, record))
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	subject := topic
	if s.prefix != "" {
		subject = s.prefix + "." + topic
	}
	if err := s.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (s *NATSSink) Close() error {
	if err := s.conn.Flush(); err != nil {
		s.conn.Close()
		return err
	}
	s.conn.Close()
	return nil
}
