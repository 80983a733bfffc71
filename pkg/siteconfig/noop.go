package siteconfig

import "context"

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// ConfigCreated does nothing and returns nil
func (n *NoopEventSink) ConfigCreated(ctx context.Context, record *Record) error {
	return nil
}

// ConfigUpdated does nothing and returns nil
func (n *NoopEventSink) ConfigUpdated(ctx context.Context, record *Record) error {
	return nil
}

// EventSinkFunc adapts a pair of functions to EventSink. Nil functions are skipped.
type EventSinkFunc struct {
	OnCreated func(ctx context.Context, record *Record) error
	OnUpdated func(ctx context.Context, record *Record) error
}

// ConfigCreated calls OnCreated
func (f EventSinkFunc) ConfigCreated(ctx context.Context, record *Record) error {
	if f.OnCreated == nil {
		return nil
	}
	return f.OnCreated(ctx, record)
}

// ConfigUpdated calls OnUpdated
func (f EventSinkFunc) ConfigUpdated(ctx context.Context, record *Record) error {
	if f.OnUpdated == nil {
		return nil
	}
	return f.OnUpdated(ctx, record)
}
