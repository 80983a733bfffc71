// Package events publishes site config lifecycle events to message brokers.
package events

import (
	"time"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// Event subjects / topics.
const (
	TopicConfigCreated = "siteconfig.created"
	TopicConfigUpdated = "siteconfig.updated"
)

// Event is the JSON payload published for every lifecycle change.
type Event struct {
	Type       string             `json:"type"`
	Slug       string             `json:"slug"`
	Record     *siteconfig.Record `json:"record"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func newEvent(topic string, record *siteconfig.Record) Event {
	return Event{
		Type:       topic,
		Slug:       record.Slug,
		Record:     record,
		OccurredAt: time.Now().UTC(),
	}
}
