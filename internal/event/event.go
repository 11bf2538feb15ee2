package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/linecore/internal/event/topic"
)

// Event is a single notification: its topic, a typed payload, and the
// metadata stamped on it at creation. Handlers receive it by value.
type Event[T any] struct {
	Type     topic.Topic
	Payload  T
	Metadata Metadata
}

// Metadata identifies one publication.
type Metadata struct {
	ID        string
	Timestamp time.Time
	// Source names the publisher, such as "engine" or "cli".
	Source string
}

// NewEvent stamps payload with a fresh ID and the current time.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	meta := Metadata{ID: uuid.NewString(), Timestamp: time.Now(), Source: source}
	return Event[T]{Type: t, Payload: payload, Metadata: meta}
}

// EventTopic lets the bus route an Event without knowing T.
func (e Event[T]) EventTopic() topic.Topic { return e.Type }

// EventMetadata returns e.Metadata without knowing T.
func (e Event[T]) EventMetadata() Metadata { return e.Metadata }

// TopicProvider is what Publish requires of an event value.
type TopicProvider interface {
	EventTopic() topic.Topic
}
