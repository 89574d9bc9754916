// Package event provides a small synchronous pub/sub bus.
//
// The document publishes events when its occurrence marks or content change
// so dependent surfaces (the CLI, a future UI) can refresh. Delivery is
// synchronous on the publishing goroutine, matching the engine's
// single-threaded call-and-return model.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Topic identifies an event type.
type Topic string

// Topics published by the editor.
const (
	// TopicMarksCleared fires whenever the occurrence-mark set is cleared,
	// even when it was already empty.
	TopicMarksCleared Topic = "document.marks.cleared"

	// TopicMarkAdded fires for each occurrence mark added.
	TopicMarkAdded Topic = "document.marks.added"

	// TopicContentChanged fires after any buffer mutation.
	TopicContentChanged Topic = "document.content.changed"
)

// Event is a published notification. Events are immutable once created.
type Event struct {
	// Topic is the event type.
	Topic Topic

	// Payload contains topic-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with the given topic and payload.
func New(topic Topic, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
