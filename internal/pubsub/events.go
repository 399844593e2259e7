// Package pubsub fans editor events out to interested listeners, most
// importantly the Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
	// ChangedEvent reports that a watched file was modified on disk.
	ChangedEvent EventType = "changed"
	// RemovedEvent reports that a watched file was removed or renamed away.
	RemovedEvent EventType = "removed"
	// SavedEvent reports that the editor wrote a file.
	SavedEvent EventType = "saved"
)

// Event is a single published occurrence.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
