// Package shared holds the event contracts the domain aggregates and
// the infrastructure dispatcher agree on.
package shared

import "time"

// DomainEvent is an event recorded by an aggregate during a state change.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// EventHandler reacts to a single dispatched event.
type EventHandler func(event DomainEvent) error

// EventDispatcher routes recorded events to the handlers registered for
// their event name.
type EventDispatcher interface {
	Dispatch(event DomainEvent) error
	Register(eventName string, handler EventHandler)
}
