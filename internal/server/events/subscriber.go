package events

// Subscriber is an interface for event consumers.
type Subscriber interface {
	// Send delivers an event to the subscriber. It must not block.
	Send(Event) error

	// Close shuts the subscriber down.
	Close() error
}
