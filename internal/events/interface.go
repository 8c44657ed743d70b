package events

// EventPublisher defines the interface for emitting change notifications.
// Services depend on this behavior rather than on the concrete Bus.
type EventPublisher interface {
	// SendEvent queues an event without blocking the caller
	SendEvent(event Event) error

	// Close drains pending events and stops delivery
	Close() error
}

// Compile-time verification that *Bus implements EventPublisher
var _ EventPublisher = (*Bus)(nil)
