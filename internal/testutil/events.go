package testutil

import (
	"sync"

	"github.com/thenoetrevino/todox/internal/events"
)

// RecordingPublisher is an events.EventPublisher that keeps every event it is
// given, synchronously, so tests can assert on what a service emitted.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	closed bool

	// Err, when set, is returned from SendEvent after recording
	Err error
}

// NewRecordingPublisher creates an empty recorder
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// SendEvent records the event for later verification
func (p *RecordingPublisher) SendEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.Err
}

// Close marks the publisher closed
func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Closed reports whether Close has been called
func (p *RecordingPublisher) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Events returns a copy of everything recorded so far
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types returns the recorded event types in order
func (p *RecordingPublisher) Types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// Reset forgets all recorded events
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

var _ events.EventPublisher = (*RecordingPublisher)(nil)
