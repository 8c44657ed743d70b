// Package events delivers change notifications from the services to
// in-process sinks (the log and the server metrics).
package events

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	// ErrQueueFull is returned when the bus cannot accept another event
	ErrQueueFull = errors.New("event queue full")

	// ErrClosed is returned for events sent after Close
	ErrClosed = errors.New("event bus closed")
)

// DefaultQueueSize is the number of undelivered events the bus buffers
const DefaultQueueSize = 256

// Sink receives every delivered event, in sequence order
type Sink func(Event)

// Bus fans events out to its sinks on a single background goroutine.
// Sending never blocks: a full queue drops the event.
type Bus struct {
	mu     sync.RWMutex
	sinks  []Sink
	queue  chan Event
	closed bool

	sequence atomic.Int64
	dropped  atomic.Int64

	done chan struct{}
}

// BusOption configures a Bus
type BusOption func(*busConfig)

type busConfig struct {
	queueSize int
	sinks     []Sink
}

// WithQueueSize overrides DefaultQueueSize
func WithQueueSize(n int) BusOption {
	return func(cfg *busConfig) {
		if n > 0 {
			cfg.queueSize = n
		}
	}
}

// WithSink registers a sink at construction time
func WithSink(sink Sink) BusOption {
	return func(cfg *busConfig) {
		if sink != nil {
			cfg.sinks = append(cfg.sinks, sink)
		}
	}
}

// NewBus creates a bus and starts its delivery goroutine
func NewBus(opts ...BusOption) *Bus {
	cfg := busConfig{queueSize: DefaultQueueSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Bus{
		sinks: cfg.sinks,
		queue: make(chan Event, cfg.queueSize),
		done:  make(chan struct{}),
	}
	go b.run()
	return b
}

// AddSink registers another sink. Events already queued may reach it.
func (b *Bus) AddSink(sink Sink) {
	if sink == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

// SendEvent assigns the next sequence number and queues the event
func (b *Bus) SendEvent(event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	event.SequenceID = b.sequence.Add(1)
	select {
	case b.queue <- event:
		return nil
	default:
		b.dropped.Add(1)
		return ErrQueueFull
	}
}

// Dropped reports how many events were rejected because the queue was full
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close stops accepting events, delivers what is queued and waits for the
// delivery goroutine to exit. Safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()

	<-b.done
	return nil
}

func (b *Bus) run() {
	defer close(b.done)
	for event := range b.queue {
		b.deliver(event)
	}
}

func (b *Bus) deliver(event Event) {
	b.mu.RLock()
	sinks := b.sinks
	b.mu.RUnlock()

	for _, sink := range sinks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("event sink panicked",
						"event_type", event.Type,
						"sequence", event.SequenceID,
						"panic", r)
				}
			}()
			sink(event)
		}()
	}
}

// LogSink writes every event to logger at debug level
func LogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return func(event Event) {
		logger.Debug("change event",
			"event_type", event.Type,
			"owner_id", event.OwnerID,
			"entity_id", event.EntityID,
			"sequence", event.SequenceID)
	}
}
