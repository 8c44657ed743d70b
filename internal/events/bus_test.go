package events

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects delivered events
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) sink(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestBus_DeliversInSequenceOrder(t *testing.T) {
	rec := &recorder{}
	bus := NewBus(WithSink(rec.sink))

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.SendEvent(NewEvent(EventTaskCreated, "owner", "task")))
	}
	require.NoError(t, bus.Close())

	got := rec.snapshot()
	require.Len(t, got, 10)
	for i, event := range got {
		assert.Equal(t, int64(i+1), event.SequenceID)
		assert.Equal(t, EventTaskCreated, event.Type)
	}
}

func TestBus_FansOutToEverySink(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	bus := NewBus(WithSink(first.sink))
	bus.AddSink(second.sink)

	require.NoError(t, bus.SendEvent(NewEvent(EventLabelDeleted, "owner", "label")))
	require.NoError(t, bus.Close())

	assert.Len(t, first.snapshot(), 1)
	assert.Len(t, second.snapshot(), 1)
}

func TestBus_FullQueueDropsWithoutBlocking(t *testing.T) {
	release := make(chan struct{})
	bus := NewBus(WithQueueSize(1), WithSink(func(Event) { <-release }))

	// The first event is picked up by the delivery goroutine and blocks there,
	// so keep sending until the single buffer slot is taken.
	var sendErr error
	for i := 0; i < 100 && sendErr == nil; i++ {
		sendErr = bus.SendEvent(NewEvent(EventTaskUpdated, "owner", "task"))
	}
	assert.ErrorIs(t, sendErr, ErrQueueFull)
	assert.GreaterOrEqual(t, bus.Dropped(), int64(1))

	close(release)
	require.NoError(t, bus.Close())
}

func TestBus_SendAfterClose(t *testing.T) {
	bus := NewBus()
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	err := bus.SendEvent(NewEvent(EventTaskDeleted, "owner", "task"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBus_PanickingSinkDoesNotStopDelivery(t *testing.T) {
	rec := &recorder{}
	bus := NewBus(
		WithSink(func(Event) { panic("boom") }),
		WithSink(rec.sink),
	)

	require.NoError(t, bus.SendEvent(NewEvent(EventUserRegistered, "u", "u")))
	require.NoError(t, bus.SendEvent(NewEvent(EventUserPasswordChanged, "u", "u")))
	require.NoError(t, bus.Close())

	assert.Len(t, rec.snapshot(), 2)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogSink(logger)(Event{Type: EventTaskCreated, OwnerID: "o1", EntityID: "t1", SequenceID: 7})

	out := buf.String()
	assert.Contains(t, out, "event_type=task.created")
	assert.Contains(t, out, "owner_id=o1")
	assert.Contains(t, out, "sequence=7")
}

type failingPublisher struct {
	calls int
}

func (f *failingPublisher) SendEvent(Event) error {
	f.calls++
	return errors.New("simulated send failure")
}

func (f *failingPublisher) Close() error { return nil }

func TestPublish_NilPublisherIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Publish(nil, NewEvent(EventTaskCreated, "o", "t"))
	})
}

func TestPublish_SwallowsFailures(t *testing.T) {
	pub := &failingPublisher{}
	Publish(pub, NewEvent(EventTaskCreated, "o", "t"))
	assert.Equal(t, 1, pub.calls)
}
