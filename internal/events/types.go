package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventTaskCreated EventType = "task.created"
	EventTaskUpdated EventType = "task.updated"
	EventTaskDeleted EventType = "task.deleted"

	EventLabelCreated EventType = "label.created"
	EventLabelUpdated EventType = "label.updated"
	EventLabelDeleted EventType = "label.deleted"

	EventUserRegistered      EventType = "user.registered"
	EventUserPasswordChanged EventType = "user.password_changed"
)

// Event represents a committed change to one owner's data
type Event struct {
	Type       EventType
	OwnerID    string    // Which user's data was modified
	EntityID   string    // Task, label or user id
	Timestamp  time.Time // When the change committed
	SequenceID int64     // Monotonically increasing, assigned by the bus
}

// NewEvent stamps an event with the current time
func NewEvent(eventType EventType, ownerID, entityID string) Event {
	return Event{
		Type:      eventType,
		OwnerID:   ownerID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
