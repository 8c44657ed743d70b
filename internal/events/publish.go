package events

import "log/slog"

// Publish emits an event on a best-effort basis. A nil publisher is a no-op
// and a failed send is logged, never returned: the change it describes has
// already committed.
func Publish(publisher EventPublisher, event Event) {
	if publisher == nil {
		return
	}

	if err := publisher.SendEvent(event); err != nil {
		slog.Warn("event publish failed",
			"event_type", event.Type,
			"owner_id", event.OwnerID,
			"entity_id", event.EntityID,
			"error", err)
	}
}
