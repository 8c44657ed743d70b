package models

import "time"

// Label represents a tag that can be applied to tasks
// Labels are owner-specific: two owners may each have a label called "Work"
type Label struct {
	ID        string
	Name      string
	OwnerID   string // ID of the user this label belongs to
	CreatedAt time.Time
}
