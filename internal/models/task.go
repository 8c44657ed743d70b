package models

import "time"

// Task represents a single to-do item owned by one user
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Deadline    Date
	Status      Status
	LabelIDs    []string // Unordered set of label references
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFields carries the caller-supplied fields of a new task.
// Status defaults to StatusOpen and LabelIDs to an empty set when left zero.
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	Deadline    Date
	Status      Status
	LabelIDs    []string
}

// TaskPatch is a partial update. Nil fields are left untouched.
// A non-nil LabelIDs pointing at an empty slice clears the label set.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Deadline    *Date
	Status      *Status
	LabelIDs    *[]string
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Deadline == nil && p.Status == nil && p.LabelIDs == nil
}

// Apply merges the supplied fields into t
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.LabelIDs != nil {
		t.LabelIDs = UniqueIDs(*p.LabelIDs)
	}
}

// UniqueIDs drops duplicate and empty ids while keeping first-seen order.
// Never returns nil.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
