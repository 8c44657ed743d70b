package models

import "fmt"

// Priority is the urgency of a task
type Priority string

// Priority values
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority converts a wire value into a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q: must be one of High, Medium, Low", s)
	}
	return p, nil
}

// Status is the completion state of a task
type Status string

// Status values
const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusDone
}

// ParseStatus converts a wire value into a Status
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q: must be one of open, done", s)
	}
	return st, nil
}
