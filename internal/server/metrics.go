package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/todox/internal/events"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal   atomic.Int64
	ClientErrors    atomic.Int64
	ServerErrors    atomic.Int64
	AuthFailures    atomic.Int64
	EventsPublished atomic.Int64
	InFlight        atomic.Int32
	StartTime       time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncRequestsTotal increments the handled requests counter
func (m *Metrics) IncRequestsTotal() {
	m.RequestsTotal.Add(1)
}

// IncEventsPublished increments the delivered change events counter
func (m *Metrics) IncEventsPublished() {
	m.EventsPublished.Add(1)
}

// RecordStatus classifies a finished response by its status code
func (m *Metrics) RecordStatus(status int) {
	switch {
	case status >= http.StatusInternalServerError:
		m.ServerErrors.Add(1)
	case status >= http.StatusBadRequest:
		m.ClientErrors.Add(1)
	}
	if status == http.StatusUnauthorized {
		m.AuthFailures.Add(1)
	}
}

// GetRequestsTotal returns the total requests handled
func (m *Metrics) GetRequestsTotal() int64 {
	return m.RequestsTotal.Load()
}

// GetClientErrors returns the number of 4xx responses
func (m *Metrics) GetClientErrors() int64 {
	return m.ClientErrors.Load()
}

// GetServerErrors returns the number of 5xx responses
func (m *Metrics) GetServerErrors() int64 {
	return m.ServerErrors.Load()
}

// GetAuthFailures returns the number of 401 responses
func (m *Metrics) GetAuthFailures() int64 {
	return m.AuthFailures.Load()
}

// GetEventsPublished returns the total change events delivered
func (m *Metrics) GetEventsPublished() int64 {
	return m.EventsPublished.Load()
}

// GetInFlight returns the number of requests currently being served
func (m *Metrics) GetInFlight() int32 {
	return m.InFlight.Load()
}

// GetUptime returns how long the server has been running
func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.StartTime)
}

// EventSink counts every event the bus delivers
func (m *Metrics) EventSink() events.Sink {
	return func(events.Event) {
		m.IncEventsPublished()
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal   int64     `json:"requests_total"`
	ClientErrors    int64     `json:"client_errors"`
	ServerErrors    int64     `json:"server_errors"`
	AuthFailures    int64     `json:"auth_failures"`
	EventsPublished int64     `json:"events_published"`
	InFlight        int32     `json:"in_flight"`
	StartedAt       time.Time `json:"started_at"`
	UptimeSeconds   int64     `json:"uptime_seconds"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:   m.GetRequestsTotal(),
		ClientErrors:    m.GetClientErrors(),
		ServerErrors:    m.GetServerErrors(),
		AuthFailures:    m.GetAuthFailures(),
		EventsPublished: m.GetEventsPublished(),
		InFlight:        m.GetInFlight(),
		StartedAt:       m.StartTime.UTC(),
		UptimeSeconds:   int64(m.GetUptime().Seconds()),
	}
}
