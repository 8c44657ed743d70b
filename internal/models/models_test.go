package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Date Tests
// ============================================================================

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 9}, d)
	assert.Equal(t, "2025-03-09", d.String())

	for _, bad := range []string{"", "2025-3-9", "2025-02-30", "2025-03-09T10:00:00Z", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Deadline Date `json:"deadline"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"deadline":"2024-12-31"}`), &payload))
	assert.Equal(t, Date{Year: 2024, Month: time.December, Day: 31}, payload.Deadline)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deadline":"2024-12-31"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"deadline":20241231}`), &payload))
}

func TestDate_TimeIsMidnightUTC(t *testing.T) {
	d := Date{Year: 2025, Month: time.January, Day: 2}
	tm := d.Time()
	assert.Equal(t, time.UTC, tm.Location())
	assert.Equal(t, 0, tm.Hour())
	assert.Equal(t, d, DateOf(tm))
	assert.True(t, Date{}.IsZero())
	assert.False(t, d.IsZero())
}

// ============================================================================
// Enum Tests
// ============================================================================

func TestParsePriority(t *testing.T) {
	for _, p := range []string{"High", "Medium", "Low"} {
		got, err := ParsePriority(p)
		require.NoError(t, err)
		assert.Equal(t, Priority(p), got)
	}
	_, err := ParsePriority("high")
	assert.Error(t, err)
	_, err = ParsePriority("")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("done")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, got)
	_, err = ParseStatus("closed")
	assert.Error(t, err)
}

// ============================================================================
// Task Patch Tests
// ============================================================================

func TestTaskPatch_ApplyLeavesAbsentFieldsUntouched(t *testing.T) {
	task := Task{
		Title:       "Write report",
		Description: "quarterly",
		Priority:    PriorityLow,
		Deadline:    Date{Year: 2025, Month: time.May, Day: 1},
		Status:      StatusOpen,
		LabelIDs:    []string{"a", "b"},
	}

	title := "Write final report"
	status := StatusDone
	TaskPatch{Title: &title, Status: &status}.Apply(&task)

	assert.Equal(t, "Write final report", task.Title)
	assert.Equal(t, StatusDone, task.Status)
	assert.Equal(t, "quarterly", task.Description)
	assert.Equal(t, PriorityLow, task.Priority)
	assert.Equal(t, []string{"a", "b"}, task.LabelIDs)
}

func TestTaskPatch_EmptyLabelSetClears(t *testing.T) {
	task := Task{LabelIDs: []string{"a"}}
	empty := []string{}
	TaskPatch{LabelIDs: &empty}.Apply(&task)
	assert.NotNil(t, task.LabelIDs)
	assert.Empty(t, task.LabelIDs)
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	p := PriorityHigh
	assert.False(t, TaskPatch{Priority: &p}.IsEmpty())
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, UniqueIDs([]string{"a", "b", "a", "", "c", "b"}))
	assert.NotNil(t, UniqueIDs(nil))
}

// ============================================================================
// User / Error Tests
// ============================================================================

func TestUser_PublicOmitsHash(t *testing.T) {
	u := &User{ID: "u1", Email: "a@x.com", PasswordHash: "$2a$12$secret"}
	pub := u.Public()
	assert.Equal(t, "u1", pub.ID)
	assert.Equal(t, "a@x.com", pub.Email)
	assert.NotContains(t, fmt.Sprintf("%+v", pub), "$2a$12$secret")
}

func TestValidationError_IsErrValidation(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError("title", "must be at most %d characters", MaxTaskTitleLength))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "create: title: must be at most 200 characters", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}
