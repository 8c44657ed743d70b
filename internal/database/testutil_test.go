package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/todox/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// stepClock returns a strictly increasing time on every call
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{
		next: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

// setupTestRepo creates an in-memory database with migrations applied
func setupTestRepo(t *testing.T) (*Repository, *stepClock) {
	t.Helper()
	db, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	clock := newStepClock()
	return NewRepository(db, WithClock(clock.Now)), clock
}

// createTestUser inserts a user and returns it
func createTestUser(t *testing.T, repo *Repository, email string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), email, "$2a$04$hash-for-"+email)
	require.NoError(t, err)
	return user
}

// createTestTask inserts a task with sensible defaults
func createTestTask(t *testing.T, repo *Repository, ownerID, title string, labelIDs ...string) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), ownerID, models.TaskFields{
		Title:    title,
		Priority: models.PriorityMedium,
		Deadline: models.Date{Year: 2025, Month: time.July, Day: 1},
		LabelIDs: labelIDs,
	})
	require.NoError(t, err)
	return task
}
