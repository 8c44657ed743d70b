// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/thenoetrevino/todox/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind users created by CreateTestUser
const TestPassword = "correct-horse"

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo wraps SetupTestDB in a Repository driven by clock
func SetupTestRepo(t *testing.T, clock *Clock) *database.Repository {
	t.Helper()
	db := SetupTestDB(t)
	if clock == nil {
		return database.NewRepository(db)
	}
	return database.NewRepository(db, database.WithClock(clock.Now))
}

// CreateTestUser inserts a user whose password is TestPassword and returns its ID
func CreateTestUser(t *testing.T, repo *database.Repository, email string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	user, err := repo.CreateUser(context.Background(), email, string(hash))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user.ID
}

// CreateTestLabel creates a test label and returns its ID
func CreateTestLabel(t *testing.T, repo *database.Repository, ownerID, name string) string {
	t.Helper()
	label, err := repo.CreateLabel(context.Background(), ownerID, name)
	if err != nil {
		t.Fatalf("Failed to create test label: %v", err)
	}
	return label.ID
}

// Clock is a deterministic time source. Every call to Now advances it by Step.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewClock starts a clock at start that ticks one second per reading
func NewClock(start time.Time) *Clock {
	return &Clock{now: start, Step: time.Second}
}

// Now returns the current reading and advances the clock
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.Step)
	return now
}

// Advance moves the clock forward without producing a reading
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
