package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)

	created, err := repo.CreateUser(ctx, "a@x.com", "$2a$04$abc")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	byEmail, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created, byEmail)

	byID, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)
}

func TestUserRepo_AbsentIsNil(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)

	u, err := repo.GetUserByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.GetUserByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)

	_, err := repo.CreateUser(ctx, "a@x.com", "h1")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "a@x.com", "h2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// Emails are compared exactly as stored
	_, err = repo.CreateUser(ctx, "A@x.com", "h3")
	assert.NoError(t, err)
}

func TestUserRepo_ConcurrentRegistrationsOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateUser(ctx, "race@x.com", "hash")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrDuplicateEmail):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestUserRepo_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)
	user := createTestUser(t, repo, "a@x.com")

	require.NoError(t, repo.UpdateUserPasswordHash(ctx, user.ID, "new-hash"))

	got, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.True(t, got.UpdatedAt.After(user.UpdatedAt))
	assert.Equal(t, user.CreatedAt, got.CreatedAt)
}
