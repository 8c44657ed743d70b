package mongostore

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// These tests need a reachable MongoDB and run only when
// TODOX_TEST_MONGO_URI is set.
const mongoURIEnv = "TODOX_TEST_MONGO_URI"

var dbCounter atomic.Int64

func setupStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv(mongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set", mongoURIEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ticks atomic.Int64
	clock := func() time.Time { return base.Add(time.Duration(ticks.Add(1)) * time.Second) }

	name := fmt.Sprintf("todox_test_%d_%d", time.Now().UnixNano(), dbCounter.Add(1))
	store, err := Open(ctx, uri, name, WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = store.client.Database(name).Drop(ctx)
		_ = store.Close(ctx)
	})
	return store
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	user, err := store.CreateUser(ctx, "a@x.com", "hash")
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, "a@x.com", "hash")
	assert.ErrorIs(t, err, database.ErrDuplicateEmail)

	found, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, store.UpdateUserPasswordHash(ctx, user.ID, "new"))
	found, err = store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", found.PasswordHash)
	assert.True(t, found.UpdatedAt.After(found.CreatedAt))

	missing, err := store.GetUserByID(ctx, "not-an-object-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_LabelsAndCascade(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	alice, err := store.CreateUser(ctx, "alice@x.com", "h")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob@x.com", "h")
	require.NoError(t, err)

	work, err := store.CreateLabel(ctx, alice.ID, "Work")
	require.NoError(t, err)
	_, err = store.CreateLabel(ctx, alice.ID, "Work")
	assert.ErrorIs(t, err, database.ErrDuplicateLabel)
	_, err = store.CreateLabel(ctx, bob.ID, "Work")
	require.NoError(t, err)
	home, err := store.CreateLabel(ctx, alice.ID, "Home")
	require.NoError(t, err)

	labels, err := store.GetLabelsByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "Home", labels[0].Name)

	_, err = store.UpdateLabel(ctx, work.ID, alice.ID, "Home")
	assert.ErrorIs(t, err, database.ErrDuplicateLabel)

	hijack, err := store.UpdateLabel(ctx, work.ID, bob.ID, "Mine")
	require.NoError(t, err)
	assert.Nil(t, hijack)

	task, err := store.CreateTask(ctx, alice.ID, models.TaskFields{
		Title:    "T",
		Priority: models.PriorityLow,
		Deadline: models.Date{Year: 2025, Month: time.June, Day: 1},
		LabelIDs: []string{work.ID, home.ID},
	})
	require.NoError(t, err)

	deleted, err := store.DeleteLabel(ctx, work.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = store.DeleteLabel(ctx, work.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	after, err := store.GetTaskByID(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{home.ID}, after.LabelIDs)
	assert.Equal(t, "T", after.Title)
}

func TestStore_Tasks(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	alice, err := store.CreateUser(ctx, "alice@x.com", "h")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob@x.com", "h")
	require.NoError(t, err)

	var ids []string
	for _, title := range []string{"t1", "t2", "t3"} {
		task, err := store.CreateTask(ctx, alice.ID, models.TaskFields{
			Title:    title,
			Priority: models.PriorityMedium,
			Deadline: models.Date{Year: 2025, Month: time.June, Day: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusOpen, task.Status)
		ids = append(ids, task.ID)
	}

	tasks, err := store.GetTasksByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})

	done := models.StatusDone
	updated, err := store.UpdateTask(ctx, ids[0], alice.ID, models.TaskPatch{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, "t1", updated.Title)

	for _, id := range []string{ids[0], primitive.NewObjectID().Hex(), "garbage"} {
		got, err := store.GetTaskByID(ctx, id, bob.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		upd, err := store.UpdateTask(ctx, id, bob.ID, models.TaskPatch{Status: &done})
		require.NoError(t, err)
		assert.Nil(t, upd)

		del, err := store.DeleteTask(ctx, id, bob.ID)
		require.NoError(t, err)
		assert.False(t, del)
	}

	del, err := store.DeleteTask(ctx, ids[0], alice.ID)
	require.NoError(t, err)
	assert.True(t, del)
}
