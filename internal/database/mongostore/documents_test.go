package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/todox/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, ok := objectID(oid.Hex())
	require.True(t, ok)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "not-hex", "0123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, ok := objectID(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestOwnedFilter(t *testing.T) {
	id, owner := primitive.NewObjectID(), primitive.NewObjectID()

	filter, ok := ownedFilter(id.Hex(), owner.Hex())
	require.True(t, ok)
	assert.Equal(t, bson.M{"_id": id, "owner_id": owner}, filter)

	_, ok = ownedFilter("bogus", owner.Hex())
	assert.False(t, ok)
	_, ok = ownedFilter(id.Hex(), "bogus")
	assert.False(t, ok)
}

func TestTaskDoc_Model(t *testing.T) {
	id, owner := primitive.NewObjectID(), primitive.NewObjectID()
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	task := (&taskDoc{
		ID:        id,
		Title:     "T",
		Priority:  "High",
		Deadline:  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    "done",
		OwnerID:   owner,
		CreatedAt: created,
		UpdatedAt: created,
	}).model()

	assert.Equal(t, id.Hex(), task.ID)
	assert.Equal(t, owner.Hex(), task.OwnerID)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, "2025-12-31", task.Deadline.String())
	assert.Equal(t, []string{}, task.LabelIDs, "missing label_ids decode as an empty set")
}

func TestUserDoc_Model(t *testing.T) {
	doc := userDoc{ID: primitive.NewObjectID(), Email: "a@x.com", PasswordHash: "h"}
	user := doc.model()
	assert.Equal(t, doc.ID.Hex(), user.ID)
	assert.Equal(t, "h", user.PasswordHash)
}

func TestPatchSet(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{"updated_at": now}, patchSet(models.TaskPatch{}, now))

	title := "new"
	status := models.StatusDone
	deadline := models.Date{Year: 2026, Month: time.May, Day: 4}
	labels := []string{"a", "a", "b"}
	set := patchSet(models.TaskPatch{
		Title:    &title,
		Status:   &status,
		Deadline: &deadline,
		LabelIDs: &labels,
	}, now)

	assert.Equal(t, bson.M{
		"updated_at": now,
		"title":      "new",
		"status":     "done",
		"deadline":   time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		"label_ids":  []string{"a", "b"},
	}, set)
}

func TestIndexes(t *testing.T) {
	idx := indexes()
	require.Len(t, idx[UsersCollection], 1)
	require.Len(t, idx[LabelsCollection], 1)
	require.Len(t, idx[TasksCollection], 2)

	assert.True(t, *idx[UsersCollection][0].Options.Unique)
	assert.True(t, *idx[LabelsCollection][0].Options.Unique)
	assert.Equal(t, bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}, idx[TasksCollection][1].Keys)
}
