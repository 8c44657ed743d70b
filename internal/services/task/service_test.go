package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/events"
	"github.com/thenoetrevino/todox/internal/models"
	"github.com/thenoetrevino/todox/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var deadline = models.Date{Year: 2025, Month: time.December, Day: 31}

func setupService(t *testing.T) (Service, *database.Repository, *testutil.RecordingPublisher) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	repo := testutil.SetupTestRepo(t, clock)
	pub := testutil.NewRecordingPublisher()
	return NewService(repo, pub), repo, pub
}

func createTask(t *testing.T, svc Service, ownerID, title string, labelIDs ...string) *models.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		OwnerID:  ownerID,
		Title:    title,
		Priority: models.PriorityMedium,
		Deadline: deadline,
		LabelIDs: labelIDs,
	})
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", title, err)
	}
	return task
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// TEST CASES
// ============================================================================

func TestCreateTask(t *testing.T) {
	t.Parallel()
	svc, repo, pub := setupService(t)
	ownerID := testutil.CreateTestUser(t, repo, "alice@x.com")

	task := createTask(t, svc, ownerID, "Write report")

	if task.Status != models.StatusOpen {
		t.Errorf("Expected status open, got %s", task.Status)
	}
	if task.LabelIDs == nil || len(task.LabelIDs) != 0 {
		t.Errorf("Expected empty label set, got %v", task.LabelIDs)
	}
	if task.Deadline != deadline {
		t.Errorf("Expected deadline %s, got %s", deadline, task.Deadline)
	}

	got := pub.Events()
	if len(got) != 1 || got[0].Type != events.EventTaskCreated || got[0].OwnerID != ownerID {
		t.Errorf("Expected one task.created event, got %+v", got)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	svc, repo, _ := setupService(t)
	ownerID := testutil.CreateTestUser(t, repo, "alice@x.com")

	base := CreateTaskRequest{OwnerID: ownerID, Title: "ok", Priority: models.PriorityLow, Deadline: deadline}

	tests := []struct {
		name   string
		mutate func(*CreateTaskRequest)
		want   error
	}{
		{"empty title", func(r *CreateTaskRequest) { r.Title = "" }, ErrEmptyTitle},
		{"title too long", func(r *CreateTaskRequest) { r.Title = strings.Repeat("t", 201) }, ErrTitleTooLong},
		{"bad priority", func(r *CreateTaskRequest) { r.Priority = "Urgent" }, ErrInvalidPriority},
		{"missing deadline", func(r *CreateTaskRequest) { r.Deadline = models.Date{} }, ErrMissingDeadline},
		{"bad status", func(r *CreateTaskRequest) { r.Status = "archived" }, ErrInvalidStatus},
		{"missing owner", func(r *CreateTaskRequest) { r.OwnerID = "" }, ErrEmptyOwnerID},
	}
	for _, tt := range tests {
		req := base
		tt.mutate(&req)
		_, err := svc.CreateTask(context.Background(), req)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	req := base
	req.Title = strings.Repeat("t", 200)
	if _, err := svc.CreateTask(context.Background(), req); err != nil {
		t.Errorf("Expected a 200 character title to be accepted, got %v", err)
	}
}

func TestListTasks_NewestFirst(t *testing.T) {
	t.Parallel()
	svc, repo, _ := setupService(t)
	ownerID := testutil.CreateTestUser(t, repo, "alice@x.com")

	t1 := createTask(t, svc, ownerID, "t1")
	t2 := createTask(t, svc, ownerID, "t2")
	t3 := createTask(t, svc, ownerID, "t3")

	tasks, err := svc.ListTasks(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{t3.ID, t2.ID, t1.ID} {
		if tasks[i].ID != want {
			t.Errorf("Expected task %d to be %s, got %s", i, want, tasks[i].ID)
		}
	}
}

func TestUpdateTask_Partial(t *testing.T) {
	t.Parallel()
	svc, repo, pub := setupService(t)
	ownerID := testutil.CreateTestUser(t, repo, "alice@x.com")
	task := createTask(t, svc, ownerID, "Original", "l1", "l2")
	pub.Reset()

	updated, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{
		ID:      task.ID,
		OwnerID: ownerID,
		Patch:   models.TaskPatch{Status: ptr(models.StatusDone)},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Status != models.StatusDone {
		t.Errorf("Expected status done, got %s", updated.Status)
	}
	if updated.Title != "Original" || updated.Priority != models.PriorityMedium || updated.Deadline != deadline {
		t.Errorf("Expected untouched fields to survive, got %+v", updated)
	}
	if len(updated.LabelIDs) != 2 {
		t.Errorf("Expected labels untouched, got %v", updated.LabelIDs)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Errorf("Expected updated_at to advance past %v, got %v", task.UpdatedAt, updated.UpdatedAt)
	}

	types := pub.Types()
	if len(types) != 1 || types[0] != events.EventTaskUpdated {
		t.Errorf("Expected one task.updated event, got %v", types)
	}
}

func TestUpdateTask_Validation(t *testing.T) {
	t.Parallel()
	svc, repo, _ := setupService(t)
	ownerID := testutil.CreateTestUser(t, repo, "alice@x.com")
	task := createTask(t, svc, ownerID, "Original")

	_, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{
		ID:      task.ID,
		OwnerID: ownerID,
		Patch:   models.TaskPatch{Title: ptr("")},
	})
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}

	_, err = svc.UpdateTask(context.Background(), UpdateTaskRequest{
		ID:      task.ID,
		OwnerID: ownerID,
		Patch:   models.TaskPatch{Priority: ptr(models.Priority("Critical"))},
	})
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}

func TestTask_OtherOwnerBehavesLikeMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo, _ := setupService(t)
	alice := testutil.CreateTestUser(t, repo, "alice@x.com")
	bob := testutil.CreateTestUser(t, repo, "bob@x.com")
	task := createTask(t, svc, alice, "Private")

	for _, id := range []string{task.ID, "no-such-task"} {
		if _, err := svc.GetTask(ctx, bob, id); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("GetTask(%s): expected ErrTaskNotFound, got %v", id, err)
		}
		_, err := svc.UpdateTask(ctx, UpdateTaskRequest{ID: id, OwnerID: bob, Patch: models.TaskPatch{Title: ptr("x")}})
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("UpdateTask(%s): expected ErrTaskNotFound, got %v", id, err)
		}
		if err := svc.DeleteTask(ctx, bob, id); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("DeleteTask(%s): expected ErrTaskNotFound, got %v", id, err)
		}
	}

	stored, err := svc.GetTask(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("Expected owner to still see the task, got %v", err)
	}
	if stored.Title != "Private" {
		t.Errorf("Expected title 'Private', got %q", stored.Title)
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	svc, repo, pub := setupService(t)
	ownerID := testutil.CreateTestUser(t, repo, "alice@x.com")
	task := createTask(t, svc, ownerID, "Doomed")
	pub.Reset()

	if err := svc.DeleteTask(context.Background(), ownerID, task.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.GetTask(context.Background(), ownerID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound after delete, got %v", err)
	}

	types := pub.Types()
	if len(types) != 1 || types[0] != events.EventTaskDeleted {
		t.Errorf("Expected one task.deleted event, got %v", types)
	}
}
