package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/todox/internal/models"
)

// ============================================================================
// Task Operations
// ============================================================================

// TaskRepo handles pure data access for tasks. Every query except Create is
// filtered by both task id and owner id.
type TaskRepo struct {
	db  *sql.DB
	now func() time.Time
}

const taskColumns = `id, owner_id, title, description, priority, deadline, status, created_at, updated_at`

// Create inserts a task with status=open and an empty label set unless supplied
func (r *TaskRepo) Create(ctx context.Context, ownerID string, fields models.TaskFields) (*models.Task, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	now := fromNanos(toNanos(r.now()))

	task := &models.Task{
		ID:          id,
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    fields.Priority,
		Deadline:    fields.Deadline,
		Status:      fields.Status,
		LabelIDs:    models.UniqueIDs(fields.LabelIDs),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = models.StatusOpen
	}

	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (`+taskColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, task.OwnerID, task.Title, task.Description,
			string(task.Priority), task.Deadline.String(), string(task.Status),
			toNanos(task.CreatedAt), toNanos(task.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}
		return insertTaskLabels(ctx, tx, task.ID, task.LabelIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// GetByOwner retrieves all tasks for an owner, newest first.
// Ties on created_at fall back to insertion order (rowid).
func (r *TaskRepo) GetByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	byID := make(map[string]*models.Task)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
		byID[task.ID] = task
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	labelRows, err := r.db.QueryContext(ctx,
		`SELECT tl.task_id, tl.label_id
		 FROM task_labels tl
		 INNER JOIN tasks t ON t.id = tl.task_id
		 WHERE t.owner_id = ?
		 ORDER BY tl.task_id, tl.position`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get task labels for owner %s: %w", ownerID, err)
	}
	defer labelRows.Close()

	for labelRows.Next() {
		var taskID, labelID string
		if err := labelRows.Scan(&taskID, &labelID); err != nil {
			return nil, fmt.Errorf("failed to scan task label: %w", err)
		}
		if task, ok := byID[taskID]; ok {
			task.LabelIDs = append(task.LabelIDs, labelID)
		}
	}
	return tasks, labelRows.Err()
}

// GetByID returns the task only if it belongs to ownerID
func (r *TaskRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	task, err := getTask(ctx, r.db, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return task, nil
}

// Update merges the patch into the stored task inside one transaction
func (r *TaskRepo) Update(ctx context.Context, id, ownerID string, patch models.TaskPatch) (*models.Task, error) {
	var updated *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		task, err := getTask(ctx, tx, id, ownerID)
		if err != nil || task == nil {
			return err
		}

		patch.Apply(task)
		task.UpdatedAt = fromNanos(toNanos(r.now()))

		_, err = tx.ExecContext(ctx,
			`UPDATE tasks
			 SET title = ?, description = ?, priority = ?, deadline = ?, status = ?, updated_at = ?
			 WHERE id = ? AND owner_id = ?`,
			task.Title, task.Description, string(task.Priority), task.Deadline.String(),
			string(task.Status), toNanos(task.UpdatedAt),
			id, ownerID,
		)
		if err != nil {
			return err
		}

		if patch.LabelIDs != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM task_labels WHERE task_id = ?`, id); err != nil {
				return err
			}
			if err := insertTaskLabels(ctx, tx, id, task.LabelIDs); err != nil {
				return err
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a task (its label references cascade with it)
func (r *TaskRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// getTask loads one owner-scoped task with its labels; nil when absent
func getTask(ctx context.Context, q queryer, id, ownerID string) (*models.Task, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT label_id FROM task_labels WHERE task_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var labelID string
		if err := rows.Scan(&labelID); err != nil {
			return nil, err
		}
		task.LabelIDs = append(task.LabelIDs, labelID)
	}
	return task, rows.Err()
}

func insertTaskLabels(ctx context.Context, tx *sql.Tx, taskID string, labelIDs []string) error {
	for i, labelID := range labelIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO task_labels (task_id, label_id, position) VALUES (?, ?, ?)`,
			taskID, labelID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to attach label %s: %w", labelID, err)
		}
	}
	return nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task      models.Task
		priority  string
		deadline  string
		status    string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&task.ID, &task.OwnerID, &task.Title, &task.Description,
		&priority, &deadline, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d, err := models.ParseDate(deadline)
	if err != nil {
		return nil, fmt.Errorf("corrupt deadline for task %s: %w", task.ID, err)
	}
	task.Deadline = d
	task.Priority = models.Priority(priority)
	task.Status = models.Status(status)
	task.LabelIDs = []string{}
	task.CreatedAt = fromNanos(createdAt)
	task.UpdatedAt = fromNanos(updatedAt)
	return &task, nil
}
