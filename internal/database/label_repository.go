package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/todox/internal/models"
)

// LabelRepo handles pure data access for labels
// No business logic, no events, no validation - just database operations
type LabelRepo struct {
	db  *sql.DB
	now func() time.Time
}

const labelColumns = `id, owner_id, name, created_at`

// Create inserts a label; the (owner_id, name) index rejects duplicates
func (r *LabelRepo) Create(ctx context.Context, ownerID, name string) (*models.Label, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	createdAt := toNanos(r.now())

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO labels (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)`,
		id, ownerID, name, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateLabel
		}
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return &models.Label{
		ID:        id,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: fromNanos(createdAt),
	}, nil
}

// GetByOwner retrieves all labels for an owner, ordered by name
func (r *LabelRepo) GetByOwner(ctx context.Context, ownerID string) ([]*models.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE owner_id = ? ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get labels for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	labels := []*models.Label{}
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// GetByID returns the label only if it belongs to ownerID
func (r *LabelRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Label, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	label, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label %s: %w", id, err)
	}
	return label, nil
}

// Update renames a label in a single statement and returns the new row
func (r *LabelRepo) Update(ctx context.Context, id, ownerID, name string) (*models.Label, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE labels SET name = ? WHERE id = ? AND owner_id = ?
		 RETURNING `+labelColumns,
		name, id, ownerID,
	)
	label, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateLabel
		}
		return nil, fmt.Errorf("failed to update label %s: %w", id, err)
	}
	return label, nil
}

// Delete removes a label and strips it from every task of the same owner.
// References go first so an interrupted cascade never leaves tasks pointing
// at a label that still looks alive.
func (r *LabelRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM labels WHERE id = ? AND owner_id = ?`, id, ownerID,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to look up label %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM task_labels
			 WHERE label_id = ?
			   AND task_id IN (SELECT id FROM tasks WHERE owner_id = ?)`,
			id, ownerID,
		); err != nil {
			return fmt.Errorf("failed to remove label %s from tasks: %w", id, err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM labels WHERE id = ? AND owner_id = ?`, id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to delete label %s: %w", id, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func scanLabel(row rowScanner) (*models.Label, error) {
	var (
		label     models.Label
		createdAt int64
	)
	if err := row.Scan(&label.ID, &label.OwnerID, &label.Name, &createdAt); err != nil {
		return nil, err
	}
	label.CreatedAt = fromNanos(createdAt)
	return &label, nil
}
