package database

import (
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrDuplicateKey is the raw uniqueness conflict reported by the durable store
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDuplicateEmail means another user already has this email
	ErrDuplicateEmail = fmt.Errorf("email already exists: %w", ErrDuplicateKey)

	// ErrDuplicateLabel means the owner already has a label with this name
	ErrDuplicateLabel = fmt.Errorf("label name already exists for owner: %w", ErrDuplicateKey)
)

// isUniqueViolation reports whether err is a SQLite UNIQUE/PRIMARY KEY conflict
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
