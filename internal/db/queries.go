package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/errors"
)

const selectColumns = `SELECT id, value, properties_json, created_at FROM strings`

// Insert stores a new entry. It fails with DUPLICATE_ENTRY if an entry with
// the same identifier already exists; the check and the write are one statement.
func Insert(ctx context.Context, db *sql.DB, e *analysis.Entry) error {
	props, err := json.Marshal(e.Properties)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO strings (id, value, properties_json, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query, e.ID, e.Value, string(props), e.CreatedAt.UnixMilli())
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewDuplicateEntry(e.ID)
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByID retrieves an entry by its identifier.
func GetByID(ctx context.Context, db *sql.DB, id string) (*analysis.Entry, error) {
	row := db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return e, nil
}

// ListAll returns every entry in insertion order.
func ListAll(ctx context.Context, db *sql.DB) ([]analysis.Entry, error) {
	rows, err := db.QueryContext(ctx, selectColumns+" ORDER BY rowid ASC")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	entries := make([]analysis.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return entries, nil
}

// Count returns the number of stored entries.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM strings").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// DeleteByID permanently removes an entry.
func DeleteByID(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, "DELETE FROM strings WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry scans a single row into an Entry.
func scanEntry(row rowScanner) (*analysis.Entry, error) {
	var (
		e         analysis.Entry
		propsJSON string
		createdAt int64
	)

	if err := row.Scan(&e.ID, &e.Value, &propsJSON, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(propsJSON), &e.Properties); err != nil {
		return nil, err
	}
	e.CreatedAt = time.UnixMilli(createdAt).UTC()

	return &e, nil
}
