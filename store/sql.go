// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/who-pays/models"
)

// SQL implements Tally and Preferences on top of database/sql.
// Works with both the postgres and sqlite drivers.
type SQL struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db, now: time.Now}
}

func (s *SQL) List(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, count, created_at, updated_at
		FROM person
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, unavailable("list entries", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Count, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, unavailable("scan entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list entries", err)
	}

	return entries, nil
}

func (s *SQL) Insert(ctx context.Context, name string) (models.Entry, error) {
	// v7 IDs sort by creation time, which breaks created_at ties
	id, err := uuid.NewV7()
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to generate entry ID: %w", err)
	}

	now := s.now().UTC()
	entry := models.Entry{
		ID:        id.String(),
		Name:      name,
		Count:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO person (id, name, count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.Name, entry.Count, entry.CreatedAt, entry.UpdatedAt)
	if isUniqueViolation(err) {
		return models.Entry{}, ErrDuplicateName
	}
	if err != nil {
		return models.Entry{}, unavailable("insert entry", err)
	}

	return entry, nil
}

func (s *SQL) UpdateCount(ctx context.Context, name string, count int) error {
	if count < 0 {
		return ErrNegativeCount
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE person
		SET count = $1, updated_at = $2
		WHERE name = $3
	`, count, s.now().UTC(), name)
	if err != nil {
		return unavailable("update count", err)
	}

	return expectOneRow(res)
}

func (s *SQL) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM person WHERE name = $1`, name)
	if err != nil {
		return unavailable("delete entry", err)
	}

	return expectOneRow(res)
}

func (s *SQL) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT pref_value FROM preference
		WHERE session_id = $1 AND pref_key = $2
	`, sessionID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get preference", err)
	}

	return value, true, nil
}

func (s *SQL) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preference (session_id, pref_key, pref_value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, pref_key)
		DO UPDATE SET pref_value = excluded.pref_value, updated_at = excluded.updated_at
	`, sessionID, key, value, s.now().UTC())
	if err != nil {
		return unavailable("set preference", err)
	}

	return nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("rows affected", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// isUniqueViolation recognises unique constraint errors from either driver
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// modernc reports extended result codes; CHECK and NOT NULL failures
		// share the base SQLITE_CONSTRAINT code and must not match
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
