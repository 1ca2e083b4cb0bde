// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() call %d error = %v", i+1, err)
		}
	}
}

func TestSchema_Constraints(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	now := time.Now()
	_, err = conn.Exec(`INSERT INTO person (id, name, count, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		"1", "Alice", 0, now, now)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// Duplicate name
	_, err = conn.Exec(`INSERT INTO person (id, name, count, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		"2", "Alice", 0, now, now)
	if err == nil {
		t.Error("expected unique violation for duplicate name")
	}

	// Negative count
	_, err = conn.Exec(`UPDATE person SET count = $1 WHERE name = $2`, -1, "Alice")
	if err == nil {
		t.Error("expected check violation for negative count")
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"who-pays.db", "who-pays.db?_pragma=busy_timeout(5000)"},
		{"file:who-pays.db?mode=rwc", "file:who-pays.db?mode=rwc&_pragma=busy_timeout(5000)"},
		{"file:x.db?_pragma=busy_timeout(100)", "file:x.db?_pragma=busy_timeout(100)"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := sqliteDSN(tt.url); got != tt.want {
				t.Errorf("sqliteDSN(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestOpen_FileDatabase(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}

	var timeout int
	if err := conn.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("PRAGMA busy_timeout error = %v", err)
	}
	if timeout != int(BusyTimeout.Milliseconds()) {
		t.Errorf("busy_timeout = %d, want %d", timeout, BusyTimeout.Milliseconds())
	}

	var mode string
	if err := conn.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode error = %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}
