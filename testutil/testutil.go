// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/who-pays/auth"
	"github.com/danielhkuo/who-pays/cliparse"
	"github.com/danielhkuo/who-pays/db"
	"github.com/danielhkuo/who-pays/store"
)

// TestSecret is the access secret GetTestConfig is built from
const TestSecret = "test-access-secret"

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a SQL store over a fresh test database
func SetupTestStore(t *testing.T) *store.SQL {
	t.Helper()
	return store.NewSQL(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  cliparse.DatabaseSQLite,
		AccessSecret:  TestSecret,
		ReferenceHash: auth.ReferenceHash(TestSecret),
		MutationRate:  1000,
		MutationBurst: 1000,
	}
}

// SeedEntries inserts names in order and sets each to the given count
func SeedEntries(t *testing.T, tally store.Tally, counts map[string]int, names ...string) {
	t.Helper()

	ctx := context.Background()
	for _, name := range names {
		if _, err := tally.Insert(ctx, name); err != nil {
			t.Fatalf("Failed to insert %s: %v", name, err)
		}
		if n := counts[name]; n > 0 {
			if err := tally.UpdateCount(ctx, name, n); err != nil {
				t.Fatalf("Failed to set count of %s: %v", name, err)
			}
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
