// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Two drivers are registered:

  - sqlite (modernc.org/sqlite, pure Go): the default, file or ":memory:"
  - postgres (github.com/lib/pq)

	conn, err := db.Open(db.TypeSQLite, "file:who-pays.db")

SQLite gets a single pooled connection, so concurrent writers queue inside
database/sql. Files run in WAL mode with a 5s busy timeout.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - person: tally entries (unique name, non-negative count, timestamps)
  - preference: per-session key/value pairs (credential, dark mode)
*/
package db
