// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists tally entries and per-session preferences.

# Tally

	entries, err := st.List(ctx)          // creation order
	entry, err := st.Insert(ctx, "Alice")  // count starts at 0
	err = st.UpdateCount(ctx, "Alice", 3)
	err = st.Delete(ctx, "Alice")

Every mutation is fire-and-refresh: callers call List again afterwards.

# Errors

  - ErrStoreUnavailable: transport or driver failure (wrapped, check with errors.Is)
  - ErrDuplicateName: Insert with an existing name
  - ErrNotFound: UpdateCount or Delete on a missing name
  - ErrNegativeCount: UpdateCount below zero, rejected before any I/O

# Implementations

  - SQL: database/sql, postgres (lib/pq) or sqlite (modernc.org/sqlite)
  - Memory: mutex-guarded slice and map, for development and tests

# Preferences

String key/value pairs per session ID. Values are stored exactly as given:

	err := st.Set(ctx, sessionID, models.PrefCredential, pasted)
	value, ok, err := st.Get(ctx, sessionID, models.PrefCredential)
*/
package store
