// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Who Pays service.

# Handler Types

Each handler is a struct with its store and engine dependencies:

  - BoardHandler: The page and its JSON view model
  - TallyHandler: Add, adjust and remove tally entries
  - SessionHandler: Per-browser credential and dark mode
  - DrawHandler: Start draws, report engine state, stream highlights

Handlers are created via constructor functions:

	tallyHandler := handlers.NewTallyHandler(tally)

# Tally

Every mutation answers with the list as it stands afterwards, so the page
never renders a partial view:

	POST   /entries                  → AddEntry (trimmed, 409 on duplicate)
	POST   /entries/{name}/increment → Increment
	POST   /entries/{name}/decrement → Decrement (floored at 0)
	DELETE /entries/{name}           → DeleteEntry

A duplicate name is caught against the current list, so the store is never
asked to insert it.

# Access Gate

PUT /session/credential stores the raw request body as the session's
credential. The page's paste listener is the only caller. The session is
privileged when the credential hashes to the configured reference hash.

The gate decides which controls the page renders. It is not enforced on any
route and gives no real protection.

# Draws

	POST /draws {"mode": "uniform"|"minimum"} → StartDraw (202, 409 when busy)
	GET  /draws/current                       → CurrentDraw
	GET  /draws/stream                        → Stream (WebSocket)

While a draw runs the highlighted entry is resolved against the current list;
once it ends the final selection stays highlighted.

# Errors

Store failures are logged and reported as 503 with the tally untouched.
A missing entry is 404 so the page refreshes.
*/
package handlers
