// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Who Pays server.

Who Pays tracks a shared tally of who paid for what, draws the next person
to pay with a slowing random highlight, and shows the tally as a bar chart.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ACCESS_SECRET=... DATABASE_URL=file:who-pays.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -access-secret ...

For a throwaway instance:

	go run . -t memory -access-secret dev

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
    (not needed with -t memory)
  - ACCESS_SECRET (-access-secret) or ACCESS_HASH (-access-hash):
    the secret whose hash unlocks the page's add, decrement and remove controls

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default), postgres or memory
  - MUTATION_RATE / MUTATION_BURST: rate limit for changes (default 5/s, 10)
  - -env-file: dotenv file loaded before reading the environment

# Access

The access check only decides what the page shows. Every route stays open to
anyone who can reach the server; put it behind real authentication if that
matters.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (board, tally, session, draws)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, sessions, JSON helpers
  - models: Request/response types
  - auth: Credential hashing and the access check
  - draw: Draw state machine and engine
  - stream: WebSocket fan-out of draw highlights
  - chart: Bar chart view model
  - store: Tally and preference stores
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
