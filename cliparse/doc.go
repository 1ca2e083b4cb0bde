// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres or memory
  - DatabaseURL: connection string (required unless memory)
  - ReferenceHash: SHA-256 hex the session credential must hash to
  - MutationRate / MutationBurst: rate limit for mutating routes (default 5/s, burst 10)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-env-file        Load variables from a dotenv file
	-access-secret   Shared access secret
	-access-hash     SHA-256 hex of the access secret
	-mutation-rate   Mutations per second
	-mutation-burst  Mutation burst size

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ACCESS_SECRET  → -access-secret
	ACCESS_HASH    → -access-hash
	MUTATION_RATE  → -mutation-rate
	MUTATION_BURST → -mutation-burst

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the -env-file contents.

# Validation

ParseFlags returns an error if:

  - the database URL is missing for sqlite or postgres
  - neither ACCESS_SECRET nor ACCESS_HASH is set
  - the access hash is not 64 hex characters (case and surrounding space are normalised)
  - the reference hash equals the hash of the empty string
  - the rate limit is not positive
*/
package cliparse
