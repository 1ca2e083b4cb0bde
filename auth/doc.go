// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements the access gate and session identifiers.

# Access Gate

Whoever holds the shared secret pastes it anywhere on the page. The pasted
text is stored verbatim as the session credential, and the gate compares its
SHA-256 against the reference hash derived from ACCESS_SECRET:

	ref := auth.ReferenceHash(cfg.AccessSecret)
	if auth.IsPrivileged(stored, ref) {
		// render add / decrement / remove controls
	}

# No Security Guarantee

The gate only decides what the page shows. The API does not refuse mutations
from an unprivileged session, and the comparison relies on a value any visitor
can supply. Do not treat it as authentication.

# Session IDs

Each browser gets a random UUID cookie that keys its stored preferences:

	id := auth.NewSessionID()
*/
package auth
