// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Who Pays service.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Tally:  tally,
		Prefs:  prefs,
		Config: cfg,
		Engine: engine,
		Hub:    hub,
	})

# Endpoints

Health:

	GET /health

Page:

	GET /      - Server-rendered board
	GET /board - Board view model as JSON

Tally (mutations are rate limited):

	GET    /entries                  - List entries in creation order
	POST   /entries                  - Add a person
	POST   /entries/{name}/increment - Count +1
	POST   /entries/{name}/decrement - Count -1, floored at 0
	DELETE /entries/{name}           - Remove a person

Session:

	GET  /session            - Gate result and dark mode
	PUT  /session/credential - Replace the stored credential with the raw body
	POST /session/dark-mode  - Toggle dark mode

Draws:

	POST /draws         - Start a draw (rate limited)
	GET  /draws/current - Engine state
	GET  /draws/stream  - WebSocket of highlight events

# Access Gate

The gate is advisory. Mutation routes do not check it; it only decides what
the page renders. Anyone who can reach the service can change the tally.
*/
package router
