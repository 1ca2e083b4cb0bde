// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/who-pays/cliparse"
	"github.com/danielhkuo/who-pays/draw"
	"github.com/danielhkuo/who-pays/handlers"
	"github.com/danielhkuo/who-pays/middleware"
	"github.com/danielhkuo/who-pays/store"
	"github.com/danielhkuo/who-pays/stream"
)

// Deps are the long-lived components the routes share
type Deps struct {
	Tally  store.Tally
	Prefs  store.Preferences
	Config cliparse.Config
	Engine *draw.Engine
	Hub    *stream.Hub
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	boardHandler := handlers.NewBoardHandler(deps.Tally, deps.Prefs, deps.Config, deps.Engine)
	tallyHandler := handlers.NewTallyHandler(deps.Tally)
	sessionHandler := handlers.NewSessionHandler(deps.Prefs, deps.Config)
	drawHandler := handlers.NewDrawHandler(deps.Tally, deps.Engine, deps.Hub)

	// One bucket for every route that changes the tally or starts a draw
	limiter := rate.NewLimiter(rate.Limit(deps.Config.MutationRate), deps.Config.MutationBurst)
	limited := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RateLimit(limiter, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Page and its view model
	mux.HandleFunc("GET /{$}", middleware.WithLogging(boardHandler.Page))
	mux.HandleFunc("GET /board", middleware.WithLogging(boardHandler.GetBoard))

	// Tally
	mux.HandleFunc("GET /entries", middleware.WithLogging(tallyHandler.ListEntries))
	mux.HandleFunc("POST /entries", limited(tallyHandler.AddEntry))
	mux.HandleFunc("POST /entries/{name}/increment", limited(tallyHandler.Increment))
	mux.HandleFunc("POST /entries/{name}/decrement", limited(tallyHandler.Decrement))
	mux.HandleFunc("DELETE /entries/{name}", limited(tallyHandler.DeleteEntry))

	// Session preferences
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("PUT /session/credential", middleware.WithLogging(sessionHandler.SetCredential))
	mux.HandleFunc("POST /session/dark-mode", middleware.WithLogging(sessionHandler.ToggleDarkMode))

	// Draws
	mux.HandleFunc("POST /draws", limited(drawHandler.StartDraw))
	mux.HandleFunc("GET /draws/current", middleware.WithLogging(drawHandler.CurrentDraw))
	mux.HandleFunc("GET /draws/stream", drawHandler.Stream)

	return mux
}
