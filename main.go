// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/who-pays/cliparse"
	"github.com/danielhkuo/who-pays/db"
	"github.com/danielhkuo/who-pays/draw"
	"github.com/danielhkuo/who-pays/middleware"
	"github.com/danielhkuo/who-pays/router"
	"github.com/danielhkuo/who-pays/store"
	"github.com/danielhkuo/who-pays/stream"
)

// backend is what both the tally and the session preferences live in
type backend interface {
	store.Tally
	store.Preferences
}

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	var data backend
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		slog.Warn("Using in-memory store, the tally is lost on restart")
		data = store.NewMemory()
	} else {
		// Connect to SQLite or PostgreSQL
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		data = store.NewSQL(dbConn)
	}

	// Every highlight goes out to every open page
	hub := stream.NewHub(stream.DefaultConfig())
	engine := draw.NewEngine(draw.WithObserver(func(ev draw.Event) {
		hub.Broadcast(ev)
	}))

	// Create router
	mux := router.NewRouter(router.Deps{
		Tally:  data,
		Prefs:  data,
		Config: cfg,
		Engine: engine,
		Hub:    hub,
	})

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		engine.Close()
		hub.Close()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
