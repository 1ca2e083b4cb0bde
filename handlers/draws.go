// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/who-pays/draw"
	"github.com/danielhkuo/who-pays/middleware"
	"github.com/danielhkuo/who-pays/models"
	"github.com/danielhkuo/who-pays/store"
	"github.com/danielhkuo/who-pays/stream"
)

// DrawStatus is the engine state with the highlight placed on the current list
type DrawStatus struct {
	draw.State
	// Index into the current entry list, -1 when nothing is highlighted
	HighlightedIndex int `json:"highlighted_index"`
}

type DrawHandler struct {
	tally  store.Tally
	engine *draw.Engine
	hub    *stream.Hub
}

func NewDrawHandler(tally store.Tally, engine *draw.Engine, hub *stream.Hub) *DrawHandler {
	return &DrawHandler{tally: tally, engine: engine, hub: hub}
}

// StartDraw handles POST /draws
func (h *DrawHandler) StartDraw(w http.ResponseWriter, r *http.Request) {
	var req models.StartDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	mode, err := draw.ParseMode(req.Mode)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.tally.List(r.Context())
	if err != nil {
		storeError(w, "list entries", err)
		return
	}

	if _, err := h.engine.Start(entries, mode); err != nil {
		switch {
		case errors.Is(err, draw.ErrBusy):
			middleware.ErrorResponse(w, http.StatusConflict, "A draw is already running")
		case errors.Is(err, draw.ErrNoCandidates):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Nothing to draw")
		case errors.Is(err, draw.ErrNotOffered):
			middleware.ErrorResponse(w, http.StatusConflict, "Only one person has the lowest count")
		default:
			slog.Error("failed to start draw", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Draws are unavailable")
		}
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, drawStatus(h.engine.State(), entries))
}

// CurrentDraw handles GET /draws/current
func (h *DrawHandler) CurrentDraw(w http.ResponseWriter, r *http.Request) {
	entries, err := h.tally.List(r.Context())
	if err != nil {
		storeError(w, "list entries", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, drawStatus(h.engine.State(), entries))
}

// Stream handles GET /draws/stream. Every highlight event is pushed to the
// socket as it happens.
func (h *DrawHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.hub.Serve(w, r)
}

// drawStatus resolves the running highlight, or the last final selection once
// the engine is idle, against entries
func drawStatus(state draw.State, entries []models.Entry) DrawStatus {
	status := DrawStatus{State: state, HighlightedIndex: -1}
	switch {
	case state.Highlighted != nil:
		status.HighlightedIndex = state.Highlighted.Resolve(entries)
	case state.Last != nil:
		status.HighlightedIndex = state.Last.Resolve(entries)
	}
	return status
}
