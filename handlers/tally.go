// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/who-pays/middleware"
	"github.com/danielhkuo/who-pays/models"
	"github.com/danielhkuo/who-pays/store"
)

type TallyHandler struct {
	tally store.Tally
}

func NewTallyHandler(tally store.Tally) *TallyHandler {
	return &TallyHandler{tally: tally}
}

// ListEntries handles GET /entries
func (h *TallyHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.tally.List(r.Context())
	if err != nil {
		storeError(w, "list entries", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EntriesResponse{Entries: entries})
}

// AddEntry handles POST /entries
func (h *TallyHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req models.AddEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}

	// Duplicates are caught against the current list before touching the store
	entries, err := h.tally.List(r.Context())
	if err != nil {
		storeError(w, "list entries", err)
		return
	}
	if models.FindEntry(entries, name) >= 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "This name already exists")
		return
	}

	entry, err := h.tally.Insert(r.Context(), name)
	if errors.Is(err, store.ErrDuplicateName) {
		// Lost a race with another writer
		middleware.ErrorResponse(w, http.StatusConflict, "This name already exists")
		return
	}
	if err != nil {
		storeError(w, "insert entry", err)
		return
	}

	slog.Info("entry added", "name", entry.Name, "id", entry.ID)

	middleware.JSONResponse(w, http.StatusCreated, entry)
}

// Increment handles POST /entries/{name}/increment
func (h *TallyHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, 1)
}

// Decrement handles POST /entries/{name}/decrement
func (h *TallyHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, -1)
}

// adjust applies delta to the named entry, never going below zero
func (h *TallyHandler) adjust(w http.ResponseWriter, r *http.Request, delta int) {
	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	entries, err := h.tally.List(r.Context())
	if err != nil {
		storeError(w, "list entries", err)
		return
	}
	i := models.FindEntry(entries, name)
	if i < 0 {
		storeError(w, "adjust count", store.ErrNotFound)
		return
	}

	count := max(entries[i].Count+delta, 0)
	if count == entries[i].Count {
		// Decrement at zero: nothing to send
		middleware.JSONResponse(w, http.StatusOK, models.EntriesResponse{Entries: entries})
		return
	}

	if err := h.tally.UpdateCount(r.Context(), name, count); err != nil {
		storeError(w, "update count", err)
		return
	}

	slog.Info("count updated", "name", name, "from", entries[i].Count, "to", count)

	h.refresh(w, r)
}

// DeleteEntry handles DELETE /entries/{name}
func (h *TallyHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.tally.Delete(r.Context(), name); err != nil {
		storeError(w, "delete entry", err)
		return
	}

	slog.Info("entry removed", "name", name)

	h.refresh(w, r)
}

// refresh answers a mutation with the list as it now stands
func (h *TallyHandler) refresh(w http.ResponseWriter, r *http.Request) {
	entries, err := h.tally.List(r.Context())
	if err != nil {
		storeError(w, "list entries", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.EntriesResponse{Entries: entries})
}

// storeError logs a failed store call and maps it to a status.
// The tally is left as it was; the client may retry or refresh.
func storeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		slog.Warn("entry not found", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusNotFound, "Entry not found, refresh the list")
	case errors.Is(err, store.ErrDuplicateName):
		middleware.ErrorResponse(w, http.StatusConflict, "This name already exists")
	case errors.Is(err, store.ErrNegativeCount):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Count cannot be negative")
	default:
		slog.Error("store call failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable, try again")
	}
}
