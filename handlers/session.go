// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/who-pays/auth"
	"github.com/danielhkuo/who-pays/cliparse"
	"github.com/danielhkuo/who-pays/middleware"
	"github.com/danielhkuo/who-pays/models"
	"github.com/danielhkuo/who-pays/store"
)

// maxCredentialBytes bounds a pasted credential
const maxCredentialBytes = 4096

type SessionHandler struct {
	prefs store.Preferences
	cfg   cliparse.Config
}

func NewSessionHandler(prefs store.Preferences, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{prefs: prefs, cfg: cfg}
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(w, r)

	resp, err := loadSession(r, h.prefs, h.cfg.ReferenceHash, sessionID)
	if err != nil {
		storeError(w, "load session", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SetCredential handles PUT /session/credential.
// The raw body replaces the stored credential as-is, whatever it contains,
// up to maxCredentialBytes. A larger body is refused with 413 and the stored
// credential is left unchanged.
func (h *SessionHandler) SetCredential(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(w, r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCredentialBytes))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Credential too long")
		return
	}

	if err := h.prefs.Set(r.Context(), sessionID, models.PrefCredential, string(body)); err != nil {
		storeError(w, "store credential", err)
		return
	}

	resp, err := loadSession(r, h.prefs, h.cfg.ReferenceHash, sessionID)
	if err != nil {
		storeError(w, "load session", err)
		return
	}

	slog.Info("credential replaced", "session_id", sessionID, "privileged", resp.Privileged)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ToggleDarkMode handles POST /session/dark-mode
func (h *SessionHandler) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(w, r)

	dark, err := darkMode(r, h.prefs, sessionID)
	if err != nil {
		storeError(w, "load dark mode", err)
		return
	}

	if err := h.prefs.Set(r.Context(), sessionID, models.PrefDarkMode, strconv.FormatBool(!dark)); err != nil {
		storeError(w, "store dark mode", err)
		return
	}

	resp, err := loadSession(r, h.prefs, h.cfg.ReferenceHash, sessionID)
	if err != nil {
		storeError(w, "load session", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// loadSession reads the session's preferences and evaluates the access gate
func loadSession(r *http.Request, prefs store.Preferences, referenceHash, sessionID string) (models.SessionResponse, error) {
	credential, _, err := prefs.Get(r.Context(), sessionID, models.PrefCredential)
	if err != nil {
		return models.SessionResponse{}, err
	}

	dark, err := darkMode(r, prefs, sessionID)
	if err != nil {
		return models.SessionResponse{}, err
	}

	return models.SessionResponse{
		Privileged: auth.IsPrivileged(credential, referenceHash),
		DarkMode:   dark,
	}, nil
}

// darkMode returns the stored preference, falling back to the browser's
// Sec-CH-Prefers-Color-Scheme hint when the session never toggled it
func darkMode(r *http.Request, prefs store.Preferences, sessionID string) (bool, error) {
	v, ok, err := prefs.Get(r.Context(), sessionID, models.PrefDarkMode)
	if err != nil {
		return false, err
	}
	if !ok {
		return r.Header.Get("Sec-CH-Prefers-Color-Scheme") == "dark", nil
	}
	dark, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring malformed dark mode preference", "session_id", sessionID, "value", v)
		return false, nil
	}
	return dark, nil
}
