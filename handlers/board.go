// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/who-pays/chart"
	"github.com/danielhkuo/who-pays/cliparse"
	"github.com/danielhkuo/who-pays/draw"
	"github.com/danielhkuo/who-pays/middleware"
	"github.com/danielhkuo/who-pays/models"
	"github.com/danielhkuo/who-pays/store"
)

//go:embed templates/index.html
var templateFS embed.FS

// Board is everything the page renders
type Board struct {
	Entries            []BoardEntry `json:"entries"`
	Chart              chart.Chart  `json:"chart"`
	Privileged         bool         `json:"privileged"`
	DarkMode           bool         `json:"dark_mode"`
	MinimumDrawOffered bool         `json:"minimum_draw_offered"`
	Draw               DrawStatus   `json:"draw"`
}

type BoardEntry struct {
	models.Entry
	UpdatedAgo string `json:"updated_ago"`
}

type BoardHandler struct {
	tally  store.Tally
	prefs  store.Preferences
	cfg    cliparse.Config
	engine *draw.Engine
	page   *template.Template
	now    func() time.Time
}

func NewBoardHandler(tally store.Tally, prefs store.Preferences, cfg cliparse.Config, engine *draw.Engine) *BoardHandler {
	page := template.Must(template.New("index.html").ParseFS(templateFS, "templates/index.html"))
	return &BoardHandler{
		tally:  tally,
		prefs:  prefs,
		cfg:    cfg,
		engine: engine,
		page:   page,
		now:    time.Now,
	}
}

// GetBoard handles GET /board
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.buildBoard(w, r)
	if err != nil {
		storeError(w, "load board", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// Page handles GET /
func (h *BoardHandler) Page(w http.ResponseWriter, r *http.Request) {
	// Ask the browser for its colour scheme on later requests
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Add("Vary", "Sec-CH-Prefers-Color-Scheme")

	board, err := h.buildBoard(w, r)
	if err != nil {
		slog.Error("failed to load board", "error", err)
		http.Error(w, "failed to load data", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, board); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *BoardHandler) buildBoard(w http.ResponseWriter, r *http.Request) (Board, error) {
	sessionID := middleware.SessionID(w, r)

	session, err := loadSession(r, h.prefs, h.cfg.ReferenceHash, sessionID)
	if err != nil {
		return Board{}, err
	}

	entries, err := h.tally.List(r.Context())
	if err != nil {
		return Board{}, err
	}

	now := h.now()
	boardEntries := make([]BoardEntry, 0, len(entries))
	for _, e := range entries {
		boardEntries = append(boardEntries, BoardEntry{
			Entry:      e,
			UpdatedAgo: humanize.RelTime(e.UpdatedAt, now, "ago", "from now"),
		})
	}

	return Board{
		Entries:            boardEntries,
		Chart:              chart.Build(entries, session.DarkMode),
		Privileged:         session.Privileged,
		DarkMode:           session.DarkMode,
		MinimumDrawOffered: draw.MinimumOffered(entries),
		Draw:               drawStatus(h.engine.State(), entries),
	}, nil
}
