// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"
)

type message struct {
	Name      string `json:"name"`
	Iteration int    `json:"iteration"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	return ws
}

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d connections, want %d", hub.Count(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(DefaultConfig())
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()
	defer hub.Close()

	a := dial(t, srv)
	defer a.Close()
	b := dial(t, srv)
	defer b.Close()

	waitForCount(t, hub, 2)

	hub.Broadcast(message{Name: "Alice", Iteration: 3})

	for i, ws := range []*websocket.Conn{a, b} {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got message
		if err := ws.ReadJSON(&got); err != nil {
			t.Fatalf("client %d ReadJSON() error = %v", i, err)
		}
		if got.Name != "Alice" || got.Iteration != 3 {
			t.Errorf("client %d got %+v", i, got)
		}
	}
}

func TestHub_PreservesOrder(t *testing.T) {
	hub := NewHub(DefaultConfig())
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()
	defer hub.Close()

	ws := dial(t, srv)
	defer ws.Close()
	waitForCount(t, hub, 1)

	for i := 0; i < 20; i++ {
		hub.Broadcast(message{Iteration: i})
	}

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 20; i++ {
		var got message
		if err := ws.ReadJSON(&got); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if got.Iteration != i {
			t.Fatalf("message %d has iteration %d", i, got.Iteration)
		}
	}
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub := NewHub(DefaultConfig())
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()
	defer hub.Close()

	ws := dial(t, srv)
	waitForCount(t, hub, 1)

	ws.Close()
	waitForCount(t, hub, 0)

	// Broadcasting to nobody is fine
	hub.Broadcast(message{Name: "nobody"})
}

func TestHub_CloseStopsPumps(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(DefaultConfig())
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))

	ws := dial(t, srv)
	waitForCount(t, hub, 1)

	hub.Close()
	if hub.Count() != 0 {
		t.Errorf("Count() after Close = %d", hub.Count())
	}

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Error("expected the server to close the connection")
	}
	ws.Close()
	srv.Close()
}

func TestHub_RejectsPlainHTTP(t *testing.T) {
	hub := NewHub(DefaultConfig())
	defer hub.Close()

	req := httptest.NewRequest("GET", "/draws/stream", nil)
	w := httptest.NewRecorder()
	hub.Serve(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if hub.Count() != 0 {
		t.Errorf("Count() = %d after failed upgrade", hub.Count())
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SendBuffer = 1
	hub := NewHub(cfg)

	// Connections without pumps: nothing drains their buffers
	slow := &conn{id: "slow", send: make(chan []byte, cfg.SendBuffer)}
	roomy := &conn{id: "roomy", send: make(chan []byte, 8)}
	hub.conns[slow] = struct{}{}
	hub.conns[roomy] = struct{}{}

	hub.Broadcast(message{Iteration: 0})
	if hub.Count() != 2 {
		t.Fatalf("Count() after first broadcast = %d, want 2", hub.Count())
	}

	hub.Broadcast(message{Iteration: 1})
	if hub.Count() != 1 {
		t.Fatalf("Count() after overflow = %d, want 1", hub.Count())
	}
	if _, ok := hub.conns[roomy]; !ok {
		t.Error("client with room in its buffer was dropped")
	}

	// The dropped client's buffer is closed after the message it had room for
	if msg, ok := <-slow.send; !ok || len(msg) == 0 {
		t.Error("expected the buffered message before close")
	}
	if _, ok := <-slow.send; ok {
		t.Error("expected the slow client's send channel to be closed")
	}

	hub.Broadcast(message{Iteration: 2})
	if len(roomy.send) != 3 {
		t.Errorf("roomy client has %d messages, want 3", len(roomy.send))
	}

	delete(hub.conns, roomy)
	hub.Close()
}

func TestHub_DropsClientThatNeverReads(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SendBuffer = 1
	hub := NewHub(cfg)
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()
	defer hub.Close()

	ws := dial(t, srv)
	defer ws.Close()
	waitForCount(t, hub, 1)

	// Large messages fill the socket buffers until the write pump blocks
	payload := strings.Repeat("x", 64*1024)
	deadline := time.Now().Add(5 * time.Second)
	for hub.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("slow client still connected, Count() = %d", hub.Count())
		}
		hub.Broadcast(message{Name: payload})
	}
}
