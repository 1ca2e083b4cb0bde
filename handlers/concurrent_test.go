// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/who-pays/models"
	"github.com/danielhkuo/who-pays/store"
	"github.com/danielhkuo/who-pays/stream"
	"github.com/danielhkuo/who-pays/testutil"
)

// TestConcurrentAdds verifies that simultaneous adds of different names
// all land exactly once
func TestConcurrentAdds(t *testing.T) {
	tally := testutil.SetupTestStore(t)
	handler := NewTallyHandler(tally)

	numPeople := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numPeople; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/entries", models.AddEntryRequest{Name: fmt.Sprintf("Person%d", idx)}, nil)
			w := httptest.NewRecorder()
			handler.AddEntry(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numPeople {
		t.Errorf("Expected %d successful adds, got %d", numPeople, successCount.Load())
	}

	entries, err := tally.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != numPeople {
		t.Errorf("Expected %d entries, got %d", numPeople, len(entries))
	}
}

// TestConcurrentSameName verifies that when several requests add the same
// name, exactly one succeeds and the rest are told it exists
func TestConcurrentSameName(t *testing.T) {
	for _, tc := range []struct {
		name  string
		tally store.Tally
	}{
		{"memory", store.NewMemory()},
		{"sqlite", testutil.SetupTestStore(t)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewTallyHandler(tc.tally)

			numAttempts := 5
			var created, conflicts atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < numAttempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					req := testutil.MakeRequest("POST", "/entries", models.AddEntryRequest{Name: "Contested"}, nil)
					w := httptest.NewRecorder()
					handler.AddEntry(w, req)

					switch w.Code {
					case http.StatusCreated:
						created.Add(1)
					case http.StatusConflict:
						conflicts.Add(1)
					}
				}()
			}

			wg.Wait()

			if created.Load() != 1 {
				t.Errorf("Expected exactly 1 add to succeed, got %d", created.Load())
			}
			if conflicts.Load() != int32(numAttempts-1) {
				t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflicts.Load())
			}
		})
	}
}

// TestConcurrentDrawStarts verifies that only one of several simultaneous
// draw requests starts a draw
func TestConcurrentDrawStarts(t *testing.T) {
	tally := store.NewMemory()
	testutil.SeedEntries(t, tally, nil, "A", "B", "C")
	engine, _ := newTestEngine(t)
	handler := NewDrawHandler(tally, engine, stream.NewHub(stream.DefaultConfig()))

	numAttempts := 8
	var accepted, busy atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.StartDraw(w, testutil.MakeRequest("POST", "/draws", models.StartDrawRequest{}, nil))

			switch w.Code {
			case http.StatusAccepted:
				accepted.Add(1)
			case http.StatusConflict:
				busy.Add(1)
			}
		}()
	}

	wg.Wait()

	if accepted.Load() != 1 {
		t.Errorf("Expected exactly 1 draw to start, got %d", accepted.Load())
	}
	if busy.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d busy responses, got %d", numAttempts-1, busy.Load())
	}
}
