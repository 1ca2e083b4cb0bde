// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/danielhkuo/who-pays/models"
)

// Animation timing
const (
	TotalIterations = 20
	InitialDelay    = 100 * time.Millisecond
	DelayStep       = 50 * time.Millisecond
)

// Mode selects the candidate set
type Mode string

const (
	// ModeUniform draws over every entry
	ModeUniform Mode = "uniform"
	// ModeMinimum draws over the entries tied for the lowest count
	ModeMinimum Mode = "minimum"
)

// ParseMode converts a request string to a Mode. Empty means uniform.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeUniform:
		return ModeUniform, nil
	case ModeMinimum:
		return ModeMinimum, nil
	default:
		return "", fmt.Errorf("unknown draw mode %q", s)
	}
}

// Candidate is an entry eligible for the draw.
// Position is its index in the full, unfiltered list.
type Candidate struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Candidates returns the candidate set for mode, in list order
func Candidates(entries []models.Entry, mode Mode) []Candidate {
	low := models.MinCount(entries)

	var out []Candidate
	for i, e := range entries {
		if mode == ModeMinimum && e.Count != low {
			continue
		}
		out = append(out, Candidate{Name: e.Name, Position: i})
	}
	return out
}

// MinimumOffered reports whether a minimum-mode draw makes sense.
// With a single holder of the lowest count there is nothing to draw.
func MinimumOffered(entries []models.Entry) bool {
	return len(Candidates(entries, ModeMinimum)) > 1
}

// Event is one highlight step of a draw
type Event struct {
	Iteration int    `json:"iteration"` // 0-based
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Final     bool   `json:"final"`
	// Delay before the next step (or before the engine goes idle after the final one)
	Delay   time.Duration `json:"-"`
	DelayMs int64         `json:"delay_ms"`
}

// Resolve maps the highlighted candidate onto the current list.
// The list may have changed since the draw started: the original position is
// used only when it still holds the same name, otherwise the name is looked
// up. Returns -1 when the entry is gone.
func (e Event) Resolve(entries []models.Entry) int {
	if e.Position >= 0 && e.Position < len(entries) && entries[e.Position].Name == e.Name {
		return e.Position
	}
	return models.FindEntry(entries, e.Name)
}

// Sequence is the state machine of one draw: idle -> running -> idle.
// It holds no clock; the caller waits Event.Delay between calls to Next.
type Sequence struct {
	candidates []Candidate
	rng        *rand.Rand
	current    int
	iteration  int
	delay      time.Duration
}

// NewSequence starts a draw over a non-empty candidate set
func NewSequence(candidates []Candidate, rng *rand.Rand) *Sequence {
	return &Sequence{
		candidates: candidates,
		rng:        rng,
		current:    rng.IntN(len(candidates)),
		delay:      InitialDelay,
	}
}

// Next emits the current highlight and advances the state.
// Returns false once TotalIterations events have been emitted.
func (s *Sequence) Next() (Event, bool) {
	if s.iteration >= TotalIterations {
		return Event{}, false
	}

	c := s.candidates[s.current]
	ev := Event{
		Iteration: s.iteration,
		Name:      c.Name,
		Position:  c.Position,
		Final:     s.iteration == TotalIterations-1,
	}

	n := len(s.candidates)
	next := s.rng.IntN(n)
	for n > 1 && next == s.current {
		next = s.rng.IntN(n)
	}
	s.current = next
	s.iteration++

	// Constant cadence for the first half, then slow down linearly
	if s.iteration > TotalIterations/2 {
		s.delay += DelayStep
	}
	ev.Delay = s.delay
	ev.DelayMs = s.delay.Milliseconds()

	return ev, true
}

// Remaining returns how many events are left to emit
func (s *Sequence) Remaining() int {
	return TotalIterations - s.iteration
}
