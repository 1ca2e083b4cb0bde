// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/who-pays/models"
)

var (
	ErrBusy         = errors.New("a draw is already running")
	ErrNoCandidates = errors.New("nothing to draw")
	ErrNotOffered   = errors.New("a single entry holds the minimum count")
	ErrClosed       = errors.New("draw engine closed")
)

// State is a snapshot of the engine
type State struct {
	Running        bool   `json:"running"`
	Mode           Mode   `json:"mode,omitempty"`
	Highlighted    *Event `json:"highlighted,omitempty"`
	RemainingSteps int    `json:"remaining_steps"`
	StepDelayMs    int64  `json:"step_delay_ms"`
	// Final highlight of the last completed draw
	Last *Event `json:"last,omitempty"`
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the real clock, typically with a clockwork.FakeClock
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRand sets the random source
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithObserver registers fn to receive every highlight event, in order
func WithObserver(fn func(Event)) Option {
	return func(e *Engine) { e.observers = append(e.observers, fn) }
}

// Engine runs at most one draw at a time. Each step waits on a timer from
// the injected clock, so the runner yields between steps.
type Engine struct {
	clock     clockwork.Clock
	rng       *rand.Rand
	observers []func(Event)

	mu     sync.Mutex
	state  State
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock: clockwork.NewRealClock(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a draw over a snapshot of entries. The returned channel is
// closed when the engine is idle again. A request while a draw is running
// is refused with ErrBusy and does not disturb the running draw.
func (e *Engine) Start(entries []models.Entry, mode Mode) (<-chan struct{}, error) {
	candidates := Candidates(entries, mode)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if mode == ModeMinimum && len(candidates) == 1 {
		return nil, ErrNotOffered
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}
	if e.state.Running {
		return nil, ErrBusy
	}

	seq := NewSequence(candidates, e.rng)
	e.state.Running = true
	e.state.Mode = mode
	e.state.Highlighted = nil
	e.state.RemainingSteps = seq.Remaining()
	e.state.StepDelayMs = InitialDelay.Milliseconds()

	done := make(chan struct{})
	e.wg.Add(1)
	go e.run(seq, done)

	slog.Info("draw started", "mode", mode, "candidates", len(candidates))
	return done, nil
}

func (e *Engine) run(seq *Sequence, done chan struct{}) {
	defer e.wg.Done()
	defer close(done)

	var last Event
	for {
		ev, ok := seq.Next()
		if !ok {
			break
		}
		last = ev

		e.mu.Lock()
		e.state.Highlighted = &ev
		e.state.RemainingSteps = seq.Remaining()
		e.state.StepDelayMs = ev.DelayMs
		e.mu.Unlock()

		for _, fn := range e.observers {
			fn(ev)
		}

		timer := e.clock.NewTimer(ev.Delay)
		select {
		case <-timer.Chan():
		case <-e.stop:
			timer.Stop()
			e.finish(nil)
			slog.Info("draw abandoned", "iteration", ev.Iteration)
			return
		}
	}

	e.finish(&last)
	slog.Info("draw finished", "name", last.Name, "position", last.Position)
}

func (e *Engine) finish(last *Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Running = false
	e.state.Highlighted = nil
	e.state.RemainingSteps = 0
	e.state.StepDelayMs = 0
	if last != nil {
		e.state.Last = last
	}
}

// State returns a copy of the current engine state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if s.Highlighted != nil {
		h := *s.Highlighted
		s.Highlighted = &h
	}
	if s.Last != nil {
		l := *s.Last
		s.Last = &l
	}
	return s
}

// Close abandons any pending step and waits for the runner to exit.
// Later Start calls fail with ErrClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.stop)
	e.mu.Unlock()

	e.wg.Wait()
}
