// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draw picks who pays next with a decelerating random animation.

# Modes

  - ModeUniform: every entry is a candidate
  - ModeMinimum: only entries tied for the lowest count; offered only when
    more than one entry holds it (see MinimumOffered)

# Sequence

A Sequence is the state machine of one draw. Each call to Next emits the
current highlight, then moves to a different random candidate (the same one
when there is only one) and reports how long to wait before the next call:

	step  0-9:  100ms
	step 10-19: 150ms, 200ms, ... 600ms

After TotalIterations (20) events the sequence is exhausted; the last event
emitted is the selection.

# Engine

The Engine drives a Sequence on a clockwork clock and fans events out to
observers. Only one draw runs at a time:

	engine := draw.NewEngine(draw.WithObserver(func(ev draw.Event) {
		hub.Broadcast(ev)
	}))
	done, err := engine.Start(entries, draw.ModeMinimum)
	switch {
	case errors.Is(err, draw.ErrBusy):         // ignored, a draw is running
	case errors.Is(err, draw.ErrNoCandidates): // nothing to draw
	case errors.Is(err, draw.ErrNotOffered):   // single minimum holder
	}

A draw always runs to completion unless the engine is closed; Close drops
the pending step and waits for the runner goroutine to return.

The draw never touches the tally. Events carry the candidate's position in
the list the draw started from; Event.Resolve maps it onto the current list.
*/
package draw
