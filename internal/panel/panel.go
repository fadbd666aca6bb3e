// Package panel delivers front-panel button events to the watch core.
// Sources are expected to hand over single-poll pulses: a button that
// stays held down produces one pulse, not a stream. Pulse shaping and
// debouncing happen here, outside the synchronous core.
package panel

import "quartzwatch/internal/watch"

// A Source produces the button pulses accumulated since the previous
// poll. The real implementations read a terminal or GPIO lines; the
// fake replays a script.
type Source interface {
	// Poll returns the pending button pulses. It must not block.
	Poll() (watch.Buttons, error)

	// Close releases the source's resources.
	Close() error
}

// Levels is a raw sample of the four button lines.
type Levels struct {
	Mode      bool
	Select    bool
	Increment bool
	Reset     bool
}

// An EdgeShaper converts sampled button levels into one-poll pulses: a
// pulse fires on the rising edge only, so a held button produces a
// single event.
type EdgeShaper struct {
	prev Levels
}

// Shape returns the pulses for the rising edges between the previous
// sample and now.
func (e *EdgeShaper) Shape(now Levels) watch.Buttons {
	b := watch.Buttons{
		Mode:      now.Mode && !e.prev.Mode,
		Select:    now.Select && !e.prev.Select,
		Increment: now.Increment && !e.prev.Increment,
		Reset:     now.Reset && !e.prev.Reset,
	}
	e.prev = now
	return b
}
