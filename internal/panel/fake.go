package panel

import (
	"github.com/pkg/errors"

	"quartzwatch/internal/watch"
)

// Fake is a test double replaying scripted button pulses. Each call to
// Poll consumes the next script entry; once the script is exhausted it
// returns no pulses, which is what an idle panel looks like.
type Fake struct {
	Script []watch.Buttons

	// PollError, if set, is returned by Poll.
	PollError error

	// Closed tracks whether Close was called.
	Closed bool

	index int
}

// NewFake creates a Fake replaying the given pulses.
func NewFake(script []watch.Buttons) *Fake {
	return &Fake{Script: script}
}

// Poll returns the next scripted pulse set.
func (f *Fake) Poll() (watch.Buttons, error) {
	if f.PollError != nil {
		return watch.Buttons{}, f.PollError
	}
	if f.Closed {
		return watch.Buttons{}, errors.New("poll on closed panel")
	}
	if f.index >= len(f.Script) {
		return watch.Buttons{}, nil
	}
	b := f.Script[f.index]
	f.index++
	return b, nil
}

// Close marks the panel closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *Fake) Reset() {
	f.index = 0
	f.Closed = false
}
