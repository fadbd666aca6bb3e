package watch

import "github.com/pkg/errors"

// A PulseGen produces a single-step pulse once every N steps from a
// free-running counter. Generators share no state; the watch owns one
// per output pulse (timekeeping, sample, scan).
type PulseGen struct {
	divisor uint
	count   uint
	out     bool
}

// NewPulseGen returns a generator firing every divisor steps. A divisor
// of 1 fires on every step. A divisor of 0 is a caller contract
// violation and is rejected here rather than at step time.
func NewPulseGen(divisor uint) (*PulseGen, error) {
	if divisor == 0 {
		return nil, errors.New("pulse divisor must be >= 1")
	}
	return &PulseGen{divisor: divisor}, nil
}

// step advances the counter by one simulation step and returns the
// pulse output committed for that step.
func (g *PulseGen) step() bool {
	g.count++
	if g.count == g.divisor {
		g.count = 0
		g.out = true
	} else {
		g.out = false
	}
	return g.out
}

// Pulse returns the output committed at the last step.
func (g *PulseGen) Pulse() bool { return g.out }

// Divisor returns the configured steps-per-pulse value.
func (g *PulseGen) Divisor() uint { return g.divisor }

// Reset returns the counter to zero. No pulse fires on the reset step.
func (g *PulseGen) Reset() {
	g.count = 0
	g.out = false
}
