//go:build linux

package panel

import (
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"

	"quartzwatch/internal/watch"
)

// GPIO reads the four front-panel buttons from Linux GPIO lines via the
// character device. Lines are requested as inputs with pull-down, read
// as levels on every poll and shaped into rising-edge pulses.
type GPIO struct {
	chip   *gpiocdev.Chip
	lines  [4]*gpiocdev.Line
	shaper EdgeShaper
}

// NewGPIO requests the button lines (BCM numbering: mode, select,
// increment, reset) from the named chip, usually "gpiochip0".
func NewGPIO(chipName string, mode, sel, inc, reset int) (*GPIO, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, errors.Wrapf(err, "open gpio chip %s", chipName)
	}

	g := &GPIO{chip: chip}
	for i, pin := range []int{mode, sel, inc, reset} {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			g.Close()
			return nil, errors.Wrapf(err, "request button pin %d", pin)
		}
		g.lines[i] = line
	}
	return g, nil
}

// Poll samples the four lines and returns the rising-edge pulses since
// the previous poll. Buttons are active high.
func (g *GPIO) Poll() (watch.Buttons, error) {
	var raw [4]bool
	for i, line := range g.lines {
		v, err := line.Value()
		if err != nil {
			return watch.Buttons{}, errors.Wrapf(err, "read button line %d", i)
		}
		raw[i] = v != 0
	}
	return g.shaper.Shape(Levels{
		Mode:      raw[0],
		Select:    raw[1],
		Increment: raw[2],
		Reset:     raw[3],
	}), nil
}

// Close releases the lines and the chip.
func (g *GPIO) Close() error {
	var errs []error
	for _, line := range g.lines {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("close gpio: %v", errs)
	}
	return nil
}
