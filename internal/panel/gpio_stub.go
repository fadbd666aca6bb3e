//go:build !linux

package panel

import (
	"github.com/pkg/errors"

	"quartzwatch/internal/watch"
)

// GPIO is not available on non-Linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-Linux platforms.
func NewGPIO(chipName string, mode, sel, inc, reset int) (*GPIO, error) {
	return nil, errors.New("gpio panel requires Linux")
}

// Poll is not implemented on non-Linux platforms.
func (g *GPIO) Poll() (watch.Buttons, error) {
	return watch.Buttons{}, errors.New("gpio panel not supported")
}

// Close is a no-op on non-Linux platforms.
func (g *GPIO) Close() error { return nil }
