package panel

import (
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"quartzwatch/internal/watch"
)

// Terminal reads button presses from a terminal put into cbreak mode:
// m = mode, s = select, i = increment, r = reset.
type Terminal struct {
	input *os.File
	saved unix.Termios
	keys  chan byte
	done  chan struct{}
}

// NewTerminal puts input into cbreak mode and starts collecting
// keystrokes. Callers must Close to restore the terminal attributes.
func NewTerminal(input *os.File) (*Terminal, error) {
	t := &Terminal{
		input: input,
		keys:  make(chan byte, 64),
		done:  make(chan struct{}),
	}
	if err := termios.Tcgetattr(input.Fd(), &t.saved); err != nil {
		return nil, errors.Wrap(err, "save terminal attributes")
	}
	cbreak := t.saved
	termios.Cfmakecbreak(&cbreak)
	if err := termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &cbreak); err != nil {
		return nil, errors.Wrap(err, "set cbreak mode")
	}
	go t.read()
	return t, nil
}

func (t *Terminal) read() {
	buf := make([]byte, 1)
	for {
		n, err := t.input.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case <-t.done:
			return
		case t.keys <- buf[0]:
		default:
			// nobody is polling, drop the key
		}
	}
}

// Poll drains pending keystrokes and maps them to button pulses.
// Repeated presses of the same key within one poll collapse into a
// single pulse.
func (t *Terminal) Poll() (watch.Buttons, error) {
	var b watch.Buttons
	for {
		select {
		case k := <-t.keys:
			switch k {
			case 'm', 'M':
				b.Mode = true
			case 's', 'S':
				b.Select = true
			case 'i', 'I', '+':
				b.Increment = true
			case 'r', 'R':
				b.Reset = true
			}
		default:
			return b, nil
		}
	}
}

// Close restores the saved terminal attributes. The reader goroutine
// exits on the next keystroke or at process exit.
func (t *Terminal) Close() error {
	close(t.done)
	return errors.Wrap(
		termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.saved),
		"restore terminal attributes")
}
