package term

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal switches an input tty between its original mode and raw mode.
type Terminal struct {
	input *os.File

	canAttr unix.Termios
	rawAttr unix.Termios
}

// Open records the current attributes of input so Restore can return to them.
func Open(input *os.File) (*Terminal, error) {
	t := &Terminal{input: input}
	if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err != nil {
		return nil, fmt.Errorf("terminal attributes: %w", err)
	}
	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)
	return t, nil
}

// RawMode disables line buffering, echo and signal keys.
func (t *Terminal) RawMode() error {
	return termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.rawAttr)
}

// Restore puts the terminal back the way Open found it.
func (t *Terminal) Restore() error {
	return termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
}
