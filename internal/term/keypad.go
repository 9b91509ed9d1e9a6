package term

import "strings"

// HoldFrames is how long a key counts as down after the terminal reports it.
// Terminals only deliver presses (and auto-repeat), never releases.
const HoldFrames = 6

// DefaultLayout maps keypad digits 0-F to keyboard characters, COSMAC style.
const DefaultLayout = "x123qweasdzc4rfv"

// Keypad turns key presses into held keypad state that decays frame by frame.
type Keypad struct {
	layout [16]byte
	hold   [16]int
}

// NewKeypad uses layout (16 characters, index = digit); an invalid layout
// falls back to DefaultLayout.
func NewKeypad(layout string) *Keypad {
	if len(layout) != 16 {
		layout = DefaultLayout
	}
	k := &Keypad{}
	copy(k.layout[:], strings.ToLower(layout))
	return k
}

// Digit returns the keypad digit bound to character c.
func (k *Keypad) Digit(c byte) (int, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	for d, l := range k.layout {
		if l == c {
			return d, true
		}
	}
	return 0, false
}

// Press marks the digit bound to c as down. It reports whether c is bound.
func (k *Keypad) Press(c byte) bool {
	d, ok := k.Digit(c)
	if ok {
		k.hold[d] = HoldFrames
	}
	return ok
}

// Tick ages every held key by one frame.
func (k *Keypad) Tick() {
	for i := range k.hold {
		if k.hold[i] > 0 {
			k.hold[i]--
		}
	}
}

// State reports which digits are currently held.
func (k *Keypad) State() (keys [16]bool) {
	for i, h := range k.hold {
		keys[i] = h > 0
	}
	return keys
}
