package cpu

import (
	"errors"
	"testing"
)

func FuzzCycle(f *testing.F) {
	for _, w := range []uint16{0x00E0, 0x00EE, 0x2200, 0x8F14, 0xD12F, 0xFF55, 0xFF65, 0xF00A, 0xB0FF} {
		f.Add(w, uint16(0x300), byte(3), byte(0))
	}
	f.Fuzz(func(t *testing.T, word, i uint16, v byte, sp byte) {
		c := newCPUWithProgram(word)
		for r := range c.V {
			c.V[r] = v + byte(r)
		}
		c.I = i
		c.SP = sp % (StackSize + 1)
		before := *c

		err := c.Cycle()
		if c.SP > StackSize {
			t.Fatalf("SP %d out of range after %#04x", c.SP, word)
		}
		if err != nil {
			if !errors.Is(err, ErrStackOverflow) && !errors.Is(err, ErrStackUnderflow) {
				t.Fatalf("unexpected error %v for %#04x", err, word)
			}
			if c.PC != before.PC || c.SP != before.SP || c.V != before.V || c.I != before.I || c.Stack != before.Stack {
				t.Fatalf("fault on %#04x changed state", word)
			}
		}
	})
}
