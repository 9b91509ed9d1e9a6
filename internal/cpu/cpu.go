package cpu

import (
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/random"
)

const (
	// StartAddress is where program images are loaded and execution begins.
	StartAddress uint16 = 0x200
	// FontStart is where the 16 hex digit sprites live.
	FontStart uint16 = 0x050
	// StackSize is the number of return addresses the call stack holds.
	StackSize = 16
	// NumKeys is the size of the hex keypad.
	NumKeys = 16
)

// Entropy supplies the bytes consumed by RND.
type Entropy interface {
	Byte() byte
}

// CPU is the CHIP-8 machine state: register file, stack, timers and keypad,
// plus the memory and framebuffer it operates on.
type CPU struct {
	V  [16]byte // V[0xF] doubles as the flag register
	I  uint16
	PC uint16

	Stack [StackSize]uint16
	SP    byte

	DelayTimer byte
	SoundTimer byte

	Keypad [NumKeys]bool

	// Opcode is the word fetched by the most recent Cycle.
	Opcode uint16

	bus *bus.Bus
	fb  *display.Framebuffer
	rng Entropy
}

// New creates a CPU in power-on state: memory cleared with the font loaded,
// screen cleared and PC at StartAddress. A nil rng gets a clock-seeded source.
func New(b *bus.Bus, fb *display.Framebuffer, rng Entropy) *CPU {
	if rng == nil {
		rng = random.NewFromTime()
	}
	c := &CPU{bus: b, fb: fb, rng: rng}
	c.Reset()
	return c
}

// Reset restores power-on state. The entropy source is kept.
func (c *CPU) Reset() {
	c.V = [16]byte{}
	c.I = 0
	c.PC = StartAddress
	c.Stack = [StackSize]uint16{}
	c.SP = 0
	c.DelayTimer = 0
	c.SoundTimer = 0
	c.Keypad = [NumKeys]bool{}
	c.Opcode = 0

	c.bus.Reset()
	_ = c.bus.Load(FontStart, Font[:])
	c.fb.Clear()
}

// Bus exposes memory for loaders and tools.
func (c *CPU) Bus() *bus.Bus { return c.bus }

// Framebuffer exposes the screen.
func (c *CPU) Framebuffer() *display.Framebuffer { return c.fb }

// Cycle fetches, decodes and executes one instruction. The only errors are
// stack faults; a faulting instruction leaves PC on itself and changes no
// other state.
func (c *CPU) Cycle() error {
	pc := c.PC
	c.Opcode = c.bus.Read16(pc)
	c.PC = pc + 2

	in := Decode(c.Opcode)
	if err := handlers[in.Op](c, in); err != nil {
		c.PC = pc
		return err
	}
	return nil
}

// TickTimers decrements each non-zero timer by one. Hosts call it at 60 Hz.
func (c *CPU) TickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// SetKey records a key press or release. Keys above 0xF are ignored.
func (c *CPU) SetKey(k byte, down bool) {
	if int(k) < NumKeys {
		c.Keypad[k] = down
	}
}

// SetEntropy swaps the entropy source. A nil source is ignored.
func (c *CPU) SetEntropy(rng Entropy) {
	if rng != nil {
		c.rng = rng
	}
}

// Entropy returns the source RND draws from.
func (c *CPU) Entropy() Entropy { return c.rng }
