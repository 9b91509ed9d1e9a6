package emu

import (
	"fmt"
	"log/slog"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/random"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
)

// Machine owns one CHIP-8 system and the program loaded into it.
type Machine struct {
	cfg Config
	log *slog.Logger

	// core components
	bus *bus.Bus
	fb  *display.Framebuffer
	rng *random.Random
	cpu *cpu.CPU

	img     *rom.Image
	romPath string
	palette int
	rgba    []byte

	// fault is the error that stopped the machine; cleared by Reset and loads
	fault error
}

func New(cfg Config) *Machine {
	cfg = cfg.Defaults()
	m := &Machine{
		cfg:  cfg,
		log:  slog.Default(),
		bus:  bus.New(),
		fb:   display.New(),
		rgba: make([]byte, display.Width*display.Height*4),
	}
	if cfg.Seed != 0 {
		m.rng = random.New(cfg.Seed)
	} else {
		m.rng = random.NewFromTime()
	}
	m.cpu = cpu.New(m.bus, m.fb, m.rng)
	_, m.palette, _ = display.PaletteByName(cfg.Palette)
	return m
}

// SetLogger replaces the logger used for instruction traces.
func (m *Machine) SetLogger(l *slog.Logger) {
	if l != nil {
		m.log = l
	}
}

// Config returns the effective configuration.
func (m *Machine) Config() Config { return m.cfg }

// SetCyclesPerFrame changes the instruction rate. Values below one are ignored.
func (m *Machine) SetCyclesPerFrame(n int) {
	if n > 0 {
		m.cfg.CyclesPerFrame = n
	}
}

// SetTrace toggles the per-instruction debug log.
func (m *Machine) SetTrace(on bool) { m.cfg.Trace = on }

// LoadROM reads, validates and loads the program at path. On error the
// running program is left untouched.
func (m *Machine) LoadROM(path string) error {
	img, err := rom.Read(path)
	if err != nil {
		return err
	}
	if err := m.LoadImage(img); err != nil {
		return err
	}
	m.romPath = path
	return nil
}

// LoadImage resets the machine and copies img to the program area.
func (m *Machine) LoadImage(img *rom.Image) error {
	if img == nil {
		return ErrNoProgram
	}
	if img.Size > rom.MaxSize || len(img.Data) > rom.MaxSize {
		return fmt.Errorf("%w: %d bytes", rom.ErrTooLarge, len(img.Data))
	}
	m.img = img
	m.romPath = img.Path
	if m.cfg.Palette == "" {
		// no match falls back to the default palette
		name, _ := autoPalette(img)
		_, m.palette, _ = display.PaletteByName(name)
	}
	return m.Reset()
}

// ROMPath returns the currently loaded program file path, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// Image returns the loaded program image, or nil.
func (m *Machine) Image() *rom.Image { return m.img }

// Reset restarts the loaded program from power-on state. With a fixed seed
// the RND sequence restarts too.
func (m *Machine) Reset() error {
	m.cpu.Reset()
	m.fault = nil
	if m.cfg.Seed != 0 {
		m.rng.Reseed(m.cfg.Seed)
	}
	if m.img == nil {
		return nil
	}
	return m.bus.Load(cpu.StartAddress, m.img.Data)
}

// Fault returns the error that stopped the machine, or nil while it runs.
func (m *Machine) Fault() error { return m.fault }

// Cycle executes one instruction. A faulted machine does nothing and
// returns the fault until Reset.
func (m *Machine) Cycle() error {
	if m.fault != nil {
		return m.fault
	}
	if m.cfg.Trace {
		pc := m.cpu.PC
		w := m.bus.Read16(pc)
		m.log.Debug("exec",
			slog.String("pc", fmt.Sprintf("%03X", pc)),
			slog.String("op", fmt.Sprintf("%04X", w)),
			slog.String("asm", disasm.Word(w)),
		)
	}
	if err := m.cpu.Cycle(); err != nil {
		m.fault = fmt.Errorf("pc %#04x opcode %#04x: %w", m.cpu.PC, m.cpu.Opcode, err)
		return m.fault
	}
	return nil
}

// StepFrame runs one 60 Hz frame: CyclesPerFrame instructions, then one
// timer tick. It stops at the first fault and skips the tick.
func (m *Machine) StepFrame() error {
	for i := 0; i < m.cfg.CyclesPerFrame; i++ {
		if err := m.Cycle(); err != nil {
			return err
		}
	}
	m.cpu.TickTimers()
	return nil
}

// CPU exposes the processor for tools and tests.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }

// --- Keypad ---

// SetKey sets the state of hex key k (0x0-0xF).
func (m *Machine) SetKey(k int, down bool) {
	if k >= 0 && k < cpu.NumKeys {
		m.cpu.Keypad[k] = down
	}
}

// SetKeys replaces the whole keypad state.
func (m *Machine) SetKeys(keys [cpu.NumKeys]bool) { m.cpu.Keypad = keys }

func (m *Machine) Keys() [cpu.NumKeys]bool { return m.cpu.Keypad }

// --- Video ---

// Video returns the live framebuffer.
func (m *Machine) Video() *display.Framebuffer { return m.fb }

// Framebuffer returns the screen as RGBA bytes in the current palette. The
// slice is reused between calls.
func (m *Machine) Framebuffer() []byte {
	m.fb.FillRGBA(m.rgba, m.Palette())
	return m.rgba
}

// Palette returns the active palette.
func (m *Machine) Palette() display.Palette { return display.Palettes[m.palette] }

// PaletteName returns the active palette name.
func (m *Machine) PaletteName() string { return m.Palette().Name }

// SetPalette selects a palette by name and reports whether it exists.
// The choice sticks across program loads.
func (m *Machine) SetPalette(name string) bool {
	_, idx, ok := display.PaletteByName(name)
	if ok {
		m.palette = idx
		m.cfg.Palette = display.Palettes[idx].Name
		m.fb.SetDirty()
	}
	return ok
}

// CyclePalette moves dir steps through the palette list and returns the new
// name. Like SetPalette, it turns off the per-program palette.
func (m *Machine) CyclePalette(dir int) string {
	n := len(display.Palettes)
	m.palette = ((m.palette+dir)%n + n) % n
	m.cfg.Palette = display.Palettes[m.palette].Name
	m.fb.SetDirty()
	return m.PaletteName()
}

// Screenshot writes the screen as a PNG scaled by scale.
func (m *Machine) Screenshot(path string, scale int) error {
	return m.fb.SavePNG(path, m.Palette(), scale)
}

// --- Timers ---

func (m *Machine) DelayTimer() byte { return m.cpu.DelayTimer }
func (m *Machine) SoundTimer() byte { return m.cpu.SoundTimer }

// Beeping reports whether the buzzer should sound.
func (m *Machine) Beeping() bool { return m.cpu.SoundTimer > 0 }

// --- Snapshots ---

// Snapshot is an in-memory copy of the complete machine, for quick
// save/restore within a session. It is never written to disk.
type Snapshot struct {
	image *rom.Image

	V          [16]byte
	I, PC      uint16
	Stack      [cpu.StackSize]uint16
	SP         byte
	DelayTimer byte
	SoundTimer byte
	Keypad     [cpu.NumKeys]bool
	Opcode     uint16

	memory []byte
	pixels [display.Width * display.Height]uint32
	rng    []byte
}

// Image is the program the snapshot was taken from.
func (s *Snapshot) Image() *rom.Image { return s.image }

// Snapshot captures the machine running the loaded program.
func (m *Machine) Snapshot() (*Snapshot, error) {
	if m.img == nil {
		return nil, ErrNoProgram
	}
	rng, err := m.rng.MarshalBinary()
	if err != nil {
		return nil, err
	}
	c := m.cpu
	return &Snapshot{
		image:      m.img,
		V:          c.V,
		I:          c.I,
		PC:         c.PC,
		Stack:      c.Stack,
		SP:         c.SP,
		DelayTimer: c.DelayTimer,
		SoundTimer: c.SoundTimer,
		Keypad:     c.Keypad,
		Opcode:     c.Opcode,
		memory:     m.bus.Snapshot(),
		pixels:     m.fb.Pixels,
		rng:        rng,
	}, nil
}

// Restore returns to a snapshot of the loaded program. A snapshot of another
// program is refused and nothing changes.
func (m *Machine) Restore(s *Snapshot) error {
	if m.img == nil {
		return ErrNoProgram
	}
	if s == nil || s.image == nil || s.image.SHA1 != m.img.SHA1 {
		return ErrSnapshotMismatch
	}
	// checked up front so a bad snapshot changes nothing
	if len(s.memory) != bus.MemorySize {
		return fmt.Errorf("%w: memory is %d bytes", ErrSnapshotCorrupt, len(s.memory))
	}
	if err := m.rng.UnmarshalBinary(s.rng); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if err := m.bus.Restore(s.memory); err != nil {
		return err
	}
	c := m.cpu
	c.V, c.I, c.PC = s.V, s.I, s.PC
	c.Stack, c.SP = s.Stack, s.SP
	c.DelayTimer, c.SoundTimer = s.DelayTimer, s.SoundTimer
	c.Keypad, c.Opcode = s.Keypad, s.Opcode
	m.fb.Pixels = s.pixels
	m.fb.SetDirty()
	m.fault = nil
	return nil
}
