package emu

// DefaultCyclesPerFrame gives 600 instructions per second at 60 frames.
const DefaultCyclesPerFrame = 10

// Config contains settings that affect emulation behavior.
type Config struct {
	CyclesPerFrame int    // instructions executed per 60 Hz frame
	Trace          bool   // log every instruction at debug level
	Seed           uint64 // RND seed; 0 seeds from the clock
	Palette        string // palette name; empty picks one from the program name
}

// Defaults fills unset fields.
func (c Config) Defaults() Config {
	if c.CyclesPerFrame <= 0 {
		c.CyclesPerFrame = DefaultCyclesPerFrame
	}
	return c
}
