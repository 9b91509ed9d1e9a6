package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/ui"
)

type CLIFlags struct {
	ROMPath    string
	ConfigPath string
	Scale      int
	Title      string
	Cycles     int
	Seed       uint64
	Palette    string
	Trace      bool

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to program (.ch8)")
	flag.StringVar(&f.ConfigPath, "config", "chip8emu.toml", "settings file (created on first change)")
	flag.IntVar(&f.Scale, "scale", 0, "window scale (overrides config)")
	flag.StringVar(&f.Title, "title", "", "window title (overrides config)")
	flag.IntVar(&f.Cycles, "cycles", 0, "instructions per 60 Hz frame (overrides config)")
	flag.Uint64Var(&f.Seed, "seed", 0, "random seed for RND; 0 seeds from the clock")
	flag.StringVar(&f.Palette, "palette", "", "color palette (mono, green, amber, dmg, blue, paper)")
	flag.BoolVar(&f.Trace, "trace", false, "log every executed instruction")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	return f
}

func runHeadless(m *emu.Machine, frames int, pngPath, expectCRC string, scale int) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	ran := 0
	for ; ran < frames; ran++ {
		if err := m.StepFrame(); err != nil {
			log.Printf("headless: stopped at frame %d: %v", ran, err)
			break
		}
	}
	dur := time.Since(start)

	crc := m.Video().CRC32()
	fps := float64(ran) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		ran, dur.Truncate(time.Millisecond), fps, crc)

	if pngPath != "" {
		if err := m.Screenshot(pngPath, scale); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngPath)
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return m.Fault()
}

func main() {
	f := parseFlags()

	cfg, err := ui.LoadConfig(f.ConfigPath)
	if err != nil {
		log.Fatal(err)
	}
	if f.Scale > 0 {
		cfg.Scale = f.Scale
	}
	if f.Title != "" {
		cfg.Title = f.Title
	}
	if f.Cycles > 0 {
		cfg.CyclesPerFrame = f.Cycles
	}
	if f.Palette != "" {
		cfg.Palette = f.Palette
	}

	m := emu.New(emu.Config{
		CyclesPerFrame: cfg.CyclesPerFrame,
		Trace:          f.Trace,
		Seed:           f.Seed,
		Palette:        cfg.Palette,
	})
	if f.Trace {
		m.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		log.Printf("messages: %s", translate.Language())
	}

	if f.ROMPath != "" {
		if err := m.LoadROM(f.ROMPath); err != nil {
			log.Fatalf("load rom: %v", err)
		}
		log.Printf("ROM: %s palette=%s", m.Image(), m.PaletteName())
	}

	if f.Headless {
		if m.Image() == nil {
			log.Fatal("-rom is required in headless mode")
		}
		if err := runHeadless(m, f.Frames, f.PNGOut, f.Expect, cfg.Scale); err != nil {
			log.Fatal(err)
		}
		return
	}

	app, err := ui.NewApp(cfg, f.ConfigPath, m)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
