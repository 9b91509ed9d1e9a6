package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/term"
)

func main() {
	romPath := flag.String("rom", "", "path to program (.ch8)")
	cycles := flag.Int("cycles", emu.DefaultCyclesPerFrame, "instructions per 60 Hz frame")
	seed := flag.Uint64("seed", 0, "random seed for RND; 0 seeds from the clock")
	layout := flag.String("keys", term.DefaultLayout, "16 characters bound to keypad digits 0-F")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	m := emu.New(emu.Config{CyclesPerFrame: *cycles, Seed: *seed})
	if err := m.LoadROM(*romPath); err != nil {
		log.Fatal(err)
	}

	t, err := term.Open(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	if err := t.RawMode(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = term.NewHost(m, *layout).Run(ctx, os.Stdin)
	stop()
	if rerr := t.Restore(); rerr != nil {
		log.Printf("restore terminal: %v", rerr)
	}
	if err != nil && err != context.Canceled {
		log.Fatal(err)
	}
	if f := m.Fault(); f != nil {
		log.Printf("halted: %v", f)
	}
}
