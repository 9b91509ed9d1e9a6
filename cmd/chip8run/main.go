package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to program (.ch8)")
	steps := flag.Int("steps", 1_000_000, "max instructions to run")
	cyclesPerFrame := flag.Int("cycles", emu.DefaultCyclesPerFrame, "instructions between timer ticks")
	seed := flag.Uint64("seed", 1, "random seed for RND; 0 seeds from the clock")
	trace := flag.Bool("trace", false, "print PC, opcode, mnemonic and registers")
	until := flag.String("until", "", "stop when PC reaches this address (hex, e.g. 0x2F0)")
	loop := flag.Bool("loop", true, "stop when a jump targets itself")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	dump := flag.Bool("dump", false, "print the screen and registers when done")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	m := emu.New(emu.Config{CyclesPerFrame: *cyclesPerFrame, Seed: *seed})
	if err := m.LoadROM(*romPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("ROM: %s", m.Image())

	stopPC := -1
	if *until != "" {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(*until), "0x"), 16, 16)
		if err != nil {
			log.Fatalf("-until: %v", err)
		}
		stopPC = int(v)
	}

	c := m.CPU()
	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	code := 0
	i := 0
	reason := "step limit"
	for ; i < *steps; i++ {
		pc := c.PC
		if int(pc) == stopPC {
			reason = fmt.Sprintf("reached %03X", pc)
			break
		}
		if *trace {
			w := c.Bus().Read16(pc)
			fmt.Printf("PC=%03X OP=%04X %-16s I=%03X SP=%X DT=%02X ST=%02X V=% X\n",
				pc, w, disasm.Word(w), c.I, c.SP, c.DelayTimer, c.SoundTimer, c.V[:])
		}
		if err := m.Cycle(); err != nil {
			reason = err.Error()
			code = 1
			if errors.Is(err, cpu.ErrStackOverflow) {
				reason += " (unbalanced CALL recursion?)"
			}
			break
		}
		if *loop && c.PC == pc && cpu.Decode(c.Opcode).Op == cpu.OpJP {
			reason = fmt.Sprintf("spin at %03X", pc)
			i++
			break
		}
		// timers run at the host cadence: one tick per frame worth of instructions
		if (i+1)%m.Config().CyclesPerFrame == 0 {
			c.TickTimers()
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			reason = "timeout"
			code = 2
			break
		}
	}

	if *dump {
		fmt.Print(m.Video().String())
		fmt.Printf("PC=%03X I=%03X SP=%X DT=%02X ST=%02X\nV=% X\n", c.PC, c.I, c.SP, c.DelayTimer, c.SoundTimer, c.V[:])
	}
	fmt.Printf("\nDone (%s): steps=%d fb_crc32=%08x elapsed=%s\n", reason, i, m.Video().CRC32(), time.Since(start).Truncate(time.Millisecond))
	os.Exit(code)
}
