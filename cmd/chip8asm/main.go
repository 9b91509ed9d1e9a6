package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/asm"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
)

type CLIFlags struct {
	Output      string
	Listing     string
	Disassemble bool
	Verbose     bool
	Defines     map[string]int
}

func parseFlags() CLIFlags {
	f := CLIFlags{Defines: map[string]int{}}
	flag.StringVar(&f.Output, "o", "", "output file (default: input with .ch8, or .asm with -d)")
	flag.StringVar(&f.Listing, "l", "", "write an address/bytes listing to this file ('-' for stdout)")
	flag.BoolVar(&f.Disassemble, "d", false, "disassemble a program image instead of assembling")
	flag.BoolVar(&f.Verbose, "v", false, "log each source line while assembling")
	flag.Func("D", "predefine a symbol, NAME=VALUE (repeatable)", func(s string) error {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return fmt.Errorf("want NAME=VALUE, got %q", s)
		}
		v, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return err
		}
		f.Defines[name] = int(v)
		return nil
	})
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] input\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	return f
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func assemble(f CLIFlags, input string) error {
	src, err := os.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	a := asm.Assembler{Verbose: f.Verbose}
	for name, v := range f.Defines {
		a.Predefine(name, v)
	}
	prog, err := a.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if len(prog.Bytes) > rom.MaxSize {
		return fmt.Errorf("%s: %w", input, rom.ErrTooLarge)
	}

	out := f.Output
	if out == "" {
		out = withExt(input, ".ch8")
	}
	if err := os.WriteFile(out, prog.Bytes, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s (%d bytes, %d labels)", out, len(prog.Bytes), len(prog.Labels))

	if f.Listing != "" {
		return writeListing(f.Listing, disasm.Listing(prog.Bytes, prog.Origin))
	}
	return nil
}

func disassemble(f CLIFlags, input string) error {
	img, err := rom.Read(input)
	if err != nil {
		return err
	}
	lines := disasm.Listing(img.Data, rom.LoadAddress)

	out := f.Output
	if out == "" {
		out = withExt(input, ".asm")
	}
	if out == "-" {
		fmt.Print(disasm.Source(lines))
	} else {
		if err := os.WriteFile(out, []byte(disasm.Source(lines)), 0o644); err != nil {
			return err
		}
		log.Printf("wrote %s (%d lines)", out, len(lines))
	}
	if f.Listing != "" {
		return writeListing(f.Listing, lines)
	}
	return nil
}

func writeListing(path string, lines []disasm.Line) error {
	if path == "-" {
		return disasm.Write(os.Stdout, lines)
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := disasm.Write(w, lines); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func main() {
	f := parseFlags()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	run := assemble
	if f.Disassemble {
		run = disassemble
	}
	if err := run(f, input); err != nil {
		log.Fatal(err)
	}
}
