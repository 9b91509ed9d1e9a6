package emu

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// findROMs recursively collects .ch8 files under dir.
func findROMs(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".ch8") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// runROM executes a program for maxFrames frames and fails on any fault.
func runROM(t *testing.T, romPath string, maxFrames int) {
	t.Helper()
	m := New(Config{Seed: 1})
	if err := m.LoadROM(romPath); err != nil {
		t.Fatalf("load ROM: %v", err)
	}
	for i := 0; i < maxFrames; i++ {
		if err := m.StepFrame(); err != nil {
			t.Fatalf("%s faulted in frame %d: %v", filepath.Base(romPath), i, err)
		}
	}
	t.Logf("%s: %d frames, screen crc32 %08x", filepath.Base(romPath), maxFrames, m.Video().CRC32())
}

// moduleRoot walks up from this file to the directory containing go.mod.
func moduleRoot() string {
	if _, file, _, ok := runtime.Caller(0); ok {
		dir := filepath.Dir(file)
		for {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				return dir
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// TestROMSuite runs every .ch8 under CHIP8_ROM_DIR (or testroms/ at the
// module root) and requires that none of them fault.
func TestROMSuite(t *testing.T) {
	// Opt-in via env to avoid long test runs by default.
	if os.Getenv("RUN_ROMS") == "" && os.Getenv("CHIP8_ROM_DIR") == "" {
		t.Skip("set RUN_ROMS=1 and place programs under testroms/ or set CHIP8_ROM_DIR to run")
	}

	base := os.Getenv("CHIP8_ROM_DIR")
	if base == "" {
		base = filepath.Join(moduleRoot(), "testroms")
	}
	if _, err := os.Stat(base); err != nil {
		t.Skipf("ROM dir missing: %s", base)
	}

	roms, err := findROMs(base)
	if err != nil {
		t.Fatalf("scan ROMs: %v", err)
	}
	if len(roms) == 0 {
		t.Skipf("no ROMs found in %s", base)
	}

	maxFrames := 600
	if v := os.Getenv("CHIP8_MAX_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxFrames = n
		}
	}

	for _, rom := range roms {
		name := strings.TrimSuffix(filepath.Base(rom), filepath.Ext(rom))
		t.Run(name, func(t *testing.T) { runROM(t, rom, maxFrames) })
	}
}
