package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config contains window/input related settings. It is persisted as TOML.
type Config struct {
	Title          string `toml:"title"`            // window title
	Scale          int    `toml:"scale"`            // integer upscaling factor
	CyclesPerFrame int    `toml:"cycles_per_frame"` // instructions per 60 Hz frame
	Palette        string `toml:"palette"`          // empty picks one per program
	ROMsDir        string `toml:"roms_dir"`         // directory to browse for programs
	ScreenshotDir  string `toml:"screenshot_dir"`
	// Keys maps hex keypad digits ("0".."F") to keyboard key names.
	Keys map[string]string `toml:"keys"`
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
	if c.CyclesPerFrame <= 0 {
		c.CyclesPerFrame = 10
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "."
	}
	if c.Keys == nil {
		c.Keys = DefaultKeyNames()
	}
}

// LoadConfig reads a TOML config file. A missing file yields defaults.
func LoadConfig(path string) (Config, error) {
	var c Config
	if path != "" {
		_, err := toml.DecodeFile(path, &c)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	c.Defaults()
	return c, nil
}

// Save writes the config as TOML, creating the parent directory.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
