package emu

import (
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
)

// paletteTitleExact maps normalized program names to a preferred palette.
var paletteTitleExact = map[string]string{
	"PONG":     "green",
	"PONG2":    "green",
	"INVADERS": "green",
	"TETRIS":   "blue",
	"BLITZ":    "blue",
	"UFO":      "blue",
	"CONNECT4": "blue",
	"BRIX":     "amber",
	"BREAKOUT": "amber",
	"MISSILE":  "amber",
	"WIPEOFF":  "amber",
	"TANK":     "dmg",
	"BLINKY":   "dmg",
	"MAZE":     "paper",
	"KALEID":   "paper",
	"TICTAC":   "paper",
	"HIDDEN":   "paper",
}

type containsRule struct {
	substr  string
	palette string
}

// paletteTitleContains applies broader substring heuristics for families.
var paletteTitleContains = []containsRule{
	{"PONG", "green"},
	{"INVADER", "green"},
	{"TETRIS", "blue"},
	{"BRIX", "amber"},
	{"BREAKOUT", "amber"},
	{"MAZE", "paper"},
	{"TEST", "mono"},
}

// normalizeTitle upper-cases a program name and drops bracketed suffixes
// such as "(Paul Vervalin, 1990)" and separators.
func normalizeTitle(name string) string {
	if i := strings.IndexAny(name, "([{"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToUpper(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(name)
}

// autoPalette picks a palette for img from its name. The second result is
// false when nothing matched.
func autoPalette(img *rom.Image) (string, bool) {
	if img == nil {
		return "", false
	}
	t := normalizeTitle(img.Name)
	if t == "" {
		return "", false
	}
	if p, ok := paletteTitleExact[t]; ok {
		return p, true
	}
	for _, r := range paletteTitleContains {
		if strings.Contains(t, r.substr) {
			return r.palette, true
		}
	}
	return "", false
}
