package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

const (
	maxScale  = 20
	maxCycles = 1000
)

const mainMenuItems = 7

func (a *App) updateMenu() {
	switch a.menuMode {
	case "slot":
		a.updateSlotMenu()
	case "rom":
		a.updateRomMenu()
	case "settings":
		a.updateSettingsMenu()
	case "keys":
		a.updateKeysMenu()
	default:
		a.updateMainMenu()
	}
}

func back() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
}

func (a *App) moveSelection(n int) {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < n-1 {
		a.menuIdx++
	}
}

func (a *App) updateMainMenu() {
	a.moveSelection(mainMenuItems)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch a.menuIdx {
		case 0:
			a.saveSlotToast(a.currentSlot)
		case 1:
			a.loadSlotToast(a.currentSlot)
		case 2:
			a.menuMode = "slot"
			a.menuIdx = a.currentSlot
		case 3:
			a.romList = findROMs(a.cfg.ROMsDir)
			a.romSel = 0
			a.romOff = 0
			a.menuMode = "rom"
		case 4:
			a.menuMode = "settings"
			a.menuIdx = 0
		case 5:
			a.menuMode = "keys"
			a.keysOff = 0
		case 6:
			a.showMenu = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

func (a *App) updateSlotMenu() {
	a.moveSelection(numSlots)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.currentSlot = a.menuIdx
		a.toast(translate.From("Slot set to %d", a.currentSlot+1))
		a.menuMode = "main"
	}
	if back() {
		a.menuMode = "main"
		a.menuIdx = 2
	}
}

// romRows is how many program names fit below the rom menu header.
func (a *App) romRows() int {
	rows := (a.curH - 40) / lineH
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a *App) updateRomMenu() {
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || back() {
			a.menuMode = "main"
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	a.romOff = scrollWindow(a.romSel, a.romOff, a.romRows(), n)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.loadROM(a.romList[a.romSel])
		a.menuMode = "main"
		a.showMenu = false
	}
	if back() {
		a.menuMode = "main"
	}
}

// scrollWindow keeps sel inside [off, off+rows) and returns the new offset.
func scrollWindow(sel, off, rows, n int) int {
	if sel < off {
		off = sel
	}
	if sel >= off+rows {
		off = sel - rows + 1
	}
	if off > n-1 {
		off = n - 1
	}
	if off < 0 {
		off = 0
	}
	return off
}

func (a *App) updateKeysMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.keysOff > 0 {
		a.keysOff--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.keysOff < len(a.keys)-1 {
		a.keysOff++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || back() {
		a.menuMode = "main"
		a.menuIdx = 5
	}
}

const settingsItems = 3

func (a *App) updateSettingsMenu() {
	a.moveSelection(settingsItems)
	dir := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		dir = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		dir = 1
	}
	if dir != 0 {
		switch a.menuIdx {
		case 0: // Scale
			a.cfg.Scale = clamp(a.cfg.Scale+dir, 1, maxScale)
			a.applyWindowSize()
		case 1: // Speed
			step := 1
			if a.cfg.CyclesPerFrame >= 20 {
				step = 5
			}
			a.cfg.CyclesPerFrame = clamp(a.cfg.CyclesPerFrame+dir*step, 1, maxCycles)
			a.m.SetCyclesPerFrame(a.cfg.CyclesPerFrame)
		case 2: // Palette
			a.cfg.Palette = a.m.CyclePalette(dir)
		}
		a.saveSettings()
	}
	if back() {
		a.menuMode = "main"
		a.menuIdx = 4
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// findROMs lists the .ch8 programs directly inside dir, sorted by name.
func findROMs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".ch8", ".c8":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

func paletteLabel(name string) string {
	if _, idx, ok := display.PaletteByName(name); ok {
		return translate.From("%s (%d/%d)", name, idx+1, len(display.Palettes))
	}
	return name
}
