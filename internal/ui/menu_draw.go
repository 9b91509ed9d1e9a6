package ui

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

func (a *App) drawMenu(screen *ebiten.Image) {
	switch a.menuMode {
	case "slot":
		a.drawSlotMenu(screen)
	case "rom":
		a.drawRomMenu(screen)
	case "settings":
		a.drawSettingsMenu(screen)
	case "keys":
		a.drawKeysMenu(screen)
	default:
		a.drawMainMenu(screen)
	}
}

// drawList prints title lines then items, marking the selected one.
func (a *App) drawList(screen *ebiten.Image, title string, items []string, sel int) int {
	y := 10
	for _, l := range wrapText(title, maxCharsForText(a.curW, 10)) {
		ebitenutil.DebugPrintAt(screen, l, 10, y)
		y += lineH
	}
	width := maxCharsForText(a.curW, 10) - 2
	for i, s := range items {
		prefix := "  "
		if i == sel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+truncateText(s, width), 10, y)
		y += lineH
	}
	return y
}

func (a *App) drawMainMenu(screen *ebiten.Image) {
	items := []string{
		translate.From("Save state (slot %d)", a.currentSlot+1),
		translate.From("Load state (slot %d)", a.currentSlot+1),
		translate.From("Select slot"),
		translate.From("Switch program"),
		translate.From("Settings"),
		translate.From("Keypad"),
		translate.From("Close"),
	}
	y := a.drawList(screen, translate.From("Menu:"), items, a.menuIdx)
	hint := "F5: Save  F9: Load  F1-F4: Slot  F11: Fullscreen  Backspace: Back"
	ebitenutil.DebugPrintAt(screen, truncateText(hint, maxCharsForText(a.curW, 10)), 10, y)
}

func (a *App) drawSlotMenu(screen *ebiten.Image) {
	items := make([]string, numSlots)
	for i := range items {
		state := "[empty]"
		if a.slots[i] != nil {
			state = a.slotTimes[i].Format("15:04:05")
		}
		items[i] = fmt.Sprintf("%d %s", i+1, state)
	}
	a.drawList(screen, translate.From("Select slot:"), items, a.menuIdx)
}

func (a *App) drawRomMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, translate.From("Select program (Enter to load, Backspace/Esc to return)"), 10, 10)
	ebitenutil.DebugPrintAt(screen, truncateText("Dir: "+a.cfg.ROMsDir, maxCharsForText(a.curW, 10)), 10, 24)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, translate.From("No programs found"), 10, 40)
		return
	}
	baseY := 40
	rows := a.romRows()
	end := min(a.romOff+rows, len(a.romList))
	width := maxCharsForText(a.curW, 10) - 2
	for i, p := range a.romList[a.romOff:end] {
		prefix := "  "
		if a.romOff+i == a.romSel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+truncateText(filepath.Base(p), width), 10, baseY+i*lineH)
	}
	if a.romOff > 0 {
		ebitenutil.DebugPrintAt(screen, "^", 2, baseY)
	}
	if end < len(a.romList) {
		ebitenutil.DebugPrintAt(screen, "v", 2, baseY+(rows-1)*lineH)
	}
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	rows := a.keys.Lines()
	rows = append(rows,
		"",
		"P: Pause  N: Step frame  Tab: Fast-forward",
		"F6: Reset  F12: Screenshot  [ ]: Palette",
		"F5: Save state  F9: Load state",
	)
	a.drawList(screen, translate.From("Keypad (Up/Down to scroll, Backspace/Esc to return)"), rows[a.keysOff:], -1)
}

func (a *App) drawSettingsMenu(screen *ebiten.Image) {
	items := []string{
		translate.From("Scale: %dx", a.cfg.Scale),
		translate.From("Speed: %d cycles/frame", a.cfg.CyclesPerFrame),
		translate.From("Palette: %s", paletteLabel(a.m.PaletteName())),
	}
	a.drawList(screen, translate.From("Settings (Up/Down select; Left/Right change; Backspace/Esc: back)"), items, a.menuIdx)
}
