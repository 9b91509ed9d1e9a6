package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

const (
	fastForwardFrames = 5
	numSlots          = 4
	toastDuration     = 2 * time.Second
)

// App is the windowed host. Each Update is one 60 Hz frame.
type App struct {
	cfg        Config
	configPath string
	m          *emu.Machine
	keys       KeyMap
	tex        *ebiten.Image
	paused     bool
	fast       bool

	// overlay/menu
	showMenu    bool
	menuMode    string // "main", "slot", "rom", "settings", "keys"
	menuIdx     int
	currentSlot int
	slots       [numSlots]*emu.Snapshot
	slotTimes   [numSlots]time.Time
	romList     []string
	romSel      int
	romOff      int
	keysOff     int

	toastMsg   string
	toastUntil time.Time

	curW, curH int
}

// NewApp wires the machine to a window. configPath is where settings
// changes are written back; empty disables saving.
func NewApp(cfg Config, configPath string, m *emu.Machine) (*App, error) {
	cfg.Defaults()
	keys, err := ParseKeyMap(cfg.Keys)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, configPath: configPath, m: m, keys: keys, menuMode: "main"}
	m.SetCyclesPerFrame(cfg.CyclesPerFrame)
	if cfg.Palette != "" && !m.SetPalette(cfg.Palette) {
		log.Printf("chip8emu: unknown palette %q", cfg.Palette)
	}
	ebiten.SetWindowTitle(a.windowTitle())
	ebiten.SetWindowSize(display.Width*cfg.Scale, display.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return a, nil
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) windowTitle() string {
	if img := a.m.Image(); img != nil {
		return a.cfg.Title + " - [" + img.Name + "]"
	}
	return a.cfg.Title
}

func (a *App) Update() error {
	// Toggle menu (Escape)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && (!a.showMenu || a.menuMode == "main") {
		a.showMenu = !a.showMenu
		a.menuMode = "main"
		a.menuIdx = 0
		return nil
	}
	if a.showMenu {
		a.updateMenu()
		return nil
	}

	// Keyboard -> hex keypad
	a.m.SetKeys(a.keys.Pressed())

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
		a.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.saveSlotToast(a.currentSlot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.loadSlotToast(a.currentSlot)
	}
	for i, k := range []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4} {
		if inpututil.IsKeyJustPressed(k) {
			a.currentSlot = i
			a.toast(translate.From("Slot set to %d", i+1))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		a.toast(translate.From("Palette: %s", a.m.CyclePalette(-1)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		a.toast(translate.From("Palette: %s", a.m.CyclePalette(1)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if path, err := a.saveScreenshot(); err != nil {
			a.toast(translate.From("Screenshot failed: %v", err))
		} else {
			a.toast(translate.From("Saved %s", filepath.Base(path)))
		}
	}

	switch {
	case a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN):
		a.stepFrames(1)
	case a.paused:
	case a.fast:
		a.stepFrames(fastForwardFrames)
	default:
		a.stepFrames(1)
	}
	return nil
}

// stepFrames runs n frames; a fault pauses the app and is shown as a toast.
func (a *App) stepFrames(n int) {
	if a.m.Image() == nil {
		return
	}
	for i := 0; i < n; i++ {
		if err := a.m.StepFrame(); err != nil {
			a.paused = true
			a.toast(translate.From("Halted: %v (F6 to reset)", err))
			log.Printf("chip8emu: %v", err)
			return
		}
	}
}

func (a *App) reset() {
	if err := a.m.Reset(); err != nil {
		a.toast(translate.From("Reset failed: %v", err))
		return
	}
	a.paused = false
	a.toast(translate.From("Reset"))
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.Width, display.Height)
	}
	fb := a.m.Video()
	if fb.Dirty() || a.paused {
		a.tex.WritePixels(a.m.Framebuffer())
		fb.ClearDirty()
	}

	screen.Fill(a.m.Palette().Off)
	scale, offX, offY := a.viewport()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offX, offY)
	screen.DrawImage(a.tex, op)

	// Visual buzzer: a small square in the top-right corner while the sound timer runs.
	if a.m.Beeping() {
		s := a.curW / 40
		if s < 6 {
			s = 6
		}
		r := image.Rect(a.curW-s-4, 4, a.curW-4, 4+s)
		screen.SubImage(r).(*ebiten.Image).Fill(color.RGBA{0xFF, 0x40, 0x40, 0xFF})
	}

	if a.paused && !a.showMenu {
		ebitenutil.DebugPrintAt(screen, translate.From("PAUSED (P resume, N step)"), 10, a.curH-20)
	}

	if a.showMenu {
		overlay := ebiten.NewImage(a.curW, a.curH)
		overlay.Fill(color.RGBA{0, 0, 0, 176})
		screen.DrawImage(overlay, nil)
		overlay.Deallocate()
		a.drawMenu(screen)
	}

	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		msg := truncateText(a.toastMsg, maxCharsForText(a.curW, 10))
		ebitenutil.DebugPrintAt(screen, msg, 10, a.curH-36)
	}
}

// viewport fits the 64x32 screen into the window, keeping the aspect ratio.
func (a *App) viewport() (scale, offX, offY float64) {
	sx := float64(a.curW) / display.Width
	sy := float64(a.curH) / display.Height
	scale = min(sx, sy)
	offX = (float64(a.curW) - scale*display.Width) / 2
	offY = (float64(a.curH) - scale*display.Height) / 2
	return scale, offX, offY
}

func (a *App) Layout(outW, outH int) (int, int) {
	a.curW, a.curH = outW, outH
	return outW, outH
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(toastDuration)
}

// saveSlot keeps a snapshot of the running program for this session.
func (a *App) saveSlot(slot int) error {
	snap, err := a.m.Snapshot()
	if err != nil {
		return err
	}
	a.slots[slot] = snap
	a.slotTimes[slot] = time.Now()
	return nil
}

func (a *App) loadSlot(slot int) error {
	return a.m.Restore(a.slots[slot])
}

func (a *App) saveSlotToast(slot int) {
	if err := a.saveSlot(slot); err != nil {
		a.toast(translate.From("Save failed: %v", err))
		return
	}
	a.toast(translate.From("Saved slot %d", slot+1))
}

func (a *App) loadSlotToast(slot int) {
	if a.slots[slot] == nil {
		a.toast(translate.From("Slot is empty"))
		return
	}
	if err := a.loadSlot(slot); err != nil {
		a.toast(translate.From("Load failed: %v", err))
		return
	}
	a.paused = false
	a.toast(translate.From("Loaded slot %d", slot+1))
}

func (a *App) saveScreenshot() (string, error) {
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	if img := a.m.Image(); img != nil {
		name = fmt.Sprintf("%s_%s.png", strings.ReplaceAll(img.Name, " ", "_"), ts)
	}
	path := filepath.Join(a.cfg.ScreenshotDir, name)
	return path, a.m.Screenshot(path, a.cfg.Scale)
}

// loadROM switches to the program at path.
func (a *App) loadROM(path string) {
	if err := a.m.LoadROM(path); err != nil {
		a.toast(translate.From("Load failed: %v", err))
		return
	}
	a.paused = false
	a.slots = [numSlots]*emu.Snapshot{}
	a.slotTimes = [numSlots]time.Time{}
	ebiten.SetWindowTitle(a.windowTitle())
	a.toast(translate.From("Loaded %s", filepath.Base(path)))
}

// saveSettings writes the config back when a path was given.
func (a *App) saveSettings() {
	if a.configPath == "" {
		return
	}
	if err := a.cfg.Save(a.configPath); err != nil {
		a.toast(translate.From("Settings not saved: %v", err))
	}
}

func (a *App) applyWindowSize() {
	ebiten.SetWindowSize(display.Width*a.cfg.Scale, display.Height*a.cfg.Scale)
}
