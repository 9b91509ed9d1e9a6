package term

import (
	"context"
	"io"
	"time"

	tm "github.com/buger/goterm"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

const (
	keyCtrlC = 0x03
	keyCtrlP = 0x10
	keyCtrlR = 0x12
	keyEsc   = 0x1B
)

// FrameRate is the host cadence; timers tick once per frame.
const FrameRate = 60

// Host drives a machine from raw terminal bytes and redraws it with goterm.
type Host struct {
	m      *emu.Machine
	keys   *Keypad
	paused bool
	status string
	quit   bool
	drawn  bool
}

func NewHost(m *emu.Machine, layout string) *Host {
	return &Host{m: m, keys: NewKeypad(layout)}
}

// Input handles one read from the terminal. A lone Esc or Ctrl-C quits;
// Ctrl-R resets and Ctrl-P toggles pause. Escape sequences (arrow keys)
// are ignored.
func (h *Host) Input(b []byte) {
	if len(b) > 1 && b[0] == keyEsc {
		return
	}
	for _, c := range b {
		switch c {
		case keyEsc, keyCtrlC:
			h.quit = true
		case keyCtrlR:
			if err := h.m.Reset(); err != nil {
				h.status = err.Error()
			} else {
				h.paused = false
				h.status = translate.From("reset")
			}
		case keyCtrlP:
			h.paused = !h.paused
		default:
			h.keys.Press(c)
		}
	}
}

// Quit reports whether the user asked to leave.
func (h *Host) Quit() bool { return h.quit }

// Frame advances one 60 Hz frame: keypad decay, one machine frame.
// A fault pauses the host and is shown on the status line.
func (h *Host) Frame() {
	h.m.SetKeys(h.keys.State())
	h.keys.Tick()
	if h.paused || h.m.Image() == nil {
		return
	}
	if err := h.m.StepFrame(); err != nil {
		h.paused = true
		h.status = translate.From("halted: %v (Ctrl-R to reset)", err)
	}
}

// Draw repaints the screen when the framebuffer changed since the last draw.
func (h *Host) Draw() {
	fb := h.m.Video()
	if h.drawn && !fb.Dirty() {
		return
	}
	fb.ClearDirty()
	h.drawn = true

	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Print(Render(fb, "\r\n"))
	tm.Print("\r\n")
	tm.Print(tm.Color(h.statusLine(), tm.CYAN))
	tm.Print("\r\n")
	tm.Flush()
}

func (h *Host) statusLine() string {
	name := "-"
	if img := h.m.Image(); img != nil {
		name = img.Name
	}
	line := translate.From("%s  Esc quit  Ctrl-R reset  Ctrl-P pause", name)
	if h.paused {
		line += "  " + translate.From("[paused]")
	}
	if h.m.Beeping() {
		line += "  *BEEP*"
	}
	if h.status != "" {
		line += "  " + h.status
	}
	return line
}

// Run reads keys from in and runs frames until the context ends, the input
// closes or the user quits.
func (h *Host) Run(ctx context.Context, in io.Reader) error {
	input := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				b := append([]byte(nil), buf[:n]...)
				select {
				case input <- b:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()
	for !h.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return err
		case b := <-input:
			h.Input(b)
		case <-ticker.C:
			h.Frame()
			h.Draw()
		}
	}
	return nil
}
