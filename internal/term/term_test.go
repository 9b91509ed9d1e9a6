package term

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
)

func TestLines_HalfBlocks(t *testing.T) {
	fb := display.New()
	// column 0: rows 0 and 1 on; column 1: row 0 only; column 2: row 1 only
	fb.DrawSprite(0, 0, []byte{0b1100_0000, 0b1010_0000})

	lines := Lines(fb)
	require.Len(t, lines, Rows)
	for _, l := range lines {
		assert.Equal(t, display.Width, utf8.RuneCountInString(l))
	}
	assert.True(t, strings.HasPrefix(lines[0], "█▀▄ "), "got %q", lines[0][:12])
	assert.Equal(t, strings.Repeat(" ", display.Width), lines[1])
}

func TestRender_Separator(t *testing.T) {
	fb := display.New()
	out := Render(fb, "\r\n")
	assert.Equal(t, Rows-1, strings.Count(out, "\r\n"))
}

func TestKeypad_DecaysAfterHold(t *testing.T) {
	k := NewKeypad("")
	assert.True(t, k.Press('W'))
	assert.False(t, k.Press('!'))

	for i := 0; i < HoldFrames; i++ {
		assert.True(t, k.State()[5], "frame %d", i)
		k.Tick()
	}
	assert.False(t, k.State()[5])
}

func TestKeypad_DefaultLayout(t *testing.T) {
	k := NewKeypad(DefaultLayout)
	want := map[byte]int{'x': 0x0, '1': 0x1, '4': 0xC, 'r': 0xD, 'z': 0xA, 'v': 0xF}
	for c, d := range want {
		got, ok := k.Digit(c)
		require.True(t, ok, string(c))
		assert.Equal(t, d, got, string(c))
	}
	_, ok := k.Digit('p')
	assert.False(t, ok)
}

// waitKey loops on Fx0A, then draws the digit glyph for the pressed key.
var waitKey = []byte{
	0xF0, 0x0A, // LD V0, K
	0xF0, 0x29, // LD F, V0
	0xD1, 0x15, // DRW V1, V1, 5
	0x12, 0x06, // JP $206
}

func newHost(t *testing.T) *Host {
	t.Helper()
	m := emu.New(emu.Config{Seed: 1})
	img, err := rom.Parse(waitKey, "wait")
	require.NoError(t, err)
	require.NoError(t, m.LoadImage(img))
	return NewHost(m, "")
}

func TestHost_KeyPressReachesMachine(t *testing.T) {
	h := newHost(t)
	h.Frame()
	assert.Equal(t, uint16(0x200), h.m.CPU().PC, "waiting for a key")

	h.Input([]byte("3"))
	h.Frame()
	assert.Equal(t, byte(3), h.m.CPU().V[0])
	assert.NotEqual(t, display.New().CRC32(), h.m.Video().CRC32())
}

func TestHost_ControlKeys(t *testing.T) {
	h := newHost(t)
	h.Input([]byte{keyCtrlP})
	assert.True(t, h.paused)
	h.Input([]byte{keyCtrlR})
	assert.False(t, h.paused)

	h.Input([]byte{keyEsc, '[', 'A'})
	assert.False(t, h.Quit(), "arrow sequences are ignored")
	h.Input([]byte{keyEsc})
	assert.True(t, h.Quit())
}

func TestHost_RunStopsOnQuit(t *testing.T) {
	h := newHost(t)
	h.drawn = true
	h.m.Video().ClearDirty()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := h.Run(ctx, strings.NewReader("\x03"))
	assert.NoError(t, err)
}
