// Package term runs a machine inside a text terminal: half-block rendering,
// raw keyboard input and a 60 Hz frame loop.
package term

import (
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
)

// Rows is the number of text lines one frame occupies; each line shows two
// pixel rows.
const Rows = display.Height / 2

var glyphs = [4]string{
	0b00: " ",
	0b10: "▀",
	0b01: "▄",
	0b11: "█",
}

// Lines renders the framebuffer as Rows strings of Width glyphs.
func Lines(fb *display.Framebuffer) []string {
	lines := make([]string, Rows)
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		sb.Reset()
		for x := 0; x < display.Width; x++ {
			g := 0
			if fb.Pixel(x, 2*row) {
				g |= 0b10
			}
			if fb.Pixel(x, 2*row+1) {
				g |= 0b01
			}
			sb.WriteString(glyphs[g])
		}
		lines[row] = sb.String()
	}
	return lines
}

// Render joins Lines with sep. Raw terminals need "\r\n".
func Render(fb *display.Framebuffer, sep string) string {
	return strings.Join(Lines(fb), sep)
}
