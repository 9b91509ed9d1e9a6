// Package display models the 64x32 monochrome CHIP-8 framebuffer.
package display

import (
	"hash/crc32"
	"strings"
)

const (
	Width  = 64
	Height = 32

	// On and Off are the pixel words stored in the framebuffer.
	On  uint32 = 0xFFFFFFFF
	Off uint32 = 0
)

// Framebuffer holds one word per pixel so hosts can upload it directly.
// It is only cleared at construction and by Clear.
type Framebuffer struct {
	Pixels [Width * Height]uint32

	// set by Clear/DrawSprite, reset by the host after presenting a frame
	dirty bool
}

func New() *Framebuffer {
	return &Framebuffer{dirty: true}
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	f.Pixels = [Width * Height]uint32{}
	f.dirty = true
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.Pixels[index(x, y)] == On
}

func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}

// DrawSprite XORs an 8-pixel wide sprite onto the framebuffer. The origin is
// taken modulo the screen size and every pixel wraps around both edges.
// It returns true if any pixel was switched from on to off.
func (f *Framebuffer) DrawSprite(x, y byte, rows []byte) (collision bool) {
	ox := int(x) % Width
	oy := int(y) % Height
	for row, bits := range rows {
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			i := index(ox+col, oy+row)
			if f.Pixels[i] == On {
				collision = true
			}
			f.Pixels[i] ^= On
		}
	}
	f.dirty = true
	return collision
}

// Dirty reports whether the framebuffer changed since the last ClearDirty.
func (f *Framebuffer) Dirty() bool { return f.dirty }

func (f *Framebuffer) ClearDirty() { f.dirty = false }

// SetDirty forces the next frame to be presented (e.g. after a state load).
func (f *Framebuffer) SetDirty() { f.dirty = true }

// RGBA converts the framebuffer to RGBA8888 using the palette.
func (f *Framebuffer) RGBA(p Palette) []byte {
	out := make([]byte, Width*Height*4)
	f.FillRGBA(out, p)
	return out
}

// FillRGBA is RGBA without the allocation; dst must hold Width*Height*4 bytes.
func (f *Framebuffer) FillRGBA(dst []byte, p Palette) {
	for i, px := range f.Pixels {
		c := p.Off
		if px == On {
			c = p.On
		}
		dst[i*4+0], dst[i*4+1], dst[i*4+2], dst[i*4+3] = c.R, c.G, c.B, 0xFF
	}
}

// CRC32 checksums the on/off state of every pixel, independent of palette.
func (f *Framebuffer) CRC32() uint32 {
	var bits [Width * Height]byte
	for i, px := range f.Pixels {
		if px == On {
			bits[i] = 1
		}
	}
	return crc32.ChecksumIEEE(bits[:])
}

// String renders the framebuffer as text, '#' for on and '.' for off.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Pixels[y*Width+x] == On {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
