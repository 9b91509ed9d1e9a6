package display

import (
	"bytes"
	"image/png"
	"testing"
)

func TestDrawSprite_SetsPixels(t *testing.T) {
	f := New()
	if hit := f.DrawSprite(2, 3, []byte{0b1010_0000}); hit {
		t.Fatalf("collision on empty screen")
	}
	if !f.Pixel(2, 3) || f.Pixel(3, 3) || !f.Pixel(4, 3) {
		t.Fatalf("row bits not drawn at (2..4,3)")
	}
	if !f.Dirty() {
		t.Fatalf("draw did not mark framebuffer dirty")
	}
}

func TestDrawSprite_XORSelfInverse(t *testing.T) {
	f := New()
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0} // "0" glyph
	f.DrawSprite(10, 5, sprite)
	if hit := f.DrawSprite(10, 5, sprite); !hit {
		t.Fatalf("second draw should report collision")
	}
	for i, px := range f.Pixels {
		if px != Off {
			t.Fatalf("pixel %d still on after XOR twice", i)
		}
	}
}

func TestDrawSprite_WrapsColumns(t *testing.T) {
	f := New()
	f.DrawSprite(60, 0, []byte{0xFF})
	for x := 60; x < 64; x++ {
		if !f.Pixel(x, 0) {
			t.Fatalf("column %d not set", x)
		}
	}
	for x := 0; x < 4; x++ {
		if f.Pixels[x] != On {
			t.Fatalf("wrapped column %d not set", x)
		}
	}
	if f.Pixels[4] != Off {
		t.Fatalf("column 4 should stay off")
	}
}

func TestDrawSprite_WrapsRows(t *testing.T) {
	f := New()
	f.DrawSprite(0, 31, []byte{0x80, 0x80, 0x80})
	for _, y := range []int{31, 0, 1} {
		if f.Pixels[y*Width] != On {
			t.Fatalf("row %d not set", y)
		}
	}
	if f.Pixels[2*Width] != Off {
		t.Fatalf("row 2 should stay off")
	}
}

func TestDrawSprite_OriginModulo(t *testing.T) {
	f := New()
	f.DrawSprite(64+5, 32+7, []byte{0x80})
	if !f.Pixel(5, 7) {
		t.Fatalf("origin should be taken modulo screen size")
	}
}

func TestClear(t *testing.T) {
	f := New()
	f.DrawSprite(0, 0, []byte{0xFF, 0xFF})
	f.ClearDirty()
	f.Clear()
	for i, px := range f.Pixels {
		if px != Off {
			t.Fatalf("pixel %d on after Clear", i)
		}
	}
	if !f.Dirty() {
		t.Fatalf("Clear did not mark dirty")
	}
}

func TestCRC32_PaletteIndependent(t *testing.T) {
	a, b := New(), New()
	if a.CRC32() != b.CRC32() {
		t.Fatalf("empty framebuffers differ")
	}
	a.DrawSprite(1, 1, []byte{0x80})
	if a.CRC32() == b.CRC32() {
		t.Fatalf("crc did not change after draw")
	}
	b.DrawSprite(1, 1, []byte{0x80})
	if a.CRC32() != b.CRC32() {
		t.Fatalf("same content, different crc")
	}
}

func TestRGBA_UsesPalette(t *testing.T) {
	f := New()
	f.DrawSprite(0, 0, []byte{0x80})
	p, _, ok := PaletteByName("Amber")
	if !ok {
		t.Fatalf("amber palette missing")
	}
	pix := f.RGBA(p)
	if len(pix) != Width*Height*4 {
		t.Fatalf("RGBA len got %d", len(pix))
	}
	if pix[0] != p.On.R || pix[1] != p.On.G || pix[2] != p.On.B || pix[3] != 0xFF {
		t.Fatalf("pixel 0 got %v want %v", pix[:4], p.On)
	}
	if pix[4] != p.Off.R || pix[5] != p.Off.G || pix[6] != p.Off.B {
		t.Fatalf("pixel 1 got %v want %v", pix[4:8], p.Off)
	}
}

func TestPaletteByName_Unknown(t *testing.T) {
	p, idx, ok := PaletteByName("nope")
	if ok || idx != 0 || p.Name != Palettes[0].Name {
		t.Fatalf("unknown palette got %q/%d/%v", p.Name, idx, ok)
	}
	if names := PaletteNames(); len(names) != len(Palettes) || names[0] != "mono" {
		t.Fatalf("PaletteNames got %v", names)
	}
}

func TestWritePNG_Scaled(t *testing.T) {
	f := New()
	f.DrawSprite(0, 0, []byte{0x80})
	var buf bytes.Buffer
	if err := f.WritePNG(&buf, Palettes[0], 4); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Width*4 || b.Dy() != Height*4 {
		t.Fatalf("png size got %dx%d", b.Dx(), b.Dy())
	}
	r, _, _, _ := img.At(3, 3).RGBA()
	if r != 0xFFFF {
		t.Fatalf("scaled pixel (3,3) should be on, r=%x", r)
	}
	r, _, _, _ = img.At(4, 0).RGBA()
	if r != 0 {
		t.Fatalf("scaled pixel (4,0) should be off, r=%x", r)
	}
}

func TestString(t *testing.T) {
	f := New()
	f.DrawSprite(0, 0, []byte{0xC0})
	s := f.String()
	if len(s) != (Width+1)*Height {
		t.Fatalf("String len got %d", len(s))
	}
	if s[:3] != "##." {
		t.Fatalf("first row got %q", s[:3])
	}
}
