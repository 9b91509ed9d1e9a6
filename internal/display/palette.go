package display

import (
	"image/color"
	"strings"
)

// Palette maps the two pixel states to colors.
type Palette struct {
	Name    string
	On, Off color.RGBA
}

// Palettes is the fixed set of selectable color schemes. Index 0 is the default.
var Palettes = []Palette{
	{Name: "mono", On: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, Off: color.RGBA{0x00, 0x00, 0x00, 0xFF}},
	{Name: "green", On: color.RGBA{0x33, 0xFF, 0x66, 0xFF}, Off: color.RGBA{0x0B, 0x1A, 0x0F, 0xFF}},
	{Name: "amber", On: color.RGBA{0xFF, 0xB0, 0x00, 0xFF}, Off: color.RGBA{0x1E, 0x12, 0x00, 0xFF}},
	{Name: "dmg", On: color.RGBA{0x0F, 0x38, 0x0F, 0xFF}, Off: color.RGBA{0x9B, 0xBC, 0x0F, 0xFF}},
	{Name: "blue", On: color.RGBA{0xE0, 0xF0, 0xFF, 0xFF}, Off: color.RGBA{0x10, 0x20, 0x60, 0xFF}},
	{Name: "paper", On: color.RGBA{0x20, 0x20, 0x20, 0xFF}, Off: color.RGBA{0xF4, 0xEE, 0xE0, 0xFF}},
}

// PaletteByName looks a palette up case-insensitively. Unknown names return
// the default palette and ok=false.
func PaletteByName(name string) (p Palette, idx int, ok bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, pal := range Palettes {
		if pal.Name == n {
			return pal, i, true
		}
	}
	return Palettes[0], 0, false
}

// PaletteNames lists the palette names in selection order.
func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}
