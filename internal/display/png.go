package display

import (
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Image returns the framebuffer as an image upscaled by an integer factor
// with nearest-neighbour sampling so pixels stay sharp.
func (f *Framebuffer) Image(p Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := &image.RGBA{
		Pix:    f.RGBA(p),
		Stride: 4 * Width,
		Rect:   image.Rect(0, 0, Width, Height),
	}
	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled framebuffer as PNG.
func (f *Framebuffer) WritePNG(w io.Writer, p Palette, scale int) error {
	return png.Encode(w, f.Image(p, scale))
}

// SavePNG writes the scaled framebuffer to a PNG file at path.
func (f *Framebuffer) SavePNG(path string, p Palette, scale int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.WritePNG(out, p, scale); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
