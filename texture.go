package glyphatlas

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Format is a texture pixel format.
type Format int

const (
	// FormatRGBA8 stores 4 bytes per pixel: R, G, B, A.
	FormatRGBA8 Format = iota

	// FormatAlpha8 stores 1 coverage byte per pixel.
	FormatAlpha8
)

// BytesPerPixel returns the pixel size, or 0 for an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA8:
		return 4
	case FormatAlpha8:
		return 1
	default:
		return 0
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatAlpha8:
		return "Alpha8"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Bitmap is a tightly packed block of pixel rows in an atlas format:
// Width*BytesPerPixel bytes per row, Height rows.
type Bitmap struct {
	Pix    []byte
	Width  int
	Height int
}

// Texture is the atlas backing pixel buffer. Rows may be padded, so
// addressing must go through Stride.
type Texture struct {
	width  int
	height int
	stride int
	format Format
	pix    []byte
}

// newTexture creates a zeroed texture.
func newTexture(width, height, stride int, format Format) *Texture {
	return &Texture{
		width:  width,
		height: height,
		stride: stride,
		format: format,
		pix:    make([]byte, stride*height),
	}
}

// Width returns the width of the texture in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the texture in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Stride returns the distance in bytes between two rows.
func (t *Texture) Stride() int {
	return t.stride
}

// Format returns the pixel format.
func (t *Texture) Format() Format {
	return t.format
}

// Pix returns the raw pixel data. Writes are visible to the atlas.
func (t *Texture) Pix() []byte {
	return t.pix
}

// blit copies h rows of w pixels from the tightly packed src into the
// texture at (x, y).
func (t *Texture) blit(x, y, w, h int, src []byte) {
	bpp := t.format.BytesPerPixel()
	row := w * bpp
	for i := 0; i < h; i++ {
		off := (y+i)*t.stride + x*bpp
		copy(t.pix[off:off+row], src[i*row:(i+1)*row])
	}
}

// clear zeroes the rectangle at (x, y).
func (t *Texture) clear(x, y, w, h int) {
	bpp := t.format.BytesPerPixel()
	row := w * bpp
	for i := 0; i < h; i++ {
		off := (y+i)*t.stride + x*bpp
		clear(t.pix[off : off+row])
	}
}

// Read returns a tightly packed copy of the w x h block at (x, y).
// Parts outside the texture read as zero. An empty block returns nil.
func (t *Texture) Read(x, y, w, h int) []byte {
	if w <= 0 || h <= 0 {
		return nil
	}
	bpp := t.format.BytesPerPixel()
	out := make([]byte, w*h*bpp)
	for i := 0; i < h; i++ {
		ty := y + i
		if ty < 0 || ty >= t.height {
			continue
		}
		x0, x1 := max(x, 0), min(x+w, t.width)
		if x0 >= x1 {
			continue
		}
		src := t.pix[ty*t.stride+x0*bpp : ty*t.stride+x1*bpp]
		copy(out[i*w*bpp+(x0-x)*bpp:], src)
	}
	return out
}

// grown returns a copy of t enlarged to width x height with the old
// contents at the origin.
func (t *Texture) grown(width, height, stride int) *Texture {
	n := newTexture(width, height, stride, t.format)
	row := t.width * t.format.BytesPerPixel()
	for y := 0; y < t.height; y++ {
		copy(n.pix[y*stride:y*stride+row], t.pix[y*t.stride:y*t.stride+row])
	}
	return n
}

// ToImage returns an image that shares the texture memory:
// *image.RGBA for FormatRGBA8 and *image.Alpha for FormatAlpha8.
func (t *Texture) ToImage() image.Image {
	r := image.Rect(0, 0, t.width, t.height)
	if t.format == FormatAlpha8 {
		return &image.Alpha{Pix: t.pix, Stride: t.stride, Rect: r}
	}
	return &image.RGBA{Pix: t.pix, Stride: t.stride, Rect: r}
}

// SavePNG saves the texture to a PNG file.
func (t *Texture) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, t.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
