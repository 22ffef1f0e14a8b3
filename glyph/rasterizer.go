package glyph

import (
	"errors"
	"image"

	"github.com/gogpu/glyphatlas"
)

// ErrGlyphNotFound is returned when the font has no glyph for a rune.
var ErrGlyphNotFound = errors.New("glyph: glyph not found")

// Rasterizer renders single runes to coverage masks.
//
// The mask bounds start at (0, 0); placement relative to the pen is carried
// by the returned metrics. Whitespace yields an empty mask with a non-zero
// advance.
type Rasterizer interface {
	Rasterize(r rune) (*image.Alpha, glyphatlas.Metrics, error)
	Metrics() FaceMetrics
}

// Kerner is implemented by rasterizers that know pair kerning.
type Kerner interface {
	// Kern returns the horizontal adjustment in pixels between a and b.
	Kern(a, b rune) int
}

// FaceMetrics are the vertical font metrics in pixels.
type FaceMetrics struct {
	// Ascent is the distance from the top of a line to its baseline.
	Ascent int
	// Descent is the distance from the baseline to the bottom of a line.
	Descent int
	// LineHeight is the baseline-to-baseline distance.
	LineHeight int
}

// toBitmap converts a coverage mask into a tightly packed atlas bitmap.
// For FormatRGBA8 every pixel becomes premultiplied white with the
// coverage as alpha.
func toBitmap(mask *image.Alpha, format glyphatlas.Format) glyphatlas.Bitmap {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	bpp := format.BytesPerPixel()
	pix := make([]byte, w*h*bpp)

	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		if format == glyphatlas.FormatAlpha8 {
			copy(pix[y*w:], row)
			continue
		}
		out := pix[y*w*bpp : (y+1)*w*bpp]
		for x, a := range row {
			out[x*4+0] = a
			out[x*4+1] = a
			out[x*4+2] = a
			out[x*4+3] = a
		}
	}

	return glyphatlas.Bitmap{Pix: pix, Width: w, Height: h}
}
