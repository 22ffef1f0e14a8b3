package glyph

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphatlas"
)

// OpenType rasterizes glyphs with golang.org/x/image/font/opentype using
// full hinting. It also implements Kerner.
//
// OpenType is safe for concurrent use.
type OpenType struct {
	mu      sync.Mutex
	font    *sfnt.Font
	face    font.Face
	buf     sfnt.Buffer
	metrics FaceMetrics
}

// NewOpenType parses TTF/OTF data and creates a face of size pixels per em.
func NewOpenType(data []byte, size float64) (*OpenType, error) {
	if size <= 0 {
		return nil, fmt.Errorf("glyph: invalid size %v", size)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: create face: %w", err)
	}

	m := face.Metrics()
	return &OpenType{
		font: f,
		face: face,
		metrics: FaceMetrics{
			Ascent:     m.Ascent.Ceil(),
			Descent:    m.Descent.Ceil(),
			LineHeight: m.Height.Ceil(),
		},
	}, nil
}

// Rasterize renders r.
func (o *OpenType) Rasterize(r rune) (*image.Alpha, glyphatlas.Metrics, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Unmapped runes resolve to .notdef, which the face would happily draw.
	idx, err := o.font.GlyphIndex(&o.buf, r)
	if err != nil {
		return nil, glyphatlas.Metrics{}, fmt.Errorf("glyph: lookup %q: %w", r, err)
	}
	if idx == 0 {
		return nil, glyphatlas.Metrics{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	dr, mask, maskp, advance, ok := o.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil, glyphatlas.Metrics{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	// The face reuses its mask buffer between calls.
	out := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	if mask != nil && !dr.Empty() {
		draw.Draw(out, out.Rect, mask, maskp, draw.Src)
	}

	return out, glyphatlas.Metrics{
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		AdvanceX: advance.Round(),
	}, nil
}

// Kern returns the kerning adjustment between a and b in pixels.
func (o *OpenType) Kern(a, b rune) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.face.Kern(a, b).Round()
}

// Metrics returns the face metrics.
func (o *OpenType) Metrics() FaceMetrics {
	return o.metrics
}

// Close releases the face.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.face.Close()
}
