package glyph

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	"github.com/gogpu/glyphatlas"
)

// GoText rasterizes glyph outlines from github.com/go-text/typesetting
// with golang.org/x/image/vector. Glyphs are not hinted.
//
// GoText is safe for concurrent use.
type GoText struct {
	mu      sync.Mutex
	face    *font.Face
	scale   float32
	metrics FaceMetrics
}

// NewGoText parses TTF/OTF data and creates a face of size pixels per em.
func NewGoText(data []byte, size float64) (*GoText, error) {
	if size <= 0 {
		return nil, fmt.Errorf("glyph: invalid size %v", size)
	}

	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}

	scale := float32(size) / float32(face.Upem())
	g := &GoText{face: face, scale: scale}

	if ext, ok := face.FontHExtents(); ok {
		g.metrics = FaceMetrics{
			Ascent:     ceil(ext.Ascender * scale),
			Descent:    ceil(-ext.Descender * scale),
			LineHeight: ceil((ext.Ascender - ext.Descender + ext.LineGap) * scale),
		}
	} else {
		// No hhea/OS2 data: fall back to the em box.
		g.metrics = FaceMetrics{
			Ascent:     ceil(float32(size) * 0.8),
			Descent:    ceil(float32(size) * 0.2),
			LineHeight: ceil(float32(size) * 1.2),
		}
	}
	return g, nil
}

// Rasterize renders r.
func (g *GoText) Rasterize(r rune) (*image.Alpha, glyphatlas.Metrics, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	gid, ok := g.face.NominalGlyph(r)
	if !ok {
		return nil, glyphatlas.Metrics{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	m := glyphatlas.Metrics{
		AdvanceX: int(math.Round(float64(g.face.HorizontalAdvance(gid) * g.scale))),
	}

	outline, ok := g.face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return nil, glyphatlas.Metrics{}, fmt.Errorf("%w: %q has no outline", ErrGlyphNotFound, r)
	}
	if len(outline.Segments) == 0 {
		return image.NewAlpha(image.Rectangle{}), m, nil
	}

	// Control points bound the curves, so their box bounds the glyph.
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, s := range outline.Segments {
		for _, p := range s.ArgsSlice() {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}

	x0 := int(math.Floor(float64(minX * g.scale)))
	x1 := ceil(maxX * g.scale)
	top := ceil(maxY * g.scale)
	bottom := int(math.Floor(float64(minY * g.scale)))
	w, h := x1-x0, top-bottom
	if w <= 0 || h <= 0 {
		return image.NewAlpha(image.Rectangle{}), m, nil
	}

	// Font units are y-up; the mask is y-down with its origin at (x0, top).
	pt := func(p opentype.SegmentPoint) (float32, float32) {
		return p.X*g.scale - float32(x0), float32(top) - p.Y*g.scale
	}

	z := vector.NewRasterizer(w, h)
	open := false
	for _, s := range outline.Segments {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(s.Args[0]))
			open = true
		case opentype.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case opentype.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case opentype.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	m.BearingX = x0
	m.BearingY = top
	return mask, m, nil
}

// Metrics returns the face metrics.
func (g *GoText) Metrics() FaceMetrics {
	return g.metrics
}

func ceil(v float32) int {
	return int(math.Ceil(float64(v)))
}
