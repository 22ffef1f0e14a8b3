package glyph

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphatlas"
)

// Quad is one placed glyph: where to draw it and where its pixels are.
type Quad struct {
	Rune rune

	// Dst is the destination rectangle in layout space.
	Dst image.Rectangle

	// Src is the glyph rectangle in the atlas texture.
	Src image.Rectangle

	// U0, V0, U1, V1 are Src in normalized texture coordinates.
	U0, V0, U1, V1 float32
}

// Font renders runes into a shared atlas on first use.
//
// Font is safe for concurrent use.
type Font struct {
	r       Rasterizer
	kern    Kerner
	atlas   *glyphatlas.SyncAtlas
	format  glyphatlas.Format
	metrics FaceMetrics
}

// New creates a Font over a fresh atlas built from cfg.
func New(r Rasterizer, cfg glyphatlas.Config) (*Font, error) {
	a, err := glyphatlas.NewSync(cfg)
	if err != nil {
		return nil, err
	}

	f := &Font{
		r:       r,
		atlas:   a,
		format:  cfg.Format,
		metrics: r.Metrics(),
	}
	if k, ok := r.(Kerner); ok {
		f.kern = k
	}
	return f, nil
}

// Atlas returns the atlas backing the font.
func (f *Font) Atlas() *glyphatlas.SyncAtlas {
	return f.atlas
}

// Metrics returns the face metrics of the rasterizer.
func (f *Font) Metrics() FaceMetrics {
	return f.metrics
}

// Glyph returns the atlas entry for r, rendering it on first use.
func (f *Font) Glyph(r rune) (glyphatlas.Entry, error) {
	return f.atlas.GetOrInsert(uint32(r), f.render) //nolint:gosec // runes are non-negative
}

func (f *Font) render(code uint32) (glyphatlas.Bitmap, glyphatlas.Metrics, error) {
	mask, m, err := f.r.Rasterize(rune(code)) //nolint:gosec // code came from a rune
	if err != nil {
		if !errors.Is(err, ErrGlyphNotFound) {
			glyphatlas.Logger().Warn("glyph: rasterize failed", "code", code, "err", err)
		}
		return glyphatlas.Bitmap{}, glyphatlas.Metrics{}, err
	}
	return toBitmap(mask, f.format), m, nil
}

// Layout places text with its first line's top edge at y and the pen
// starting at x. Newlines return the pen to x and move down one line.
//
// Runes that cannot be rendered or do not fit in the atlas are skipped and
// advance the pen by nothing. Layout returns one Quad per visible glyph
// and the union of their destination rectangles.
func (f *Font) Layout(text string, x, y int) ([]Quad, image.Rectangle) {
	text = norm.NFC.String(text)

	quads := make([]Quad, 0, len(text))
	var bounds image.Rectangle

	penX := x
	baseline := y + f.metrics.Ascent
	prev := rune(-1)

	for _, r := range text {
		if r == '\n' {
			penX = x
			baseline += f.metrics.LineHeight
			prev = -1
			continue
		}

		e, err := f.Glyph(r)
		if err != nil {
			glyphatlas.Logger().Debug("glyph: rune skipped", "rune", string(r), "err", err)
			prev = -1
			continue
		}
		if prev >= 0 && f.kern != nil {
			penX += f.kern.Kern(prev, r)
		}
		prev = r

		if !e.Rect.Empty() {
			dst := image.Rect(0, 0, e.Rect.W, e.Rect.H).Add(image.Pt(penX+e.BearingX, baseline-e.BearingY))
			quads = append(quads, Quad{Rune: r, Dst: dst, Src: e.Rect.Image()})
			bounds = bounds.Union(dst)
		}
		penX += e.AdvanceX
	}

	if len(quads) > 0 {
		f.atlas.View(func(a *glyphatlas.Atlas) {
			cfg := a.Config()
			w, h := float32(cfg.Width), float32(cfg.Height)
			for i := range quads {
				q := &quads[i]
				q.U0 = float32(q.Src.Min.X) / w
				q.V0 = float32(q.Src.Min.Y) / h
				q.U1 = float32(q.Src.Max.X) / w
				q.V1 = float32(q.Src.Max.Y) / h
			}
		})
	}
	return quads, bounds
}

// Measure returns the pen advance of the widest line and the total
// height of all lines.
func (f *Font) Measure(text string) (w, h int) {
	if text == "" {
		return 0, 0
	}
	text = norm.NFC.String(text)

	for _, line := range strings.Split(text, "\n") {
		penX := 0
		prev := rune(-1)
		for _, r := range line {
			e, err := f.Glyph(r)
			if err != nil {
				prev = -1
				continue
			}
			if prev >= 0 && f.kern != nil {
				penX += f.kern.Kern(prev, r)
			}
			prev = r
			penX += e.AdvanceX
		}
		w = max(w, penX)
		h += f.metrics.LineHeight
	}
	return w, h
}

// Draw composites text into dst in color c, using the atlas texture as
// the coverage mask. x and y are as for Layout.
func (f *Font) Draw(dst draw.Image, text string, x, y int, c color.Color) {
	quads, _ := f.Layout(text, x, y)
	if len(quads) == 0 {
		return
	}

	src := image.NewUniform(c)
	f.atlas.View(func(a *glyphatlas.Atlas) {
		tex := a.Texture()
		if tex == nil {
			return
		}
		mask := tex.ToImage()
		for _, q := range quads {
			draw.DrawMask(dst, q.Dst, src, image.Point{}, mask, q.Src.Min, draw.Over)
		}
	})
}

// Close closes the atlas and the rasterizer if it holds resources.
func (f *Font) Close() error {
	f.atlas.Close()
	if c, ok := f.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
