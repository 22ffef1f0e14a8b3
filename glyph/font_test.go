package glyph

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphatlas"
)

func newTestFont(t *testing.T, cfg glyphatlas.Config) *Font {
	t.Helper()

	r, err := NewOpenType(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("NewOpenType() = %v", err)
	}
	f, err := New(r, cfg)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func alphaConfig(index glyphatlas.IndexKind) glyphatlas.Config {
	return glyphatlas.Config{Width: 256, Height: 256, Format: glyphatlas.FormatAlpha8, Index: index, Padding: 1}
}

func TestFont_GlyphCached(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexHash))

	e1, err := f.Glyph('g')
	if err != nil {
		t.Fatalf("Glyph('g') = %v", err)
	}
	e2, err := f.Glyph('g')
	if err != nil {
		t.Fatalf("second Glyph('g') = %v", err)
	}
	if e1 != e2 {
		t.Errorf("entries differ: %+v vs %+v", e1, e2)
	}

	hits, misses, glyphs := f.Atlas().Stats()
	if hits != 1 || misses != 1 || glyphs != 1 {
		t.Errorf("Stats() = %d, %d, %d, want 1, 1, 1", hits, misses, glyphs)
	}

	// 'g' descends below the baseline.
	if e1.BearingY >= e1.Rect.H {
		t.Errorf("'g' BearingY %d >= height %d, expected a descender", e1.BearingY, e1.Rect.H)
	}
}

func TestFont_LayoutSingleLine(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexHash))

	quads, bounds := f.Layout("Hi there", 10, 20)
	if len(quads) != 7 {
		t.Fatalf("len(quads) = %d, want 7 (space has no quad)", len(quads))
	}

	baseline := 20 + f.Metrics().Ascent
	for i, q := range quads {
		if q.Dst.Size() != q.Src.Size() {
			t.Errorf("quad %d: dst %v and src %v differ in size", i, q.Dst, q.Src)
		}
		if q.Dst.Min.Y > baseline || q.Dst.Min.Y < 20-1 {
			t.Errorf("quad %d (%q): top %d outside line starting at 20", i, q.Rune, q.Dst.Min.Y)
		}
		if i > 0 && q.Dst.Min.X <= quads[i-1].Dst.Min.X {
			t.Errorf("quad %d does not advance: %v after %v", i, q.Dst, quads[i-1].Dst)
		}
		if q.U0 >= q.U1 || q.V0 >= q.V1 || q.U1 > 1 || q.V1 > 1 {
			t.Errorf("quad %d UV = (%v,%v,%v,%v)", i, q.U0, q.V0, q.U1, q.V1)
		}
		if !q.Dst.In(bounds) {
			t.Errorf("quad %d dst %v outside bounds %v", i, q.Dst, bounds)
		}
	}
	if quads[0].Dst.Min.X < 10 {
		t.Errorf("first glyph starts at %d, left of pen", quads[0].Dst.Min.X)
	}
}

func TestFont_LayoutNewline(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexHash))

	quads, _ := f.Layout("H\nH", 0, 0)
	if len(quads) != 2 {
		t.Fatalf("len(quads) = %d, want 2", len(quads))
	}
	if dy := quads[1].Dst.Min.Y - quads[0].Dst.Min.Y; dy != f.Metrics().LineHeight {
		t.Errorf("line step = %d, want %d", dy, f.Metrics().LineHeight)
	}
	if quads[1].Dst.Min.X != quads[0].Dst.Min.X {
		t.Errorf("second line x = %d, want %d", quads[1].Dst.Min.X, quads[0].Dst.Min.X)
	}
	if quads[0].Src != quads[1].Src {
		t.Error("same rune got two atlas regions")
	}
}

func TestFont_LayoutNormalizes(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexHash))

	// "e" + combining acute composes to U+00E9.
	quads, _ := f.Layout("e\u0301", 0, 0)
	if len(quads) != 1 || quads[0].Rune != '\u00e9' {
		t.Fatalf("quads = %+v, want one composed é", quads)
	}
}

func TestFont_ASCIIIndexSkipsWideRunes(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexASCII))

	quads, _ := f.Layout("aéb", 0, 0)
	if len(quads) != 2 {
		t.Fatalf("len(quads) = %d, want 2", len(quads))
	}
	if quads[0].Rune != 'a' || quads[1].Rune != 'b' {
		t.Errorf("runes = %q, %q", quads[0].Rune, quads[1].Rune)
	}
}

func TestFont_SkipsWhenFull(t *testing.T) {
	f := newTestFont(t, glyphatlas.Config{Width: 16, Height: 16, Format: glyphatlas.FormatAlpha8})

	quads, _ := f.Layout("OMWQBDGH", 0, 0)
	if len(quads) == 0 || len(quads) >= 8 {
		t.Errorf("len(quads) = %d, want some but not all glyphs", len(quads))
	}
}

func TestFont_Measure(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexHash))
	lh := f.Metrics().LineHeight

	if w, h := f.Measure(""); w != 0 || h != 0 {
		t.Errorf("Measure(\"\") = %d, %d", w, h)
	}

	w1, h1 := f.Measure("Hello")
	if w1 <= 0 || h1 != lh {
		t.Errorf("Measure(Hello) = %d, %d", w1, h1)
	}

	w2, h2 := f.Measure("Hi\nHello\nHey")
	if w2 != w1 || h2 != 3*lh {
		t.Errorf("Measure(3 lines) = %d, %d, want %d, %d", w2, h2, w1, 3*lh)
	}
}

func TestFont_Kerning(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexHash))
	k, ok := f.r.(Kerner)
	if !ok {
		t.Fatal("OpenType does not implement Kerner")
	}

	a, _ := f.Glyph('A')
	quads, _ := f.Layout("AV", 0, 0)
	if len(quads) != 2 {
		t.Fatalf("len(quads) = %d, want 2", len(quads))
	}
	v, _ := f.Glyph('V')
	wantX := a.AdvanceX + k.Kern('A', 'V') + v.BearingX
	if quads[1].Dst.Min.X != wantX {
		t.Errorf("V at x=%d, want %d", quads[1].Dst.Min.X, wantX)
	}
}

func TestFont_Draw(t *testing.T) {
	for _, format := range []glyphatlas.Format{glyphatlas.FormatAlpha8, glyphatlas.FormatRGBA8} {
		t.Run(format.String(), func(t *testing.T) {
			cfg := alphaConfig(glyphatlas.IndexHash)
			cfg.Format = format
			f := newTestFont(t, cfg)

			dst := image.NewRGBA(image.Rect(0, 0, 80, 30))
			red := color.RGBA{R: 255, A: 255}
			f.Draw(dst, "Go", 2, 2, red)

			var inked int
			for i := 0; i < len(dst.Pix); i += 4 {
				if dst.Pix[i+3] == 0 {
					continue
				}
				inked++
				if dst.Pix[i+1] != 0 || dst.Pix[i+2] != 0 {
					t.Fatalf("non-red pixel %v", dst.Pix[i:i+4])
				}
			}
			if inked == 0 {
				t.Error("Draw produced no pixels")
			}
		})
	}
}

func TestFont_GoTextEngine(t *testing.T) {
	r, err := NewGoText(goregular.TTF, 18)
	if err != nil {
		t.Fatalf("NewGoText() = %v", err)
	}
	f, err := New(r, alphaConfig(glyphatlas.IndexHash))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	defer f.Close()

	if f.kern != nil {
		t.Error("GoText unexpectedly implements Kerner")
	}
	quads, _ := f.Layout("atlas", 0, 0)
	if len(quads) != 5 {
		t.Errorf("len(quads) = %d, want 5", len(quads))
	}
}

func TestFont_Concurrent(t *testing.T) {
	f := newTestFont(t, alphaConfig(glyphatlas.IndexHash))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if quads, _ := f.Layout("concurrency", 0, 0); len(quads) != 11 {
					t.Errorf("len(quads) = %d, want 11", len(quads))
					return
				}
			}
		}()
	}
	wg.Wait()

	_, misses, glyphs := f.Atlas().Stats()
	if glyphs != 7 {
		t.Errorf("glyphs = %d, want 7 distinct runes", glyphs)
	}
	if misses < 7 {
		t.Errorf("misses = %d, want at least 7", misses)
	}
}

func TestFont_InvalidConfig(t *testing.T) {
	r, err := NewOpenType(goregular.TTF, 12)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(r, glyphatlas.Config{}); err == nil {
		t.Error("New() with zero config succeeded")
	}
}
