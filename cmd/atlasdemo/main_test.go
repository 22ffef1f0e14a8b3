package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/glyph"
)

func TestBake(t *testing.T) {
	r, err := newRasterizer("opentype", goregular.TTF, 16)
	if err != nil {
		t.Fatalf("newRasterizer() = %v", err)
	}
	f, err := glyph.New(r, glyphatlas.Config{Width: 128, Height: 128, Format: glyphatlas.FormatAlpha8})
	if err != nil {
		t.Fatalf("glyph.New() = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	dir := t.TempDir()
	atlasOut := filepath.Join(dir, "atlas.png")
	renderOut := filepath.Join(dir, "text.png")
	if err := bake(f, "Hello\nGo", atlasOut, renderOut, false); err != nil {
		t.Fatalf("bake() = %v", err)
	}

	for _, path := range []string{atlasOut, renderOut} {
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		img, err := png.Decode(file)
		_ = file.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if img.Bounds().Empty() {
			t.Errorf("%s is empty", path)
		}
	}

	f.Atlas().View(func(a *glyphatlas.Atlas) {
		if !a.Dirty().Empty() {
			t.Error("bake left the atlas dirty")
		}
	})
}

func TestBake_SaveError(t *testing.T) {
	r, err := newRasterizer("gotext", goregular.TTF, 12)
	if err != nil {
		t.Fatalf("newRasterizer() = %v", err)
	}
	f, err := glyph.New(r, glyphatlas.Config{Width: 64, Height: 64, Format: glyphatlas.FormatRGBA8})
	if err != nil {
		t.Fatalf("glyph.New() = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	bad := filepath.Join(t.TempDir(), "missing", "atlas.png")
	if err := bake(f, "x", bad, "", false); err == nil {
		t.Error("bake() into a missing directory succeeded")
	}
}

func TestNewRasterizer_UnknownEngine(t *testing.T) {
	if _, err := newRasterizer("freetype", goregular.TTF, 12); err == nil {
		t.Error("newRasterizer(freetype) succeeded")
	}
}
