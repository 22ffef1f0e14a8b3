// Command atlasdemo bakes the glyphs of a text into a texture atlas.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/glyph"
)

const defaultText = "The quick brown fox jumps over the lazy dog.\n0123456789 !?&@#"

func main() {
	var (
		fontPath = flag.String("font", "", "TTF/OTF file (default: Go Regular)")
		engine   = flag.String("engine", "opentype", "rasterizer: opentype or gotext")
		size     = flag.Float64("size", 32, "font size in pixels per em")
		width    = flag.Int("width", 512, "atlas width")
		height   = flag.Int("height", 512, "atlas height")
		index    = flag.String("index", "hash", "code index: hash or ascii")
		format   = flag.String("format", "rgba", "texture format: rgba or alpha")
		padding  = flag.Int("padding", 1, "transparent margin around each glyph")
		text     = flag.String("text", defaultText, "text whose glyphs are baked")
		atlasOut = flag.String("atlas", "atlas.png", "atlas texture output file")
		render   = flag.String("render", "", "optional output file with the text rendered from the atlas")
		showMap  = flag.Bool("map", false, "print an occupancy map of the atlas")
		verbose  = flag.Bool("v", false, "log atlas events to stderr")
	)
	flag.Parse()

	if *verbose {
		glyphatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := glyphatlas.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Padding = *padding

	switch *index {
	case "hash":
		cfg.Index = glyphatlas.IndexHash
	case "ascii":
		cfg.Index = glyphatlas.IndexASCII
	default:
		log.Fatalf("Unknown index %q", *index)
	}

	switch *format {
	case "rgba":
		cfg.Format = glyphatlas.FormatRGBA8
	case "alpha":
		cfg.Format = glyphatlas.FormatAlpha8
	default:
		log.Fatalf("Unknown format %q", *format)
	}

	data := goregular.TTF
	if *fontPath != "" {
		var err error
		data, err = os.ReadFile(*fontPath)
		if err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
	}

	r, err := newRasterizer(*engine, data, *size)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	f, err := glyph.New(r, cfg)
	if err != nil {
		log.Fatalf("Failed to create atlas: %v", err)
	}
	err = bake(f, *text, *atlasOut, *render, *showMap)
	_ = f.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// bake lays out text, which fills the atlas, then writes the requested
// outputs.
func bake(f *glyph.Font, text, atlasOut, render string, showMap bool) error {
	quads, _ := f.Layout(text, 0, 0)
	hits, misses, glyphs := f.Atlas().Stats()

	var saveErr error
	var util float64
	var cfg glyphatlas.Config
	f.Atlas().View(func(a *glyphatlas.Atlas) {
		cfg = a.Config()
		util = a.Utilization()
		saveErr = a.Texture().SavePNG(atlasOut)
		a.MarkClean()
		if showMap {
			printMap(a, terminalWidth())
		}
	})
	if saveErr != nil {
		return fmt.Errorf("failed to save atlas: %w", saveErr)
	}

	log.Printf("Atlas saved to %s (%dx%d, %d glyphs, %.1f%% used, %d quads, %d hits, %d misses)\n",
		atlasOut, cfg.Width, cfg.Height, glyphs, util*100, len(quads), hits, misses)

	if render != "" {
		if err := renderText(f, text, render); err != nil {
			return fmt.Errorf("failed to render text: %w", err)
		}
		log.Printf("Text rendered to %s\n", render)
	}
	return nil
}

func newRasterizer(engine string, data []byte, size float64) (glyph.Rasterizer, error) {
	switch engine {
	case "opentype":
		return glyph.NewOpenType(data, size)
	case "gotext":
		return glyph.NewGoText(data, size)
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
}

// renderText draws text in black on white, using only atlas pixels.
func renderText(f *glyph.Font, text, path string) error {
	const margin = 8

	w, h := f.Measure(text)
	dst := image.NewRGBA(image.Rect(0, 0, w+2*margin, h+2*margin))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	f.Draw(dst, text, margin, margin, color.Black)

	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(out, dst); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// terminalWidth returns the stdout width, or 80 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// printMap prints the atlas as a character grid, '#' for cells covered by
// a glyph and '.' for free space.
func printMap(a *glyphatlas.Atlas, cols int) {
	cfg := a.Config()
	cols = min(cols-2, cfg.Width)
	if cols <= 0 {
		return
	}
	// Terminal cells are about twice as tall as wide.
	rows := max(1, cfg.Height*cols/cfg.Width/2)

	grid := make([][]byte, rows)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", cols))
	}

	a.Range(func(_ uint32, e glyphatlas.Entry) bool {
		if e.Rect.Empty() {
			return true
		}
		x0 := e.Rect.X * cols / cfg.Width
		x1 := max(x0+1, (e.Rect.X+e.Rect.W)*cols/cfg.Width)
		y0 := e.Rect.Y * rows / cfg.Height
		y1 := max(y0+1, (e.Rect.Y+e.Rect.H)*rows/cfg.Height)
		for y := y0; y < min(y1, rows); y++ {
			for x := x0; x < min(x1, cols); x++ {
				grid[y][x] = '#'
			}
		}
		return true
	})

	border := "+" + strings.Repeat("-", cols) + "+"
	fmt.Println(border)
	for _, row := range grid {
		fmt.Printf("|%s|\n", row)
	}
	fmt.Println(border)
}
