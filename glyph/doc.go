// Package glyph fills a glyphatlas from TrueType/OpenType fonts and lays
// text out against it.
//
// Two rasterizer backends are provided:
//
//   - OpenType: golang.org/x/image/font/opentype, hinted coverage masks
//     and kerning
//   - GoText: github.com/go-text/typesetting outlines filled with
//     golang.org/x/image/vector
//
// A Font pairs a rasterizer with a SyncAtlas. Glyphs are rendered on first
// use and looked up from the atlas afterwards.
//
// # Example usage
//
//	r, err := glyph.NewOpenType(goregular.TTF, 24)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := glyph.New(r, glyphatlas.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	quads, bounds := f.Layout("Hello, atlas!", 10, 10)
//	// upload f.Atlas() texture, then draw one textured quad per element
//
// For CPU rendering Font.Draw composites the quads into any draw.Image.
package glyph
