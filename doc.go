// Package glyphatlas caches small bitmaps, typically font glyphs, inside a
// single texture so a renderer can draw text with one texture bound.
//
// # Overview
//
// An Atlas owns three things:
//   - a Texture, the pixel buffer that gets uploaded to the GPU
//   - a guillotine packer (package binpack) deciding where each bitmap goes
//   - an index from 32-bit codes (usually runes) to the placed rectangles
//
// Codes are inserted once and looked up many times. Nothing is evicted; a
// full atlas rejects inserts with ErrAtlasFull until the caller removes
// entries, grows the atlas or resets it.
//
// # Quick Start
//
//	a, err := glyphatlas.New(glyphatlas.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	e, err := a.Insert('A', bmp, glyphatlas.Metrics{AdvanceX: 9})
//	if errors.Is(err, glyphatlas.ErrAtlasFull) {
//	    // flush, then a.Reset() or a.Grow(...)
//	}
//
//	if e, ok := a.Get('A'); ok {
//	    u0, v0, u1, v1 := a.UV(e)
//	    // draw a quad sampling (u0,v0)-(u1,v1)
//	}
//
// # Indexes
//
// IndexHash accepts any uint32 code through an open-addressing table.
// IndexASCII is a fixed 128-slot array for 7-bit text and rejects larger
// codes with ErrCodeOutOfRange.
//
// # Uploads
//
// Dirty reports the texture area written since the last MarkClean, so only
// that region needs to be re-uploaded.
//
// # Concurrency
//
// Atlas is single-threaded. SyncAtlas wraps it with a read-write mutex and
// a render-on-miss GetOrInsert. Package glyph builds on SyncAtlas to
// rasterize fonts on demand.
//
// # Logging
//
// glyphatlas is silent by default. Use SetLogger to route atlas events to
// any slog.Handler.
package glyphatlas
