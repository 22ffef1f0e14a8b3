package glyphatlas

import (
	"fmt"
	"image"

	"github.com/gogpu/glyphatlas/binpack"
)

// Metrics are the placement values recorded with a glyph, in pixels.
type Metrics struct {
	// BearingX is the offset from the pen position to the left edge.
	BearingX int
	// BearingY is the distance from the baseline up to the top edge.
	BearingY int
	// AdvanceX and AdvanceY move the pen to the next glyph.
	AdvanceX int
	AdvanceY int
}

// Entry describes one cached code.
type Entry struct {
	// Rect is where the glyph pixels live in the texture. Zero-area
	// glyphs have an empty Rect at the origin.
	Rect binpack.Rect

	Metrics

	// node is the packer leaf holding the glyph, or binpack.NoNode.
	node binpack.NodeID
}

// Atlas caches glyph bitmaps inside a single texture.
//
// Each code is inserted once and then looked up many times. Space is only
// reclaimed by an explicit Remove or Reset; a full atlas rejects further
// inserts with ErrAtlasFull.
//
// Atlas is not safe for concurrent use; see SyncAtlas.
type Atlas struct {
	cfg    Config
	tex    *Texture
	packer *binpack.Packer
	index  glyphIndex

	// dirty is the texture area written since the last MarkClean
	dirty image.Rectangle

	closed bool
}

// New creates an empty atlas with a zeroed texture.
func New(cfg Config) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Atlas{
		cfg:    cfg,
		tex:    newTexture(cfg.Width, cfg.Height, cfg.stride(cfg.Width), cfg.Format),
		packer: binpack.New(binpack.Rect{W: cfg.Width, H: cfg.Height}),
		index:  newIndex(cfg.Index),
	}

	Logger().Info("glyphatlas: atlas created",
		"width", cfg.Width,
		"height", cfg.Height,
		"format", cfg.Format.String(),
		"index", cfg.Index.String())
	return a, nil
}

// Insert packs bmp into the texture and records it under code.
//
// When no free region is large enough Insert returns ErrAtlasFull and the
// atlas is left untouched. Codes that are already present are rejected
// with ErrDuplicateCode. Zero-area bitmaps are recorded without using
// texture space.
func (a *Atlas) Insert(code uint32, bmp Bitmap, m Metrics) (Entry, error) {
	if a.closed {
		return Entry{}, ErrAtlasClosed
	}
	if bmp.Width < 0 || bmp.Height < 0 {
		return Entry{}, fmt.Errorf("%w: %dx%d bitmap", ErrInvalidSize, bmp.Width, bmp.Height)
	}
	if need := bmp.Width * bmp.Height * a.cfg.Format.BytesPerPixel(); len(bmp.Pix) < need {
		return Entry{}, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBitmap, len(bmp.Pix), need)
	}
	if err := a.index.check(code); err != nil {
		return Entry{}, err
	}
	if _, ok := a.index.get(code); ok {
		Logger().Warn("glyphatlas: duplicate insert rejected", "code", code)
		return Entry{}, fmt.Errorf("%w: %d", ErrDuplicateCode, code)
	}

	e := &Entry{
		Rect:    binpack.Rect{W: bmp.Width, H: bmp.Height},
		Metrics: m,
		node:    binpack.NoNode,
	}

	if bmp.Width > 0 && bmp.Height > 0 {
		pad := a.cfg.Padding
		id, slot, ok := a.packer.Insert(bmp.Width+2*pad, bmp.Height+2*pad)
		if !ok {
			Logger().Debug("glyphatlas: atlas full",
				"code", code,
				"width", bmp.Width,
				"height", bmp.Height,
				"utilization", a.packer.Utilization())
			return Entry{}, ErrAtlasFull
		}

		e.node = id
		e.Rect.X = slot.X + pad
		e.Rect.Y = slot.Y + pad
		a.tex.blit(e.Rect.X, e.Rect.Y, bmp.Width, bmp.Height, bmp.Pix)
		a.dirty = a.dirty.Union(e.Rect.Image())
	}

	a.index.put(code, e)
	return *e, nil
}

// Exists reports whether code is cached.
func (a *Atlas) Exists(code uint32) bool {
	if a.closed {
		return false
	}
	_, ok := a.index.get(code)
	return ok
}

// Get returns the entry recorded for code.
func (a *Atlas) Get(code uint32) (Entry, bool) {
	if a.closed {
		return Entry{}, false
	}
	e, ok := a.index.get(code)
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Remove forgets code and returns its texture region to the free space.
// The region, padding included, is zeroed.
func (a *Atlas) Remove(code uint32) bool {
	if a.closed {
		return false
	}
	e, ok := a.index.remove(code)
	if !ok {
		return false
	}
	if e.node == binpack.NoNode {
		return true
	}

	if slot, ok := a.packer.Rect(e.node); ok {
		a.tex.clear(slot.X, slot.Y, slot.W, slot.H)
		a.dirty = a.dirty.Union(slot.Image())
	}
	a.packer.Delete(e.node)
	return true
}

// Grow enlarges the atlas to width x height. Cached entries keep their
// rectangles; the new space opens to the right and below. Grow never
// shrinks. The texture is reallocated, so callers must fetch it again.
func (a *Atlas) Grow(width, height int) error {
	if a.closed {
		return ErrAtlasClosed
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidSize, width, height, MaxDimension)
	}
	if !a.packer.Resize(width, height) {
		return fmt.Errorf("%w: cannot shrink %dx%d to %dx%d",
			ErrInvalidSize, a.cfg.Width, a.cfg.Height, width, height)
	}
	if width == a.cfg.Width && height == a.cfg.Height {
		return nil
	}

	a.tex = a.tex.grown(width, height, a.cfg.stride(width))
	a.cfg.Width = width
	a.cfg.Height = height
	a.dirty = image.Rect(0, 0, width, height)

	Logger().Info("glyphatlas: atlas grown", "width", width, "height", height)
	return nil
}

// Reset drops every entry and zeroes the texture.
func (a *Atlas) Reset() {
	if a.closed {
		return
	}
	a.index.reset()
	a.packer.Reset()
	clear(a.tex.pix)
	a.dirty = image.Rect(0, 0, a.cfg.Width, a.cfg.Height)
}

// Close releases the texture, packer and index. Later inserts return
// ErrAtlasClosed and lookups report absence.
func (a *Atlas) Close() {
	a.tex = nil
	a.packer = nil
	a.index = nil
	a.dirty = image.Rectangle{}
	a.closed = true
}

// Texture returns the backing texture, or nil after Close.
func (a *Atlas) Texture() *Texture {
	return a.tex
}

// Config returns the atlas configuration, including its current size.
func (a *Atlas) Config() Config {
	return a.cfg
}

// Len returns the number of cached codes.
func (a *Atlas) Len() int {
	if a.closed {
		return 0
	}
	return a.index.size()
}

// Range calls fn for every cached code until fn returns false.
// fn must not modify the atlas.
func (a *Atlas) Range(fn func(code uint32, e Entry) bool) {
	if a.closed {
		return
	}
	a.index.each(func(code uint32, e *Entry) bool {
		return fn(code, *e)
	})
}

// Utilization returns the packed fraction of the texture (0.0 to 1.0),
// padding included.
func (a *Atlas) Utilization() float64 {
	if a.closed {
		return 0
	}
	return a.packer.Utilization()
}

// UV returns the normalized texture coordinates of e.
func (a *Atlas) UV(e Entry) (u0, v0, u1, v1 float32) {
	w := float32(a.cfg.Width)
	h := float32(a.cfg.Height)
	u0 = float32(e.Rect.X) / w
	v0 = float32(e.Rect.Y) / h
	u1 = float32(e.Rect.X+e.Rect.W) / w
	v1 = float32(e.Rect.Y+e.Rect.H) / h
	return u0, v0, u1, v1
}

// Dirty returns the texture area modified since the last MarkClean.
// An empty rectangle means the texture is unchanged.
func (a *Atlas) Dirty() image.Rectangle {
	return a.dirty
}

// MarkClean marks the texture as uploaded.
func (a *Atlas) MarkClean() {
	a.dirty = image.Rectangle{}
}
