package glyphatlas

import "errors"

// Sentinel errors for glyphatlas. Compare with errors.Is.
var (
	// ErrAtlasFull is returned when the packer has no free region large
	// enough for the glyph. It is an expected outcome, not corruption.
	ErrAtlasFull = errors.New("glyphatlas: texture atlas is full")

	// ErrAtlasClosed is returned when operating on a closed atlas.
	ErrAtlasClosed = errors.New("glyphatlas: texture atlas is closed")

	// ErrDuplicateCode is returned when inserting a code that is already cached.
	ErrDuplicateCode = errors.New("glyphatlas: code is already in the atlas")

	// ErrCodeOutOfRange is returned when an ASCII-indexed atlas is given a
	// code above 127.
	ErrCodeOutOfRange = errors.New("glyphatlas: code is outside the index range")

	// ErrInvalidSize is returned for negative bitmap or atlas dimensions,
	// or for a Grow that would shrink the atlas.
	ErrInvalidSize = errors.New("glyphatlas: invalid size")

	// ErrShortBitmap is returned when a bitmap holds fewer bytes than
	// width*height*bytes-per-pixel.
	ErrShortBitmap = errors.New("glyphatlas: bitmap is smaller than its dimensions")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyphatlas: invalid config." + e.Field + ": " + e.Reason
}
