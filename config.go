package glyphatlas

// Limits enforced by Config.Validate.
const (
	// MaxDimension is the largest supported atlas side in pixels.
	MaxDimension = 16384

	// MaxPadding is the largest supported glyph margin in pixels.
	MaxPadding = 64

	// MaxStrideAlign is the largest supported row alignment in bytes.
	MaxStrideAlign = 256
)

// Config holds atlas configuration.
type Config struct {
	// Width and Height are the texture dimensions in pixels.
	// Default: 512x512
	Width  int
	Height int

	// Format is the texture pixel format. Bitmaps passed to Insert must
	// use the same format.
	// Default: FormatRGBA8
	Format Format

	// Index selects how codes are mapped to entries.
	// Default: IndexHash
	Index IndexKind

	// Padding is a transparent margin kept around every glyph.
	// Default: 0
	Padding int

	// StrideAlign rounds every texture row up to a multiple of this many
	// bytes. Must be a power of two; 0 means 1.
	// Default: 1
	StrideAlign int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       512,
		Height:      512,
		Format:      FormatRGBA8,
		Index:       IndexHash,
		Padding:     0,
		StrideAlign: 1,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Width > MaxDimension {
		return &ConfigError{Field: "Width", Reason: "must be between 1 and 16384"}
	}
	if c.Height < 1 || c.Height > MaxDimension {
		return &ConfigError{Field: "Height", Reason: "must be between 1 and 16384"}
	}
	if c.Format.BytesPerPixel() == 0 {
		return &ConfigError{Field: "Format", Reason: "unknown pixel format"}
	}
	if c.Index != IndexHash && c.Index != IndexASCII {
		return &ConfigError{Field: "Index", Reason: "unknown index kind"}
	}
	if c.Padding < 0 || c.Padding > MaxPadding {
		return &ConfigError{Field: "Padding", Reason: "must be between 0 and 64"}
	}
	if c.StrideAlign < 0 || c.StrideAlign > MaxStrideAlign || c.StrideAlign&(c.StrideAlign-1) != 0 {
		return &ConfigError{Field: "StrideAlign", Reason: "must be a power of two up to 256"}
	}
	return nil
}

// stride returns the row length in bytes for a texture of the given width.
func (c *Config) stride(width int) int {
	row := width * c.Format.BytesPerPixel()
	align := c.StrideAlign
	if align <= 1 {
		return row
	}
	return (row + align - 1) &^ (align - 1)
}
