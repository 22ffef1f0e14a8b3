package glyphatlas

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantField string
	}{
		{
			name:   "default is valid",
			config: DefaultConfig(),
		},
		{
			name:   "zero stride align is valid",
			config: Config{Width: 8, Height: 8},
		},
		{
			name:   "max size is valid",
			config: Config{Width: MaxDimension, Height: 1, Format: FormatAlpha8},
		},
		{
			name:      "zero width",
			config:    Config{Width: 0, Height: 8},
			wantField: "Width",
		},
		{
			name:      "height too large",
			config:    Config{Width: 8, Height: MaxDimension + 1},
			wantField: "Height",
		},
		{
			name:      "unknown format",
			config:    Config{Width: 8, Height: 8, Format: Format(7)},
			wantField: "Format",
		},
		{
			name:      "unknown index",
			config:    Config{Width: 8, Height: 8, Index: IndexKind(3)},
			wantField: "Index",
		},
		{
			name:      "negative padding",
			config:    Config{Width: 8, Height: 8, Padding: -1},
			wantField: "Padding",
		},
		{
			name:      "padding too large",
			config:    Config{Width: 8, Height: 8, Padding: MaxPadding + 1},
			wantField: "Padding",
		},
		{
			name:      "stride align not power of two",
			config:    Config{Width: 8, Height: 8, StrideAlign: 12},
			wantField: "StrideAlign",
		},
		{
			name:      "stride align too large",
			config:    Config{Width: 8, Height: 8, StrideAlign: 512},
			wantField: "StrideAlign",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Error() = %q does not name the field", err.Error())
			}
		})
	}
}

func TestConfig_Stride(t *testing.T) {
	tests := []struct {
		format Format
		width  int
		align  int
		want   int
	}{
		{FormatRGBA8, 10, 0, 40},
		{FormatRGBA8, 10, 1, 40},
		{FormatRGBA8, 10, 64, 64},
		{FormatAlpha8, 10, 4, 12},
		{FormatAlpha8, 12, 4, 12},
		{FormatAlpha8, 1, 256, 256},
	}

	for _, tt := range tests {
		c := Config{Format: tt.format, StrideAlign: tt.align}
		if got := c.stride(tt.width); got != tt.want {
			t.Errorf("stride(%v, w=%d, align=%d) = %d, want %d", tt.format, tt.width, tt.align, got, tt.want)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	a, err := New(Config{Width: -4, Height: 4})
	if err == nil {
		t.Fatal("New() with negative width succeeded")
	}
	if a != nil {
		t.Error("New() returned an atlas alongside an error")
	}
}
