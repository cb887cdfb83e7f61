// Package hexcolor converts between "#rrggbb" strings and RGB byte triples.
package hexcolor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned by Decode for anything that is not six hex digits
// with an optional leading '#'.
var ErrInvalidHex = errors.New("invalid hex color")

// RGB is a color as three 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Defaults used when a color is missing or malformed.
var (
	DefaultBackground = RGB{0x0f, 0x17, 0x2a} // #0f172a
	DefaultRect       = RGB{0x1e, 0x29, 0x3b} // #1e293b
	DefaultText       = RGB{0xff, 0xff, 0xff} // #ffffff
)

// Decode parses "#rrggbb" or "rrggbb" (any case).
func Decode(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// DecodeOr decodes s and falls back to def when s is malformed.
func DecodeOr(s string, def RGB) RGB {
	c, err := Decode(s)
	if err != nil {
		return def
	}
	return c
}

// Encode formats c as a lowercase "#rrggbb" string.
func Encode(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Hex is Encode as a method.
func (c RGB) Hex() string { return Encode(c) }

// Container returns the uppercase six digit form stored in srgbClr@val.
func (c RGB) Container() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Normalize decodes and re-encodes s, returning def's hex on failure.
func Normalize(s string, def RGB) string {
	return Encode(DecodeOr(s, def))
}
