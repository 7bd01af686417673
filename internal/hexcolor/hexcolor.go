// Package hexcolor parses CSS-style hex color strings ("#RRGGBB" or the
// "#RGB" shorthand) into 8-bit-per-channel RGB values.
package hexcolor

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidFormat is the sentinel matched by every parse failure.
var ErrInvalidFormat = errors.New("invalid hex color format")

// FormatError reports a hex string that could not be parsed. Input holds the
// string exactly as the caller passed it.
type FormatError struct {
	Input string
	// Err is the underlying strconv error, nil for length failures.
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid hex color format %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid hex color format %q: must be 3 or 6 hex digits", e.Input)
}

// Unwrap lets errors.Is match both ErrInvalidFormat and the strconv cause.
func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidFormat, e.Err}
	}
	return []error{ErrInvalidFormat}
}

// ColorSpec is an opaque sRGB color with 8 bits per channel.
type ColorSpec struct {
	R, G, B uint8
}

// RGBA implements [color.Color]. Alpha is always fully opaque.
func (c ColorSpec) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns c as a [color.NRGBA] with A set to 255.
func (c ColorSpec) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// String returns the canonical lower-case "#rrggbb" form.
func (c ColorSpec) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Parse converts a hex color string into a [ColorSpec]. A single leading "#"
// is optional and digits are case-insensitive. Three-digit shorthand expands
// each digit in place ("f0a" becomes "ff00aa"). Any other length, including
// the 4- and 8-digit alpha forms, and any non-hex character fail with a
// [*FormatError].
func Parse(input string) (ColorSpec, error) {
	hex := strings.TrimPrefix(input, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return ColorSpec{}, &FormatError{Input: input}
	}

	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return ColorSpec{}, &FormatError{Input: input, Err: err}
		}
		ch[i] = uint8(v)
	}
	return ColorSpec{R: ch[0], G: ch[1], B: ch[2]}, nil
}
