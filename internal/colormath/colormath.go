// Package colormath converts hex colours to normalized RGB and compares them.
package colormath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxDistance is the largest value Distance can return (one per channel).
const MaxDistance = 3.0

// ErrInvalidFormat is returned when a hex colour is not exactly six hex digits.
var ErrInvalidFormat = errors.New("invalid hex color format")

// RGB is a colour with each channel scaled to [0,1] by value/255.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// HexToRGB parses "rrggbb" or "#rrggbb".
func HexToRGB(hex string) (RGB, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 || !isHexDigits(digits) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}
	return FromColorful(c), nil
}

// Distance is the L1 (Manhattan) distance between two colours in the unit cube.
func Distance(a, b RGB) float64 {
	return math.Abs(a.R-b.R) + math.Abs(a.G-b.G) + math.Abs(a.B-b.B)
}

// FromColorful converts a go-colorful colour.
func FromColorful(c colorful.Color) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Colorful returns the colour as a go-colorful value.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex formats the colour as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Clamped().Hex()
}

func isHexDigits(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
