// Package color defines the RGB color value used by catalogs, customization
// state and both renderers.
//
// Colors are stored as 8-bit channels so that equality is exact and rendered
// output is byte-stable. Parsing and shading go through go-colorful.
package color

import (
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mypoly/pkg/errors"
)

// Color is an opaque 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0x00, 0x00, 0x00}
	White = Color{0xFF, 0xFF, 0xFF}
	Ink   = Color{0x33, 0x33, 0x33}
)

// Parse parses "#RRGGBB", "#RGB" and "0xRRGGBB" notations, case-insensitive.
func Parse(s string) (Color, error) {
	in := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToLower(in), "0x"); ok {
		in = "#" + rest
	}
	if !strings.HasPrefix(in, "#") {
		in = "#" + in
	}
	if len(in) != 4 && len(in) != 7 {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q", s)
	}
	c, err := colorful.Hex(in)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return FromColorful(c), nil
}

// MustParse is like Parse but panics on malformed input. Used for static tables.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Colorful returns the color as a go-colorful value.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex returns the color as "#RRGGBB" in upper case.
func (c Color) Hex() string {
	return strings.ToUpper(c.Colorful().Hex())
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

// Shade scales the color's brightness by k (0 = black, 1 = unchanged).
// Values above 1 brighten and are clamped.
func (c Color) Shade(k float64) Color {
	k = max(0, k)
	src := c.Colorful()
	return FromColorful(colorful.Color{R: src.R * k, G: src.G * k, B: src.B * k})
}

// Random returns a uniformly random RGB triple drawn from rng.
func Random(rng *rand.Rand) Color {
	return Color{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256))}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
