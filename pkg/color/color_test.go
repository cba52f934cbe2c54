package color

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/mypoly/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{"upper hex", "#FFDBAC", Color{0xFF, 0xDB, 0xAC}},
		{"lower hex", "#3b82f6", Color{0x3B, 0x82, 0xF6}},
		{"short hex", "#fff", White},
		{"0x prefix", "0x2c1608", Color{0x2C, 0x16, 0x08}},
		{"bare", "111111", Color{0x11, 0x11, 0x11}},
		{"whitespace", "  #000000 ", Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#GGGGGG", "red", "#1234567"} {
		_, err := Parse(in)
		if !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("Parse(%q) error = %v, want INVALID_COLOR", in, err)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Color{0x8D, 0x55, 0x24}
	if c.Hex() != "#8D5524" {
		t.Errorf("Hex() = %s", c.Hex())
	}
	back, err := Parse(c.Hex())
	if err != nil || back != c {
		t.Errorf("Parse(Hex()) = %v, %v", back, err)
	}
}

func TestShade(t *testing.T) {
	c := Color{200, 100, 50}
	if got := c.Shade(1); got != c {
		t.Errorf("Shade(1) = %v, want %v", got, c)
	}
	if got := c.Shade(0); got != Black {
		t.Errorf("Shade(0) = %v, want black", got)
	}
	if got := c.Shade(10); got != White {
		t.Errorf("Shade(10) = %v, want white", got)
	}
	half := c.Shade(0.5)
	if half.R >= c.R || half.G >= c.G || half.B >= c.B {
		t.Errorf("Shade(0.5) = %v, want darker than %v", half, c)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewPCG(7, 7)))
	b := Random(rand.New(rand.NewPCG(7, 7)))
	if a != b {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

func TestTextMarshaling(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("#EC4899")); err != nil {
		t.Fatal(err)
	}
	out, _ := c.MarshalText()
	if string(out) != "#EC4899" {
		t.Errorf("MarshalText() = %s", out)
	}
	if err := c.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText accepted invalid input")
	}
}

func TestRGBA(t *testing.T) {
	r, g, b, a := White.RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF || a != 0xFFFF {
		t.Errorf("White.RGBA() = %x %x %x %x", r, g, b, a)
	}
}
