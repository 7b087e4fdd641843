// Package light implements the clamped colour and intensity algebra that
// every fixture element is built from.
package light

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Intensity is a single clamped channel in [0,1].
type Intensity = float64

// Color is a clamped linear RGB triple. All three channels always lie in
// [0,1]; construction, scaling and addition each re-clamp.
type Color struct {
	R, G, B float64
}

func clamp(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ClampIntensity applies the same clamping law used by Color to a lone
// intensity channel.
func ClampIntensity(i Intensity) Intensity {
	return clamp(i)
}

// NewColor builds a Color, clamping each channel.
func NewColor(r, g, b float64) Color {
	return Color{R: clamp(r), G: clamp(g), B: clamp(b)}
}

// Black is the neutral colour value.
func Black() Color {
	return Color{}
}

// Scale multiplies every channel by strength and re-clamps.
func (c Color) Scale(strength float64) Color {
	return NewColor(c.R*strength, c.G*strength, c.B*strength)
}

// Add adds two colours componentwise, clamping the result.
func (c Color) Add(o Color) Color {
	return NewColor(c.R+o.R, c.G+o.G, c.B+o.B)
}

// ColorFromInt decodes the low 24 bits of v as 0xRRGGBB, dividing each byte
// by 255.
func ColorFromInt(v int32) Color {
	r := float64((v>>16)&0xff) / 255.0
	g := float64((v>>8)&0xff) / 255.0
	b := float64((v>>0)&0xff) / 255.0
	return NewColor(r, g, b)
}

// ColorFromFloats clamps an (r,g,b) triple without any int decoding.
func ColorFromFloats(r, g, b float64) Color {
	return NewColor(r, g, b)
}

// ColorFromHex parses a "#RRGGBB" string via go-colorful, the same hex
// parser the teacher used for its legacy fixture colour fields. The config
// loader decodes "#RRGGBB" effect element values with its own parser and
// does not call this.
func ColorFromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return NewColor(c.R, c.G, c.B), nil
}
