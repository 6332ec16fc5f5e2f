package core

import (
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Color represents a linear RGBA value. It doubles as Radiance and
// light Power; channels are unbounded above and quantized only at encode time.
type Color struct {
	R, G, B, A math.Scalar
}

// UColor is an 8-bit RGBA pixel as written to image files
type UColor struct {
	R, G, B, A uint8
}

// NewColor creates a new Color
func NewColor(r, g, b, a math.Scalar) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Add returns the channelwise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// MultiplyColor returns the channelwise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar math.Scalar) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar, c.A * scalar}
}

// Divide returns the color divided by a scalar
func (c Color) Divide(scalar math.Scalar) Color {
	return Color{c.R / scalar, c.G / scalar, c.B / scalar, c.A / scalar}
}

// WithoutAlpha returns the color with alpha forced to 1
func (c Color) WithoutAlpha() Color {
	return Color{c.R, c.G, c.B, 1}
}

// ScaleOut scales the color by gain, clamps to [0,1] and quantizes each
// channel to 8 bits. No gamma correction is applied.
func (c Color) ScaleOut(gain math.Scalar) UColor {
	return UColor{
		R: uint8(math.Clamp(c.R*gain, 0, 1) * 255),
		G: uint8(math.Clamp(c.G*gain, 0, 1) * 255),
		B: uint8(math.Clamp(c.B*gain, 0, 1) * 255),
		A: uint8(math.Clamp(c.A*gain, 0, 1) * 255),
	}
}

// HSVToRGB converts a hue in degrees and saturation/value in [0,100]
// to a linear RGB color with alpha 1
func HSVToRGB(h, s, v math.Scalar) Color {
	s /= 100
	v /= 100

	sector := math.Floor(h / 60)
	f := h/60 - sector
	p := v * (1 - s)
	q := v * (1 - f*s)
	u := v * (1 - (1-f)*s)

	switch int(sector) % 6 {
	case 0:
		return Color{v, u, p, 1}
	case 1:
		return Color{q, v, p, 1}
	case 2:
		return Color{p, v, u, 1}
	case 3:
		return Color{p, q, v, 1}
	case 4:
		return Color{u, p, v, 1}
	default:
		return Color{v, p, q, 1}
	}
}
