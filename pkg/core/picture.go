package core

import (
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Picture is a rectangular buffer of linear radiance samples in row-major
// order. It serves as render target, texture and photon accumulation buffer.
type Picture struct {
	width, height int
	pixels        []Color
}

// NewPicture creates a Picture of the given size with all pixels zero
func NewPicture(width, height int) *Picture {
	return &Picture{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

// Width returns the picture width in pixels
func (p *Picture) Width() int { return p.width }

// Height returns the picture height in pixels
func (p *Picture) Height() int { return p.height }

// Empty reports whether the picture has no pixels
func (p *Picture) Empty() bool {
	return p == nil || len(p.pixels) == 0
}

// Get returns the pixel at (x, y)
func (p *Picture) Get(x, y int) Color {
	return p.pixels[y*p.width+x]
}

// Set stores a pixel at (x, y)
func (p *Picture) Set(x, y int, c Color) {
	p.pixels[y*p.width+x] = c
}

// MulAdd accumulates other scaled by factor into the picture.
// Both pictures must have the same size.
func (p *Picture) MulAdd(other *Picture, factor math.Scalar) {
	for i := range p.pixels {
		p.pixels[i] = p.pixels[i].Add(other.pixels[i].Multiply(factor))
	}
}
