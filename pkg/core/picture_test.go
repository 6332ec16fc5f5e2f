package core

import (
	"math"
	"testing"
)

func TestPicture_GetSet(t *testing.T) {
	p := NewPicture(4, 3)

	if p.Width() != 4 || p.Height() != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", p.Width(), p.Height())
	}

	p.Set(2, 1, NewColor(1, 0.5, 0.25, 1))
	got := p.Get(2, 1)
	if got != (Color{1, 0.5, 0.25, 1}) {
		t.Errorf("Expected stored pixel, got %v", got)
	}

	if p.Get(1, 2) != (Color{}) {
		t.Errorf("Untouched pixels must be zero")
	}
}

func TestPicture_Empty(t *testing.T) {
	var nilPicture *Picture
	if !nilPicture.Empty() {
		t.Error("nil picture must be empty")
	}
	if !NewPicture(0, 0).Empty() {
		t.Error("zero-sized picture must be empty")
	}
	if NewPicture(1, 1).Empty() {
		t.Error("1x1 picture must not be empty")
	}
}

func TestPicture_MulAdd(t *testing.T) {
	dst := NewPicture(2, 2)
	src := NewPicture(2, 2)

	src.Set(0, 0, NewColor(1, 1, 1, 1))
	src.Set(1, 1, NewColor(0, 2, 0, 1))

	dst.MulAdd(src, 0.5)
	dst.MulAdd(src, 0.5)

	got := dst.Get(0, 0)
	if math.Abs(float64(got.R)-1) > 1e-6 {
		t.Errorf("Expected accumulated r=1, got %f", got.R)
	}

	got = dst.Get(1, 1)
	if math.Abs(float64(got.G)-2) > 1e-6 {
		t.Errorf("Expected accumulated g=2, got %f", got.G)
	}

	if dst.Get(1, 0) != (Color{}) {
		t.Errorf("Expected untouched pixel to stay zero")
	}
}
