package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	stdmath "math"
	"testing"
)

func TestDecodeTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image failed: %v", err)
	}

	picture, err := DecodeTexture(&buf)
	if err != nil {
		t.Fatalf("DecodeTexture failed: %v", err)
	}

	if picture.Width() != 2 || picture.Height() != 2 {
		t.Fatalf("Expected 2x2 picture, got %dx%d", picture.Width(), picture.Height())
	}
	if got := picture.Get(0, 0); got.R != 1 || got.G != 0 || got.B != 0 || got.A != 1 {
		t.Errorf("Expected red at (0,0), got %v", got)
	}
	if got := picture.Get(1, 0); got.G != 1 {
		t.Errorf("Expected green at (1,0), got %v", got)
	}
	if got := picture.Get(0, 1); got.B != 1 {
		t.Errorf("Expected blue at (0,1), got %v", got)
	}
	if got := picture.Get(1, 1); stdmath.Abs(float64(got.R)-128.0/255.0) > 1e-3 {
		t.Errorf("Expected mid gray at (1,1), got %v", got)
	}
}

func TestDecodeTexture_InvalidData(t *testing.T) {
	_, err := DecodeTexture(bytes.NewReader([]byte("not a png")))
	if err == nil {
		t.Fatal("Expected a decode error")
	}
}

func TestLoadTexture_MissingFile(t *testing.T) {
	_, err := LoadTexture("does-not-exist.png")
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}
