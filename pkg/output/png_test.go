package output

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestWritePNG_RoundTrip(t *testing.T) {
	picture := core.NewPicture(2, 1)
	picture.Set(0, 0, core.NewColor(1, 0, 0, 1))
	picture.Set(1, 0, core.NewColor(0, 0.5, 0, 1))

	var buf bytes.Buffer
	if err := WritePNG(&buf, picture, 1); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding written PNG failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 2x1 image, got %v", img.Bounds())
	}
	r, _, _, a := img.At(0, 0).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("Expected full red at (0,0), got r=%d a=%d", r, a)
	}
	_, g, _, _ := img.At(1, 0).RGBA()
	// 0.5 quantizes to 127 of 255
	if g>>8 != 127 {
		t.Errorf("Expected half green at (1,0), got %d", g>>8)
	}
}

func TestWritePNG_GainClamps(t *testing.T) {
	picture := core.NewPicture(1, 1)
	picture.Set(0, 0, core.NewColor(2, 0.25, 0, 1))

	var buf bytes.Buffer
	if err := WritePNG(&buf, picture, 2); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding written PNG failed: %v", err)
	}
	r, g, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Errorf("Expected overbright channel clamped to 255, got %d", r>>8)
	}
	if g>>8 != 127 {
		t.Errorf("Expected 0.25 with gain 2 to quantize to 127, got %d", g>>8)
	}
}
