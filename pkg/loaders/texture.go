package loaders

import (
	"fmt"
	"image"
	_ "image/png" // PNG decoder
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// LoadTexture reads a PNG texture and converts it to linear color
// values in [0, 1]. No gamma correction is applied.
func LoadTexture(filename string) (*core.Picture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("texture file %q could not be opened: %w", filename, err)
	}
	defer file.Close()

	return DecodeTexture(file)
}

// DecodeTexture reads a PNG texture from r.
func DecodeTexture(r io.Reader) (*core.Picture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding texture: %w", err)
	}

	bounds := img.Bounds()
	picture := core.NewPicture(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			// RGBA returns alpha-premultiplied channels in [0, 65535]
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			picture.Set(x, y, core.NewColor(
				math.Scalar(r)/65535,
				math.Scalar(g)/65535,
				math.Scalar(b)/65535,
				math.Scalar(a)/65535,
			))
		}
	}
	return picture, nil
}
