package output

import (
	"image"
	"image/png"
	"io"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// WritePNG encodes the picture as a PNG image. Each channel is scaled
// by gain, clamped and quantized to 8 bits without gamma correction.
func WritePNG(w io.Writer, picture *core.Picture, gain math.Scalar) error {
	return png.Encode(w, toImage(picture, gain))
}

func toImage(picture *core.Picture, gain math.Scalar) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, picture.Width(), picture.Height()))
	for y := 0; y < picture.Height(); y++ {
		for x := 0; x < picture.Width(); x++ {
			pixel := picture.Get(x, y).ScaleOut(gain)
			offset := img.PixOffset(x, y)
			img.Pix[offset] = pixel.R
			img.Pix[offset+1] = pixel.G
			img.Pix[offset+2] = pixel.B
			img.Pix[offset+3] = pixel.A
		}
	}
	return img
}
