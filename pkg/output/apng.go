package output

import (
	"fmt"
	"io"

	"github.com/kettek/apng"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Animation collects rendered frames and encodes them as an animated
// PNG that loops forever.
type Animation struct {
	animation apng.APNG
}

// NewAnimation creates an empty animation
func NewAnimation(frames int) *Animation {
	return &Animation{
		animation: apng.APNG{
			Frames:    make([]apng.Frame, 0, frames),
			LoopCount: 0, // loop forever
		},
	}
}

// AddFrame appends one picture shown for 1/fps seconds
func (a *Animation) AddFrame(picture *core.Picture, fps math.Scalar) {
	a.animation.Frames = append(a.animation.Frames, apng.Frame{
		Image:            toImage(picture, 1),
		DelayNumerator:   uint16(1000 / fps),
		DelayDenominator: 1000,
	})
}

// Encode writes the collected frames to w
func (a *Animation) Encode(w io.Writer) error {
	if len(a.animation.Frames) == 0 {
		return fmt.Errorf("animation has no frames")
	}
	return apng.Encode(w, a.animation)
}
