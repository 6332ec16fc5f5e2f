package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Scene holds everything needed to render one instant of the timeline.
// It is rebuilt from the scene file for every frame and sub-frame so
// animated attributes resolve to their momentary values.
type Scene struct {
	Path       string
	OutputFile string

	Threads   int
	Time      math.Scalar // Infinity means a still image at t=0
	Frames    int
	FPS       math.Scalar
	SubFrames int

	Camera     *core.Camera
	Background core.Color
	Ambient    core.Color
	Lights     []core.Light
	Objects    []*geometry.Object

	// Dispersion is set when any material carries a dispersion coefficient
	Dispersion bool

	PhotonScanSteps   math.Scalar
	PhotonTextureSize int
	PhotonFactor      math.Scalar
}

// NewScene creates a scene with default settings and no content
func NewScene() *Scene {
	return &Scene{
		Threads:   8,
		Time:      math.Infinity,
		Frames:    1,
		FPS:       25,
		SubFrames: 1,
		Camera:    core.NewCamera(),
	}
}
