package core

import (
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Camera holds the viewpoint and per-frame render settings. Mutating any
// view parameter recomputes the camera transform and focus distance.
type Camera struct {
	position      math.Vec3
	lookAt        math.Vec3
	up            math.Vec3
	fov           math.Scalar // horizontal field of view in radians
	width         int
	height        int
	maxBounces    int
	superSampling int // rays per pixel axis
	focusPoint    math.Vec3
	lensSize      math.Scalar

	transform     math.Matrix34
	focusDistance math.Scalar
}

// NewCamera creates a camera with default settings
func NewCamera() *Camera {
	c := &Camera{
		position:      math.NewVec3(0, 0, 0),
		lookAt:        math.NewVec3(0, 0, -1),
		up:            math.NewVec3(0, 1, 0),
		fov:           math.Pi / 4,
		width:         512,
		height:        512,
		maxBounces:    8,
		superSampling: 1,
		focusPoint:    math.NewVec3(0, 0, -1),
	}
	c.update()
	return c
}

func (c *Camera) update() {
	c.transform = math.LookAt(c.position, c.lookAt, c.up)
	c.focusDistance = c.focusPoint.Subtract(c.position).Length()
}

// SetPosition moves the camera
func (c *Camera) SetPosition(v math.Vec3) {
	c.position = v
	c.update()
}

// SetLookAt aims the camera at a world point
func (c *Camera) SetLookAt(v math.Vec3) {
	c.lookAt = v
	c.update()
}

// SetUp sets the camera up direction
func (c *Camera) SetUp(v math.Vec3) {
	c.up = v
	c.update()
}

// SetFov sets the horizontal field of view in radians
func (c *Camera) SetFov(fov math.Scalar) {
	c.fov = fov
	c.update()
}

// SetResolution sets the output size in pixels
func (c *Camera) SetResolution(width, height int) {
	c.width = width
	c.height = height
	c.update()
}

// SetMaxBounces limits the recursion depth of the shader
func (c *Camera) SetMaxBounces(n int) {
	c.maxBounces = n
	c.update()
}

// SetSuperSampling sets the number of rays per pixel axis
func (c *Camera) SetSuperSampling(n int) {
	c.superSampling = n
	c.update()
}

// SetFocusPoint sets the world point the lens focuses on
func (c *Camera) SetFocusPoint(v math.Vec3) {
	c.focusPoint = v
	c.update()
}

// SetLensSize sets the lens aperture; zero disables depth of field
func (c *Camera) SetLensSize(s math.Scalar) {
	c.lensSize = s
	c.update()
}

// Position returns the camera position
func (c *Camera) Position() math.Vec3 { return c.position }

// Fov returns the horizontal field of view in radians
func (c *Camera) Fov() math.Scalar { return c.fov }

// Width returns the horizontal resolution
func (c *Camera) Width() int { return c.width }

// Height returns the vertical resolution
func (c *Camera) Height() int { return c.height }

// MaxBounces returns the shader recursion limit
func (c *Camera) MaxBounces() int { return c.maxBounces }

// SuperSampling returns the number of rays per pixel axis
func (c *Camera) SuperSampling() int { return c.superSampling }

// LensSize returns the lens aperture
func (c *Camera) LensSize() math.Scalar { return c.lensSize }

// Transform returns the camera to world transform
func (c *Camera) Transform() math.Matrix34 { return c.transform }

// FocusDistance returns the distance from the camera to the focus point
func (c *Camera) FocusDistance() math.Scalar { return c.focusDistance }
