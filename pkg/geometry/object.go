package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Object pairs a primitive with its material and an optional photon
// texture holding caustic radiance deposited by the photon pre-pass.
type Object struct {
	Primitive Primitive
	Material  core.Material

	photons *core.Picture
}

// NewObject creates a new object
func NewObject(primitive Primitive, material core.Material) *Object {
	return &Object{Primitive: primitive, Material: material}
}

// Intersect tests the ray against the object's primitive
func (o *Object) Intersect(ray math.Ray, maxDistance math.Scalar) (core.Intersection, bool) {
	return o.Primitive.Intersect(ray, maxDistance)
}

// AddPhoton sums radiance into the photon texture at the given
// coordinate, allocating a textureSize x textureSize texture on first use
func (o *Object) AddPhoton(textureSize int, uv math.Vec2, radiance core.Color) {
	if o.photons.Empty() {
		o.photons = core.NewPicture(textureSize, textureSize)
	}
	x, y := o.photonPixel(uv)
	o.photons.Set(x, y, o.photons.Get(x, y).Add(radiance))
}

// Photon returns the deposited radiance at the given coordinate, or
// zero for objects never struck by a photon
func (o *Object) Photon(uv math.Vec2) core.Color {
	if o.photons.Empty() {
		return core.Color{}
	}
	x, y := o.photonPixel(uv)
	return o.photons.Get(x, y)
}

func (o *Object) photonPixel(uv math.Vec2) (int, int) {
	width := o.photons.Width()
	height := o.photons.Height()
	x := int(uv.X * math.Scalar(width-1))
	y := int(uv.Y * math.Scalar(height-1))
	return clampIndex(x, width-1), clampIndex(y, height-1)
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
