package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Primitive is the intersection contract shared by all surface types.
// Implementations return the nearest hit with a positive world-space
// distance not exceeding maxDistance.
type Primitive interface {
	Intersect(ray math.Ray, maxDistance math.Scalar) (core.Intersection, bool)
}

// Transform bundles the matrices placing a primitive in the world
type Transform struct {
	ObjectToWorld math.Matrix34
	WorldToObject math.Matrix34
	Normals       math.Matrix34 // object to world for normals, scale-corrected
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		ObjectToWorld: math.Identity(),
		WorldToObject: math.Identity(),
		Normals:       math.Identity(),
	}
}
