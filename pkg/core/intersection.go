package core

import (
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Intersection describes a ray/surface hit in world space
type Intersection struct {
	Distance  math.Scalar // world-space distance from the ray origin
	Point     math.Vec3   // world-space hit point
	Normal    math.Vec3   // world-space unit normal
	TextureUV math.Vec2   // surface parameterization for texture lookup
	PhotonUV  math.Vec2   // coordinate for photon texture deposits
}
