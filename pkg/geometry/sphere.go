package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Sphere represents a sphere intersected in its own object space
type Sphere struct {
	center    math.Vec3
	radius    math.Scalar
	transform Transform
}

// NewSphere creates a new sphere
func NewSphere(center math.Vec3, radius math.Scalar, transform Transform) *Sphere {
	return &Sphere{center: center, radius: radius, transform: transform}
}

// Intersect tests the ray against the sphere and returns the nearest hit
func (s *Sphere) Intersect(ray math.Ray, maxDistance math.Scalar) (core.Intersection, bool) {
	origin := s.transform.WorldToObject.Apply(ray.Origin)
	direction := s.transform.WorldToObject.ApplyDirection(ray.Direction).Normalize()

	// the distance limit has to move into object space as well
	objectMaxDistance := math.Infinity
	if maxDistance != math.Infinity {
		farPoint := s.transform.WorldToObject.Apply(ray.At(maxDistance))
		objectMaxDistance = origin.Subtract(farPoint).Length()
	}

	oc := origin.Subtract(s.center)
	halfB := oc.Dot(direction)
	c := oc.SquaredLength() - s.radius*s.radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return core.Intersection{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	distance := -halfB - sqrtD
	if distance > objectMaxDistance {
		return core.Intersection{}, false
	}
	if distance < 0 {
		// origin inside the sphere, try the far root
		distance = -halfB + sqrtD
		if distance < 0 || distance > objectMaxDistance {
			return core.Intersection{}, false
		}
	}

	point := origin.Add(direction.Multiply(distance))
	normal := point.Subtract(s.center).Normalize()

	// equirectangular projection
	uv := math.NewVec2(
		0.5+math.Atan2(normal.X, normal.Z)/(2*math.Pi),
		0.5-math.Asin(normal.Y)/math.Pi,
	)

	worldPoint := s.transform.ObjectToWorld.Apply(point)
	worldNormal := s.transform.Normals.ApplyDirection(normal).Normalize()
	worldDistance := ray.Origin.Subtract(worldPoint).Length()

	return core.Intersection{
		Distance:  worldDistance,
		Point:     worldPoint,
		Normal:    worldNormal,
		TextureUV: uv,
		PhotonUV:  uv,
	}, true
}
