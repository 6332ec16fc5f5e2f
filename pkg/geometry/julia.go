package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

const (
	juliaSearchIterations   = 10240
	juliaConvergenceLimit   = math.Scalar(1e-4)
	juliaDivergenceLimit    = math.Scalar(1e4)
	juliaDistanceIterations = 10000
	juliaGradientDelta      = math.Scalar(5e-3)
	juliaGradientIterations = 8
	juliaBoundingRadiusSq   = math.Scalar(3) // sphere around the (-1..1)^3 cube
)

// Julia represents a quaternion Julia set, the points whose orbit under
// z = z*z + c stays bounded, sliced at a fixed fourth component.
// The surface is found by sphere tracing a distance estimator.
type Julia struct {
	c         math.Quaternion
	cutPlane  math.Scalar
	scale     math.Scalar
	position  math.Vec3
	transform Transform
}

// NewJulia creates a new Julia set
func NewJulia(c math.Quaternion, cutPlane, scale math.Scalar, position math.Vec3, transform Transform) *Julia {
	return &Julia{c: c, cutPlane: cutPlane, scale: scale, position: position, transform: transform}
}

// Intersect sphere-traces the ray against the Julia set
func (j *Julia) Intersect(ray math.Ray, maxDistance math.Scalar) (core.Intersection, bool) {
	origin := j.transform.WorldToObject.Apply(ray.Origin).
		Subtract(j.position).
		Multiply(1 / j.scale)
	direction := j.transform.WorldToObject.ApplyDirection(ray.Direction).Normalize()

	point := origin
	if origin.SquaredLength() > juliaBoundingRadiusSq {
		// advance to the bounding sphere before tracing
		halfB := origin.Dot(direction)
		c := origin.SquaredLength() - juliaBoundingRadiusSq
		discriminant := halfB*halfB - c
		if discriminant < 0 {
			return core.Intersection{}, false
		}
		entry := -halfB - math.Sqrt(discriminant)
		if entry < 0 {
			return core.Intersection{}, false
		}
		point = origin.Add(direction.Multiply(entry))
	}

	distance := math.Infinity
	for step := 0; step < juliaSearchIterations; step++ {
		q := math.NewQuaternion(point.X, point.Y, point.Z, j.cutPlane)
		distance = j.estimateDistance(q, juliaDistanceIterations)
		if step == 0 && distance < juliaConvergenceLimit {
			// starting inside the set, push out instead of accepting the origin
			distance = 100 * juliaConvergenceLimit
		}
		if distance < juliaConvergenceLimit {
			break
		}
		if distance > juliaDivergenceLimit {
			return core.Intersection{}, false
		}
		point = point.Add(direction.Multiply(distance))
	}
	if distance >= juliaConvergenceLimit {
		return core.Intersection{}, false
	}

	normal := j.estimateNormal(point)
	if normal.Dot(direction) > 0 {
		normal = normal.Negate()
	}

	worldPoint := j.transform.ObjectToWorld.Apply(point.Multiply(j.scale).Add(j.position))
	worldNormal := j.transform.Normals.ApplyDirection(normal).Normalize()
	worldDistance := ray.Origin.Subtract(worldPoint).Length()
	if worldDistance < math.Epsilon || worldDistance > maxDistance {
		return core.Intersection{}, false
	}

	return core.Intersection{
		Distance:  worldDistance,
		Point:     worldPoint,
		Normal:    worldNormal,
		TextureUV: math.NewVec2(0, 0),
		PhotonUV:  math.NewVec2(0, 0),
	}, true
}

// estimateNormal builds the surface normal from central differences of
// the distance estimator along the three spatial quaternion axes
func (j *Julia) estimateNormal(point math.Vec3) math.Vec3 {
	q := math.NewQuaternion(point.X, point.Y, point.Z, j.cutPlane)
	h := juliaGradientDelta

	gradient := math.NewVec3(
		j.estimateDistance(q.Add(math.NewQuaternion(h, 0, 0, 0)), juliaGradientIterations)-
			j.estimateDistance(q.Add(math.NewQuaternion(-h, 0, 0, 0)), juliaGradientIterations),
		j.estimateDistance(q.Add(math.NewQuaternion(0, h, 0, 0)), juliaGradientIterations)-
			j.estimateDistance(q.Add(math.NewQuaternion(0, -h, 0, 0)), juliaGradientIterations),
		j.estimateDistance(q.Add(math.NewQuaternion(0, 0, h, 0)), juliaGradientIterations)-
			j.estimateDistance(q.Add(math.NewQuaternion(0, 0, -h, 0)), juliaGradientIterations),
	)
	return gradient.Normalize()
}

// estimateDistance returns a conservative lower bound on the distance
// from z to the Julia surface, tracking the running derivative of the
// escape iteration
func (j *Julia) estimateDistance(z math.Quaternion, iterations int) math.Scalar {
	magnitudeSq := z.SquaredLength()
	derivativeSq := math.Scalar(1)

	for i := 0; i < iterations; i++ {
		derivativeSq *= 4 * magnitudeSq
		z = z.MultiplyQ(z).Add(j.c)
		magnitudeSq = z.SquaredLength()
		if magnitudeSq > 1e10 {
			break
		}
	}

	magnitude := math.Sqrt(magnitudeSq)
	return math.Sqrt(magnitudeSq/derivativeSq) * 0.5 * math.Log(magnitude)
}
