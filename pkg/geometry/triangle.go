package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Vertex is a triangle corner with shading attributes
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	TextureUV math.Vec2
}

// Triangle represents a triangle in world space with per-vertex
// normals and texture coordinates
type Triangle struct {
	v0, v1, v2 Vertex
}

// NewTriangle creates a new triangle
func NewTriangle(v0, v1, v2 Vertex) *Triangle {
	return &Triangle{v0: v0, v1: v1, v2: v2}
}

// Intersect tests the ray against the triangle using the
// Moller-Trumbore algorithm. Barycentric weights are accepted down to
// -epsilon so shared edges of adjacent triangles do not show cracks.
func (t *Triangle) Intersect(ray math.Ray, maxDistance math.Scalar) (core.Intersection, bool) {
	edge1 := t.v1.Position.Subtract(t.v0.Position)
	edge2 := t.v2.Position.Subtract(t.v0.Position)

	pvec := ray.Direction.Cross(edge2)
	determinant := edge1.Dot(pvec)
	if determinant == 0 {
		return core.Intersection{}, false
	}
	invDet := 1 / determinant

	tvec := ray.Origin.Subtract(t.v0.Position)
	w1 := tvec.Dot(pvec) * invDet
	if w1 < -math.Epsilon || w1 > 1 {
		return core.Intersection{}, false
	}

	qvec := tvec.Cross(edge1)
	w2 := ray.Direction.Dot(qvec) * invDet
	if w2 < -math.Epsilon || w1+w2 > 1 {
		return core.Intersection{}, false
	}

	distance := edge2.Dot(qvec) * invDet
	if distance < 0 || distance > maxDistance {
		return core.Intersection{}, false
	}

	w0 := 1 - w1 - w2
	normal := t.v0.Normal.Multiply(w0).
		Add(t.v1.Normal.Multiply(w1)).
		Add(t.v2.Normal.Multiply(w2)).
		Normalize()

	uv := t.v0.TextureUV.Multiply(w0).
		Add(t.v1.TextureUV.Multiply(w1)).
		Add(t.v2.TextureUV.Multiply(w2))

	return core.Intersection{
		Distance:  distance,
		Point:     ray.At(distance),
		Normal:    normal,
		TextureUV: uv,
		PhotonUV:  math.NewVec2(w0, w1),
	}, true
}
