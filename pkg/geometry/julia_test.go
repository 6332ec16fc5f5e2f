package geometry

import (
	"math"
	"testing"

	mathpkg "github.com/df07/go-whitted-raytracer/pkg/math"
)

// With c = 0 the iteration z = z*z stays bounded exactly inside the unit
// sphere, so the traced surface must sit at radius 1.
func unitSphereJulia() *Julia {
	return NewJulia(mathpkg.NewQuaternion(0, 0, 0, 0), 0, 1, mathpkg.NewVec3(0, 0, 0), NewTransform())
}

func TestJulia_Intersect_UnitSphereSet(t *testing.T) {
	julia := unitSphereJulia()
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 3), mathpkg.NewVec3(0, 0, -1))

	hit, isHit := julia.Intersect(ray, mathpkg.Infinity)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(float64(hit.Distance)-2) > 0.01 {
		t.Errorf("Expected distance near 2, got %f", hit.Distance)
	}
	if math.Abs(float64(hit.Point.Length())-1) > 0.01 {
		t.Errorf("Expected hit on the unit sphere, got %v", hit.Point)
	}
}

func TestJulia_Intersect_NormalFacesRay(t *testing.T) {
	julia := unitSphereJulia()

	directions := []mathpkg.Vec3{
		mathpkg.NewVec3(0, 0, -1),
		mathpkg.NewVec3(-1, 0, 0),
		mathpkg.NewVec3(-1, -1, -1),
	}

	for _, dir := range directions {
		ray := mathpkg.NewRay(dir.Multiply(-3), dir)
		hit, isHit := julia.Intersect(ray, mathpkg.Infinity)
		if !isHit {
			t.Fatalf("Expected hit for direction %v", dir)
		}
		if hit.Normal.Dot(ray.Direction) > 0 {
			t.Errorf("Expected normal turned against the ray, got %v for direction %v", hit.Normal, dir)
		}
		if math.Abs(float64(hit.Normal.Length())-1) > 1e-4 {
			t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
		}
	}
}

func TestJulia_Intersect_MissOutsideBoundingSphere(t *testing.T) {
	julia := unitSphereJulia()

	// passes well outside the bounding sphere
	ray := mathpkg.NewRay(mathpkg.NewVec3(5, 0, 3), mathpkg.NewVec3(0, 0, -1))
	if _, isHit := julia.Intersect(ray, mathpkg.Infinity); isHit {
		t.Error("Expected miss for a ray outside the bounding sphere")
	}

	// bounding sphere behind the origin
	ray = mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.NewVec3(0, 0, 1))
	if _, isHit := julia.Intersect(ray, mathpkg.Infinity); isHit {
		t.Error("Expected miss for a set behind the ray origin")
	}
}

func TestJulia_Intersect_MaxDistance(t *testing.T) {
	julia := unitSphereJulia()
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 3), mathpkg.NewVec3(0, 0, -1))

	if _, isHit := julia.Intersect(ray, 1.0); isHit {
		t.Error("Expected miss beyond the distance limit")
	}
}

func TestJulia_Intersect_UVIsZero(t *testing.T) {
	julia := unitSphereJulia()
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 3), mathpkg.NewVec3(0, 0, -1))

	hit, isHit := julia.Intersect(ray, mathpkg.Infinity)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.TextureUV != (mathpkg.Vec2{}) || hit.PhotonUV != (mathpkg.Vec2{}) {
		t.Errorf("Expected zero UVs, got %v / %v", hit.TextureUV, hit.PhotonUV)
	}
}

func TestJulia_EstimateDistance_GrowsWithRadius(t *testing.T) {
	julia := unitSphereJulia()

	near := julia.estimateDistance(mathpkg.NewQuaternion(1.1, 0, 0, 0), juliaDistanceIterations)
	far := julia.estimateDistance(mathpkg.NewQuaternion(2, 0, 0, 0), juliaDistanceIterations)

	if near <= 0 || far <= 0 {
		t.Fatalf("Expected positive estimates, got %f and %f", near, far)
	}
	if near >= far {
		t.Errorf("Expected the estimate to grow with distance, got near=%f far=%f", near, far)
	}
	// conservative bound never overshoots the true distance
	if float64(near) > 0.11 {
		t.Errorf("Expected a lower bound below the true distance 0.1, got %f", near)
	}
}
