package renderer

import (
	stdmath "math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func testScene(width, height int) *scene.Scene {
	s := scene.NewScene()
	s.Threads = 2
	s.Camera.SetResolution(width, height)
	return s
}

func addSphere(s *scene.Scene, center math.Vec3, radius math.Scalar, material core.Material) *geometry.Object {
	sphere := geometry.NewSphere(center, radius, geometry.NewTransform())
	object := geometry.NewObject(sphere, material)
	s.Objects = append(s.Objects, object)
	return object
}

func TestRaytrace_EmptyScene(t *testing.T) {
	s := testScene(4, 4)
	s.Background = core.NewColor(0.25, 0.5, 0.75, 1)

	stats := &RenderStats{}
	picture := Raytrace(s, stats)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := picture.Get(x, y); got != s.Background {
				t.Fatalf("Expected background at (%d,%d), got %v", x, y, got)
			}
		}
	}
	if stats.Rays.Load() != 16 {
		t.Errorf("Expected 16 primary rays, got %d", stats.Rays.Load())
	}
}

func TestRaytrace_AmbientOnly(t *testing.T) {
	s := testScene(1, 1)
	s.Ambient = core.NewColor(1, 1, 1, 1)
	addSphere(s, math.NewVec3(0, 0, -5), 1, core.Material{
		Color: core.NewColor(1, 0, 0, 1),
		Ka:    1,
	})

	picture := Raytrace(s, &RenderStats{})
	got := picture.Get(0, 0)
	if stdmath.Abs(float64(got.R)-1) > 1e-5 || got.G != 0 || got.B != 0 {
		t.Errorf("Expected ambient red, got %v", got)
	}
	if got.A != 1 {
		t.Errorf("Expected opaque pixel, got alpha %v", got.A)
	}
}

func TestRaytrace_DiffuseLighting(t *testing.T) {
	s := testScene(1, 1)
	s.Lights = append(s.Lights, core.NewPointLight(math.NewVec3(0, 0, 0), core.NewColor(1, 1, 1, 1)))
	addSphere(s, math.NewVec3(0, 0, -5), 1, core.Material{
		Color: core.NewColor(1, 0, 0, 1),
		Kd:    1,
	})

	picture := Raytrace(s, &RenderStats{})
	got := picture.Get(0, 0)
	// the light sits on the viewing axis, so the lit point is at full
	// diffuse intensity
	if stdmath.Abs(float64(got.R)-1) > 1e-3 {
		t.Errorf("Expected full diffuse red, got %v", got)
	}
	if got.G != 0 || got.B != 0 {
		t.Errorf("Expected pure red diffuse, got %v", got)
	}
}

func TestRaytrace_ShadowedLight(t *testing.T) {
	s := testScene(1, 1)
	// the light sits behind the sphere, so the visible surface shadows itself
	s.Lights = append(s.Lights, core.NewPointLight(math.NewVec3(0, 0, -10), core.NewColor(1, 1, 1, 1)))
	addSphere(s, math.NewVec3(0, 0, -5), 1, core.Material{
		Color: core.NewColor(1, 0, 0, 1),
		Kd:    1,
	})

	picture := Raytrace(s, &RenderStats{})
	got := picture.Get(0, 0)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("Expected shadowed surface to be black, got %v", got)
	}
}

func TestRaytrace_BackFaceSkipped(t *testing.T) {
	s := testScene(1, 1)
	s.Background = core.NewColor(0.1, 0.2, 0.3, 1)
	s.Ambient = core.NewColor(1, 1, 1, 1)
	// the camera sits inside the sphere; only its back face is visible
	addSphere(s, math.NewVec3(0, 0, 0), 5, core.Material{
		Color: core.NewColor(1, 0, 0, 1),
		Ka:    1,
	})

	picture := Raytrace(s, &RenderStats{})
	if got := picture.Get(0, 0); got != s.Background {
		t.Errorf("Expected the background through the back face, got %v", got)
	}
}

func TestCalcFresnel_NormalIncidence(t *testing.T) {
	material := core.Material{Refraction: complex(1.5, 0)}
	kr := calcFresnel(material, -1, 0)
	want := math.Scalar(0.04) // ((1.5-1)/(1.5+1))^2
	if stdmath.Abs(float64(kr-want)) > 1e-4 {
		t.Errorf("Expected kr %v at normal incidence, got %v", want, kr)
	}
}

func TestCalcFresnel_TotalInternalReflection(t *testing.T) {
	material := core.Material{Refraction: complex(1.5, 0)}
	// leaving the denser medium at 60 degrees exceeds the critical angle
	kr := calcFresnel(material, 0.5, 0)
	if kr != 1 {
		t.Errorf("Expected total internal reflection, got kr %v", kr)
	}
}

func TestCalcFresnel_Range(t *testing.T) {
	materials := []core.Material{
		{Refraction: complex(1.1, 0)},
		{Refraction: complex(1.5, 0)},
		{Refraction: complex(2.4, 0)},
		{Refraction: complex(0.2, 3.5)}, // metal-like complex index
	}
	for _, material := range materials {
		for cos := math.Scalar(-1); cos <= 1; cos += 0.125 {
			kr := calcFresnel(material, cos, 0)
			if kr < 0 || kr > 1.0001 {
				t.Errorf("kr %v out of range for refraction %v at cos %v", kr, material.Refraction, cos)
			}
		}
	}
}

func TestCalcFresnel_DispersionShiftsIndex(t *testing.T) {
	plain := core.Material{Refraction: complex(1.5, 0)}
	dispersive := core.Material{Refraction: complex(1.5, 0), Dispersion: 0.1}
	// at wavelength 1 the effective index is 1.6
	shifted := core.Material{Refraction: complex(1.6, 0)}

	got := calcFresnel(dispersive, -1, 1)
	want := calcFresnel(shifted, -1, 0)
	if stdmath.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("Expected dispersion to shift the index, got %v want %v", got, want)
	}
	if got == calcFresnel(plain, -1, 0) {
		t.Error("Expected dispersion to change the reflection coefficient")
	}
}

func TestRaytrace_ReflectionShowsLitSurface(t *testing.T) {
	s := testScene(1, 1)
	s.Ambient = core.NewColor(1, 1, 1, 1)
	// a mirror in front of the camera and a green sphere behind the camera
	addSphere(s, math.NewVec3(0, 0, -5), 1, core.Material{
		Color:       core.NewColor(0, 0, 0, 1),
		Reflectance: 1,
		Refraction:  complex(100, 0),
	})
	addSphere(s, math.NewVec3(0, 0, 6), 1, core.Material{
		Color: core.NewColor(0, 1, 0, 1),
		Ka:    1,
	})

	picture := Raytrace(s, &RenderStats{})
	got := picture.Get(0, 0)
	if got.G <= 0.5 {
		t.Errorf("Expected the mirror to show the green sphere, got %v", got)
	}
	if got.R != 0 {
		t.Errorf("Expected no red in the mirror image, got %v", got)
	}
}

func TestRaytrace_MaxBouncesLimitsRecursion(t *testing.T) {
	s := testScene(1, 1)
	s.Camera.SetMaxBounces(0)
	s.Ambient = core.NewColor(1, 1, 1, 1)
	addSphere(s, math.NewVec3(0, 0, -5), 1, core.Material{
		Color:       core.NewColor(0, 0, 0, 1),
		Reflectance: 1,
		Refraction:  complex(100, 0),
	})
	addSphere(s, math.NewVec3(0, 0, 6), 1, core.Material{
		Color: core.NewColor(0, 1, 0, 1),
		Ka:    1,
	})

	picture := Raytrace(s, &RenderStats{})
	got := picture.Get(0, 0)
	if got.G != 0 {
		t.Errorf("Expected recursion to stop before the mirror image, got %v", got)
	}
}
