package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func photonScene() *scene.Scene {
	s := scene.NewScene()
	s.PhotonScanSteps = 8
	s.PhotonTextureSize = 16
	s.PhotonFactor = 1
	s.Camera.SetMaxBounces(4)
	return s
}

func TestMapPhotons_DirectHitNotStored(t *testing.T) {
	s := photonScene()
	s.Lights = append(s.Lights, core.NewPointLight(math.NewVec3(0, 0, 0), core.NewColor(1, 1, 1, 1)))
	// a diffuse sphere around the light catches every scan ray directly
	catcher := addSphere(s, math.NewVec3(0, 0, 0), 10, core.Material{
		Color: core.NewColor(1, 1, 1, 1),
		Kd:    1,
	})

	stats := &RenderStats{}
	MapPhotons(s, stats)

	if got := stats.Photons.Load(); got != 0 {
		t.Errorf("Expected no photons from direct light hits, got %d", got)
	}
	if got := catcher.Photon(math.NewVec2(0.5, 0.5)); got != (core.Color{}) {
		t.Errorf("Expected an empty photon texture, got %v", got)
	}
}

func TestMapPhotons_CausticDeposited(t *testing.T) {
	s := photonScene()
	s.Lights = append(s.Lights, core.NewPointLight(math.NewVec3(0, 0, 0), core.NewColor(1, 1, 1, 1)))
	// a glass sphere around the light refracts every scan ray before it
	// reaches the diffuse sphere further out
	addSphere(s, math.NewVec3(0, 0, 0), 1, core.Material{
		Color:         core.NewColor(1, 1, 1, 1),
		Transmittance: 1,
		Refraction:    complex(1.5, 0),
	})
	catcher := addSphere(s, math.NewVec3(0, 0, 0), 10, core.Material{
		Color: core.NewColor(1, 1, 1, 1),
		Kd:    1,
	})

	stats := &RenderStats{}
	MapPhotons(s, stats)

	if stats.Photons.Load() == 0 {
		t.Fatal("Expected refracted photons to be stored")
	}
	var total math.Scalar
	for y := math.Scalar(0); y <= 1; y += 0.25 {
		for x := math.Scalar(0); x <= 1; x += 0.25 {
			c := catcher.Photon(math.NewVec2(x, y))
			total += c.R + c.G + c.B
		}
	}
	if total <= 0 {
		t.Error("Expected deposited radiance on the diffuse sphere")
	}
}

func TestMapPhotons_ParallelLightSkipped(t *testing.T) {
	s := photonScene()
	s.Lights = append(s.Lights, core.NewParallelLight(math.NewVec3(0, 0, -1), core.NewColor(1, 1, 1, 1)))
	addSphere(s, math.NewVec3(0, 0, 0), 1, core.Material{
		Color:         core.NewColor(1, 1, 1, 1),
		Transmittance: 1,
		Refraction:    complex(1.5, 0),
	})
	addSphere(s, math.NewVec3(0, 0, 0), 10, core.Material{
		Color: core.NewColor(1, 1, 1, 1),
		Kd:    1,
	})

	stats := &RenderStats{}
	MapPhotons(s, stats)

	if got := stats.Photons.Load(); got != 0 {
		t.Errorf("Expected parallel lights to store no photons, got %d", got)
	}
}

func TestMapPhotons_DispersionSplitsRadiance(t *testing.T) {
	s := photonScene()
	s.Dispersion = true
	s.Lights = append(s.Lights, core.NewPointLight(math.NewVec3(0, 0, 0), core.NewColor(1, 1, 1, 1)))
	addSphere(s, math.NewVec3(0, 0, 0), 1, core.Material{
		Color:         core.NewColor(1, 1, 1, 1),
		Transmittance: 1,
		Refraction:    complex(1.5, 0),
		Dispersion:    0.05,
	})
	addSphere(s, math.NewVec3(0, 0, 0), 10, core.Material{
		Color: core.NewColor(1, 1, 1, 1),
		Kd:    1,
	})

	stats := &RenderStats{}
	MapPhotons(s, stats)

	if stats.Photons.Load() == 0 {
		t.Fatal("Expected dispersed photons to be stored")
	}
}
