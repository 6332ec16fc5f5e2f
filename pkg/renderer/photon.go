package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// The photon mapper runs before raytracing. It casts sample rays from
// every point light through all reflective and transparent objects
// until they hit a diffuse object, where the radiance is stored in the
// object's photon texture and picked up later during shading.

type photonMapper struct {
	scene *scene.Scene
	stats *RenderStats
}

// MapPhotons scans the scene's point lights and deposits caustic
// radiance on diffuse surfaces.
func MapPhotons(s *scene.Scene, stats *RenderStats) {
	m := &photonMapper{scene: s, stats: stats}
	m.generate()
}

func (m *photonMapper) generate() {
	for _, light := range m.scene.Lights {
		if light.Parallel {
			// parallel lights would need to cast directly on objects
			continue
		}
		stepAngle := 2 * math.Pi / m.scene.PhotonScanSteps
		for phi := math.Scalar(0); phi < 2*math.Pi; phi += stepAngle {
			for theta := math.Scalar(0); theta < math.Pi; theta += stepAngle {
				scanDirection := math.NewVec3(
					math.Sin(theta)*math.Cos(phi),
					math.Sin(theta)*math.Sin(phi),
					math.Cos(theta),
				)
				lightRay := math.NewRay(light.Position, scanDirection)

				if m.scene.Dispersion {
					for h := math.Scalar(0); h < 360; h += 45 {
						rad := core.HSVToRGB(h, 100, 100).Multiply(m.scene.PhotonFactor).Divide(4)
						m.castRay(lightRay, 0, h/180-1, rad)
					}
				} else {
					rad := core.NewColor(1, 1, 1, 1).Multiply(m.scene.PhotonFactor)
					m.castRay(lightRay, 0, 0, rad)
				}
			}
		}
	}
}

func (m *photonMapper) castRay(ray math.Ray, depth int, wavelength math.Scalar, rad core.Color) {
	if depth > m.scene.Camera.MaxBounces() {
		return
	}

	maxDistance := math.Infinity
	var nearestObject *geometry.Object
	var nearestIntersection core.Intersection
	for _, object := range m.scene.Objects {
		if intersection, ok := object.Intersect(ray, maxDistance); ok {
			maxDistance = intersection.Distance
			nearestObject = object
			nearestIntersection = intersection
		}
	}
	if nearestObject == nil {
		return
	}

	if !nearestObject.Material.Refracts() {
		// the light ray ends on a diffuse surface, store it
		if depth > 0 {
			nearestObject.AddPhoton(m.scene.PhotonTextureSize, nearestIntersection.PhotonUV, rad)
			m.stats.Photons.Add(1)
		}
		return
	}

	material := nearestObject.Material
	point := nearestIntersection.Point
	normal := nearestIntersection.Normal
	cosRayNormal := math.Clamp(ray.Direction.Dot(normal), -1, 1)
	outside := cosRayNormal <= 0

	kr := calcFresnel(material, cosRayNormal, wavelength)

	if kr < 1 {
		cosTurned := cosRayNormal
		normalTurned := normal
		refractionIndex := real(material.Refraction) + wavelength*material.Dispersion
		if outside {
			cosTurned = -cosTurned
			refractionIndex = 1 / refractionIndex
		} else {
			normalTurned = normalTurned.Negate()
		}
		k := 1 - refractionIndex*refractionIndex*(1-cosTurned*cosTurned)
		if k >= 0 {
			refractionVector := ray.Direction.Multiply(refractionIndex).
				Add(normalTurned.Multiply(refractionIndex*cosTurned - math.Sqrt(k)))
			offset := math.Epsilon
			if outside {
				offset = -math.Epsilon
			}
			refractionRay := math.NewRay(point, refractionVector).AddOffset(normal.Multiply(offset))
			m.castRay(refractionRay, depth+1, wavelength, rad.Multiply(1-kr))
		}
	}

	reflectionVector := ray.Direction.Subtract(normal.Multiply(cosRayNormal * 2))
	offset := -math.Epsilon
	if outside {
		offset = math.Epsilon
	}
	mirrorRay := math.NewRay(point, reflectionVector).AddOffset(normal.Multiply(offset))
	m.castRay(mirrorRay, depth+1, wavelength, rad.Multiply(kr))
}
