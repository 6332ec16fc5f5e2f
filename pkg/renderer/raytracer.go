package renderer

import (
	"math/cmplx"
	"math/rand"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// tracer holds the per-render state shared by all workers. The picture
// is written without locking; the line counter hands each worker a
// disjoint scanline.
type tracer struct {
	scene           *scene.Scene
	picture         *core.Picture
	halfFov         math.Vec2
	pixelSize       math.Vec2
	cameraTransform math.Matrix34
	stats           *RenderStats

	nextLine atomic.Uint32
}

type worker struct {
	*tracer
	random *rand.Rand
}

// Raytrace renders the scene at its current instant into a new picture.
func Raytrace(s *scene.Scene, stats *RenderStats) *core.Picture {
	camera := s.Camera
	picSize := math.NewVec2(math.Scalar(camera.Width()), math.Scalar(camera.Height()))
	halfFov := math.NewVec2(-math.Tan(camera.Fov()), math.Tan(camera.Fov())*picSize.Aspect())
	t := &tracer{
		scene:           s,
		picture:         core.NewPicture(camera.Width(), camera.Height()),
		halfFov:         halfFov,
		pixelSize:       picSize.Reciprocal(-2).MultiplyVec(halfFov),
		cameraTransform: camera.Transform(),
		stats:           stats,
	}

	var group errgroup.Group
	for i := 0; i < s.Threads; i++ {
		w := &worker{tracer: t, random: rand.New(rand.NewSource(rand.Int63()))}
		group.Go(func() error {
			w.run()
			return nil
		})
	}
	_ = group.Wait()
	return t.picture
}

func (w *worker) run() {
	height := uint32(w.scene.Camera.Height())
	for {
		y := w.nextLine.Add(1) - 1
		if y >= height {
			return
		}
		w.renderLine(int(y))
	}
}

func (w *worker) renderLine(y int) {
	camera := w.scene.Camera
	rayY := w.halfFov.Y + math.Scalar(y)*w.pixelSize.Y + 0.5*w.pixelSize.Y
	rayCount := camera.SuperSampling()

	rayX := w.halfFov.X + 0.5*w.pixelSize.X
	for x := 0; x < camera.Width(); x++ {
		var radiance core.Color

		// one ray per subpixel, targets distributed over the pixel's
		// area on the image plane at z = -1
		for subY := 0; subY < rayCount; subY++ {
			for subX := 0; subX < rayCount; subX++ {
				subDisplacement := math.NewVec2(
					2*math.Scalar(subX+1)/math.Scalar(rayCount+1)-1,
					2*math.Scalar(subY+1)/math.Scalar(rayCount+1)-1,
				)
				targetDisplacement := subDisplacement.MultiplyVec(w.pixelSize)
				targetOnImagePlane := math.NewVec3(rayX, rayY, -1).AddVec2(targetDisplacement)

				// scaling the image plane target by the focus distance
				// moves it onto the focus plane along the ray
				targetOnFocusPlane := w.cameraTransform.Apply(targetOnImagePlane.Multiply(camera.FocusDistance()))

				// the ray origin is distributed over the lens area
				jitter := math.NewVec2(w.randomScalar(), w.randomScalar()).Multiply(1 / math.Scalar(rayCount))
				originDisplacement := subDisplacement.Add(jitter).Multiply(camera.LensSize())
				rayOrigin := w.cameraTransform.Apply(math.NewVec3(0, 0, 0)).AddVec2(originDisplacement)

				ray := math.NewRay(rayOrigin, targetOnFocusPlane.Subtract(rayOrigin))

				if w.scene.Dispersion {
					// 8 rays in 45 degree hue steps
					for h := math.Scalar(0); h < 360; h += 45 {
						tint := core.HSVToRGB(h, 100, 100).Divide(4)
						radiance = radiance.Add(w.castRay(ray, 0, h/180-1).MultiplyColor(tint))
					}
				} else {
					radiance = radiance.Add(w.castRay(ray, 0, 0))
				}
			}
		}

		previous := w.picture.Get(x, y)
		w.picture.Set(x, y, previous.Add(radiance.Multiply(1/math.Scalar(rayCount*rayCount))))
		rayX += w.pixelSize.X
	}
}

// castRay shades one ray. Every front-facing or transparent hit resets
// the accumulated radiance, so the object visited last in scene order
// wins among equally near surfaces.
func (w *worker) castRay(ray math.Ray, depth int, wavelength math.Scalar) core.Color {
	if depth > w.scene.Camera.MaxBounces() {
		return core.Color{}
	}
	w.stats.Rays.Add(1)

	rad := w.scene.Background
	maxDistance := math.Infinity

	for _, object := range w.scene.Objects {
		intersection, ok := object.Intersect(ray, maxDistance)
		if !ok {
			continue
		}
		material := object.Material
		cosRayNormal := math.Clamp(ray.Direction.Dot(intersection.Normal), -1, 1)

		if cosRayNormal >= 0 && (material.Transmittance == 0 || !material.Refracts()) {
			// back-faces of non transparent objects are not visible
			continue
		}

		rad = core.Color{}
		maxDistance = intersection.Distance

		if cosRayNormal < 0 {
			rad = rad.Add(w.calcPhong(ray, intersection, material))
			rad = rad.Add(object.Photon(intersection.PhotonUV))
		}

		// transmittance and reflectance enable refraction and reflection
		if (material.Transmittance != 0 || material.Reflectance != 0) && material.Refracts() {
			kr := calcFresnel(material, cosRayNormal, wavelength)
			if material.Transmittance != 0 && kr < 1 {
				rad = rad.Add(w.calcRefraction(ray, intersection, material, cosRayNormal, depth, wavelength).Multiply(1 - kr))
			}
			if material.Reflectance != 0 && kr > 0 {
				rad = rad.Add(w.calcReflection(ray, intersection, cosRayNormal, depth, wavelength).Multiply(kr))
			}
		}
		rad = rad.WithoutAlpha()
	}
	return rad
}

func (w *worker) calcPhong(ray math.Ray, intersection core.Intersection, material core.Material) core.Color {
	point := intersection.Point
	normal := intersection.Normal
	var rad core.Color

	materialColor := material.Color
	if !material.Texture.Empty() {
		materialColor = textureColor(material.Texture, intersection.TextureUV)
	}

	rad = rad.Add(w.scene.Ambient.MultiplyColor(materialColor).Multiply(material.Ka))
	for _, light := range w.scene.Lights {
		var lightRay math.Ray
		lightDistance := math.Infinity
		if light.Parallel {
			lightRay = math.NewRay(point, light.Position.Negate())
		} else {
			lightRay = math.NewRay(point, light.Position.Subtract(point))
		}
		lightRay = lightRay.AddOffset(normal.Multiply(math.Epsilon)) // remove shadow acne
		if !light.Parallel {
			lightDistance = light.Position.Subtract(lightRay.Origin).Length()
		}

		if !w.lightBlocked(lightRay, lightDistance) {
			lightPower := light.Power
			diffuse := lightPower.MultiplyColor(materialColor).
				Multiply(maxScalar(lightRay.Direction.Dot(normal), 0) * material.Kd)
			lightReflection := normal.Multiply(lightRay.Direction.Dot(normal) * 2).
				Subtract(lightRay.Direction).Normalize()
			specular := lightPower.
				Multiply(math.Pow(maxScalar(lightReflection.Dot(ray.Direction.Negate()), 0), material.Exponent) * material.Ks)
			rad = rad.Add(diffuse).Add(specular)
		}
	}
	return rad
}

// lightBlocked reports whether any front face lies between the surface
// and the light
func (w *worker) lightBlocked(lightRay math.Ray, lightDistance math.Scalar) bool {
	for _, object := range w.scene.Objects {
		if intersection, ok := object.Intersect(lightRay, lightDistance); ok {
			if lightRay.Direction.Dot(intersection.Normal) < 0 {
				return true
			}
		}
	}
	return false
}

// textureColor samples the texture in repeat mode with bilinear filtering
func textureColor(texture *core.Picture, uv math.Vec2) core.Color {
	width := texture.Width()
	height := texture.Height()
	px := frac(uv.X) * math.Scalar(width-1)
	py := frac(uv.Y) * math.Scalar(height-1)
	fx := frac(px)
	fy := frac(py)

	x0 := clampIndex(int(px), width-1)
	y0 := clampIndex(int(py), height-1)
	x1 := clampIndex(int(math.Ceil(px)), width-1)
	y1 := clampIndex(int(math.Ceil(py)), height-1)

	return texture.Get(x0, y0).Multiply((1 - fx) * (1 - fy)).
		Add(texture.Get(x1, y0).Multiply(fx * (1 - fy))).
		Add(texture.Get(x0, y1).Multiply((1 - fx) * fy)).
		Add(texture.Get(x1, y1).Multiply(fx * fy))
}

// calcFresnel returns the reflection coefficient for a possibly complex
// refraction index shifted by the ray's wavelength and the material's
// dispersion
func calcFresnel(material core.Material, cosRayNormal, wavelength math.Scalar) math.Scalar {
	etai := complex64(complex(1, 0))
	etat := material.Refraction + complex(wavelength*material.Dispersion, 0)
	if cosRayNormal > 0 {
		// inside
		etai, etat = etat, etai
	}
	sint := etai / etat * complex(math.Sqrt(maxScalar(0, 1-cosRayNormal*cosRayNormal)), 0)
	if norm(sint) < 1 {
		cost := complexSqrt(1 - sint*sint)
		cosAbs := complex(math.Abs(cosRayNormal), 0)
		rs := (etat*cosAbs - etai*cost) / (etat*cosAbs + etai*cost)
		rp := (etai*cosAbs - etat*cost) / (etai*cosAbs + etat*cost)
		return (norm(rs) + norm(rp)) / 2
	}
	return 1 // total internal reflection
}

func (w *worker) calcRefraction(ray math.Ray, intersection core.Intersection, material core.Material, cosRayNormal math.Scalar, depth int, wavelength math.Scalar) core.Color {
	point := intersection.Point
	normal := intersection.Normal
	cosTurned := cosRayNormal
	normalTurned := normal
	refractionIndex := real(material.Refraction) + wavelength*material.Dispersion
	outside := false
	if cosRayNormal <= 0 {
		outside = true
		cosTurned = -cosTurned
		refractionIndex = 1 / refractionIndex
	} else {
		normalTurned = normalTurned.Negate()
	}
	k := 1 - refractionIndex*refractionIndex*(1-cosTurned*cosTurned)
	if k < 0 {
		return core.Color{}
	}
	refractionVector := ray.Direction.Multiply(refractionIndex).
		Add(normalTurned.Multiply(refractionIndex*cosTurned - math.Sqrt(k)))
	offset := math.Epsilon
	if outside {
		offset = -math.Epsilon
	}
	refractionRay := math.NewRay(point, refractionVector).AddOffset(normal.Multiply(offset))
	return w.castRay(refractionRay, depth+1, wavelength)
}

func (w *worker) calcReflection(ray math.Ray, intersection core.Intersection, cosRayNormal math.Scalar, depth int, wavelength math.Scalar) core.Color {
	point := intersection.Point
	normal := intersection.Normal
	offset := -math.Epsilon
	if cosRayNormal <= 0 {
		offset = math.Epsilon
	}

	reflectionVector := ray.Direction.Subtract(normal.Multiply(cosRayNormal * 2))
	mirrorRay := math.NewRay(point, reflectionVector).AddOffset(normal.Multiply(offset))
	return w.castRay(mirrorRay, depth+1, wavelength)
}

func (w *worker) randomScalar() math.Scalar {
	return math.Scalar(w.random.Float32()*2 - 1)
}

// norm is the squared magnitude of a complex number
func norm(z complex64) math.Scalar {
	return real(z)*real(z) + imag(z)*imag(z)
}

func complexSqrt(z complex64) complex64 {
	return complex64(cmplx.Sqrt(complex128(z)))
}

func maxScalar(a, b math.Scalar) math.Scalar {
	if a > b {
		return a
	}
	return b
}

// frac returns the fractional part of s, keeping its sign
func frac(s math.Scalar) math.Scalar {
	return s - math.Scalar(int64(s))
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
