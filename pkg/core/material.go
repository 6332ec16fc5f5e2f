package core

import (
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Material describes the surface response of an object
type Material struct {
	Color   Color
	Texture *Picture // nil for solid materials

	// Phong parameters
	Ka       math.Scalar
	Kd       math.Scalar
	Ks       math.Scalar
	Exponent math.Scalar

	Reflectance   math.Scalar
	Transmittance math.Scalar

	// Refraction index. The real part is the IOR, the imaginary part the
	// extinction coefficient; only the Fresnel terms use the full value.
	Refraction complex64

	// Dispersion is added to the IOR proportionally to the ray wavelength
	Dispersion math.Scalar
}

// Refracts reports whether the material has a usable refraction index
func (m *Material) Refracts() bool {
	re := real(m.Refraction)
	im := imag(m.Refraction)
	return re*re+im*im > 0
}
