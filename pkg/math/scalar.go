package math

import "math"

// Scalar is the floating point type used throughout the renderer.
// Single precision keeps pictures, photon textures and mesh data compact.
type Scalar = float32

const (
	// Pi is the circle constant at Scalar precision.
	Pi = Scalar(math.Pi)
	// Epsilon is the bias applied to secondary rays and intersection limits.
	Epsilon = Scalar(1e-4)
	// Infinity is the largest finite Scalar, used as "no distance limit".
	Infinity = Scalar(math.MaxFloat32)
)

// Sqrt returns the square root of s.
func Sqrt(s Scalar) Scalar { return Scalar(math.Sqrt(float64(s))) }

// Abs returns the absolute value of s.
func Abs(s Scalar) Scalar { return Scalar(math.Abs(float64(s))) }

// Sin returns the sine of s (radians).
func Sin(s Scalar) Scalar { return Scalar(math.Sin(float64(s))) }

// Cos returns the cosine of s (radians).
func Cos(s Scalar) Scalar { return Scalar(math.Cos(float64(s))) }

// Tan returns the tangent of s (radians).
func Tan(s Scalar) Scalar { return Scalar(math.Tan(float64(s))) }

// Asin returns the arcsine of s.
func Asin(s Scalar) Scalar { return Scalar(math.Asin(float64(s))) }

// Atan2 returns the arc tangent of y/x using the signs to pick the quadrant.
func Atan2(y, x Scalar) Scalar { return Scalar(math.Atan2(float64(y), float64(x))) }

// Log returns the natural logarithm of s.
func Log(s Scalar) Scalar { return Scalar(math.Log(float64(s))) }

// Pow returns base raised to exp.
func Pow(base, exp Scalar) Scalar { return Scalar(math.Pow(float64(base), float64(exp))) }

// Floor returns the greatest integer value less than or equal to s.
func Floor(s Scalar) Scalar { return Scalar(math.Floor(float64(s))) }

// Ceil returns the least integer value greater than or equal to s.
func Ceil(s Scalar) Scalar { return Scalar(math.Ceil(float64(s))) }

// Hypot returns sqrt(x*x + y*y + z*z) without intermediate overflow.
func Hypot(x, y, z Scalar) Scalar {
	return Scalar(math.Sqrt(float64(x)*float64(x) + float64(y)*float64(y) + float64(z)*float64(z)))
}

// Clamp limits s to the range [lo, hi].
func Clamp(s, lo, hi Scalar) Scalar {
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}

// Radians converts an angle in degrees to radians.
func Radians(degrees Scalar) Scalar {
	return degrees * 2 * Pi / 360
}
