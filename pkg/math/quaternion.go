package math

// Quaternion represents a quaternion r + a*i + b*j + c*k
type Quaternion struct {
	R, A, B, C Scalar
}

// NewQuaternion creates a new Quaternion
func NewQuaternion(r, a, b, c Scalar) Quaternion {
	return Quaternion{R: r, A: a, B: b, C: c}
}

// Add returns the sum of two quaternions
func (q Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion{q.R + other.R, q.A + other.A, q.B + other.B, q.C + other.C}
}

// Multiply returns the quaternion scaled by a scalar
func (q Quaternion) Multiply(scalar Scalar) Quaternion {
	return Quaternion{q.R * scalar, q.A * scalar, q.B * scalar, q.C * scalar}
}

// MultiplyQ returns the Hamilton product of two quaternions
func (q Quaternion) MultiplyQ(other Quaternion) Quaternion {
	return Quaternion{
		R: q.R*other.R - q.A*other.A - q.B*other.B - q.C*other.C,
		A: q.R*other.A + q.A*other.R + q.B*other.C - q.C*other.B,
		B: q.R*other.B - q.A*other.C + q.B*other.R + q.C*other.A,
		C: q.R*other.C + q.A*other.B - q.B*other.A + q.C*other.R,
	}
}

// SquaredLength returns the squared magnitude of the quaternion
func (q Quaternion) SquaredLength() Scalar {
	return q.R*q.R + q.A*q.A + q.B*q.B + q.C*q.C
}
