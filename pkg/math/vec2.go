package math

// Vec2 represents a 2D vector, also used for points and dimensions
type Vec2 struct {
	X, Y Scalar
}

// NewVec2 creates a new Vec2
func NewVec2(x, y Scalar) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// MultiplyVec returns the componentwise product of two vectors
func (v Vec2) MultiplyVec(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Multiply returns the vector scaled by a scalar
func (v Vec2) Multiply(scalar Scalar) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Reciprocal returns the componentwise quotient scalar/v
func (v Vec2) Reciprocal(scalar Scalar) Vec2 {
	return Vec2{scalar / v.X, scalar / v.Y}
}

// Aspect returns the height to width ratio y/x
func (v Vec2) Aspect() Scalar {
	return v.Y / v.X
}
