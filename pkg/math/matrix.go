package math

// Matrix34 represents a 3x4 affine transform.
// The last row is implicitly (0, 0, 0, 1) and never stored.
type Matrix34 struct {
	M [3][4]Scalar
}

// Identity returns the identity transform
func Identity() Matrix34 {
	return Matrix34{M: [3][4]Scalar{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}}
}

// Translation returns a transform moving points by v
func Translation(v Vec3) Matrix34 {
	return Matrix34{M: [3][4]Scalar{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
	}}
}

// RotationX returns a rotation around the x axis by angle radians
func RotationX(angle Scalar) Matrix34 {
	sin, cos := Sin(angle), Cos(angle)
	return Matrix34{M: [3][4]Scalar{
		{1, 0, 0, 0},
		{0, cos, -sin, 0},
		{0, sin, cos, 0},
	}}
}

// RotationY returns a rotation around the y axis by angle radians
func RotationY(angle Scalar) Matrix34 {
	sin, cos := Sin(angle), Cos(angle)
	return Matrix34{M: [3][4]Scalar{
		{cos, 0, sin, 0},
		{0, 1, 0, 0},
		{-sin, 0, cos, 0},
	}}
}

// RotationZ returns a rotation around the z axis by angle radians
func RotationZ(angle Scalar) Matrix34 {
	sin, cos := Sin(angle), Cos(angle)
	return Matrix34{M: [3][4]Scalar{
		{cos, -sin, 0, 0},
		{sin, cos, 0, 0},
		{0, 0, 1, 0},
	}}
}

// Scale returns a transform scaling componentwise by v
func Scale(v Vec3) Matrix34 {
	return Matrix34{M: [3][4]Scalar{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
	}}
}

// LookAt returns the camera to world transform for a camera at eye
// looking at target with the given up direction
func LookAt(eye, target, up Vec3) Matrix34 {
	zAxis := eye.Subtract(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)
	return Matrix34{M: [3][4]Scalar{
		{xAxis.X, yAxis.X, zAxis.X, eye.X},
		{xAxis.Y, yAxis.Y, zAxis.Y, eye.Y},
		{xAxis.Z, yAxis.Z, zAxis.Z, eye.Z},
	}}
}

// Apply transforms a point, including the translation
func (m Matrix34) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z + m.M[0][3],
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z + m.M[1][3],
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z + m.M[2][3],
	}
}

// ApplyDirection transforms a direction, ignoring the translation
func (m Matrix34) ApplyDirection(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// Multiply composes two transforms, applying other first
func (m Matrix34) Multiply(other Matrix34) Matrix34 {
	var result Matrix34
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			sum := m.M[r][0]*other.M[0][c] + m.M[r][1]*other.M[1][c] + m.M[r][2]*other.M[2][c]
			if c == 3 {
				sum += m.M[r][3]
			}
			result.M[r][c] = sum
		}
	}
	return result
}
