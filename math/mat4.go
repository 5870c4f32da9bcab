package math

import "math"

// Mat4 is a 4x4 matrix stored as [row][col]. Vectors are treated as row
// vectors, so a.Mul(b) applies a first, then b: v.MulMat(a.Mul(b)) ==
// v.MulMat(a).MulMat(b).
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

// MulPoint transforms a 3D point (w=1) and performs the perspective divide.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return v.ToVec4(1).MulMat(m).ToVec3DivW()
}

// MulDir transforms a direction through the upper 3x3 part only.
// Translation is not a linear operation on direction vectors.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalfFovy := float32(math.Tan(float64(fovY) / 2))

	m := Mat4Zero()
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

func Mat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	m := Mat4Identity()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[3][0] = -(right + left) / (right - left)
	m[3][1] = -(top + bottom) / (top - bottom)
	m[3][2] = -(far + near) / (far - near)
	return m
}

// Mat4ScreenSpace maps overlay coordinates in [0,w]x[0,h] (origin top-left,
// y down) to clip space. Used as the overlay pipeline's screen matrix.
func Mat4ScreenSpace(width, height float32) Mat4 {
	m := Mat4Identity()
	m[0][0] = 2 / width
	m[1][1] = -2 / height
	m[3][0] = -1
	m[3][1] = 1
	return m
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// Determinant returns the full 4x4 determinant.
func (m Mat4) Determinant() float32 {
	return m[0][0]*cofactor(m, 0, 0) - m[0][1]*cofactor(m, 0, 1) +
		m[0][2]*cofactor(m, 0, 2) - m[0][3]*cofactor(m, 0, 3)
}

// Inverse returns the matrix inverse. A singular matrix returns identity;
// callers that feed singular transforms get undefined shading results, which
// is a documented precondition rather than an error path.
func (m Mat4) Inverse() Mat4 {
	det := m.Determinant()
	if det == 0 {
		return Mat4Identity()
	}
	invDet := 1 / det

	var inv Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sign := float32(1)
			if (i+j)%2 == 1 {
				sign = -1
			}
			// Adjugate: transposed cofactor matrix.
			inv[j][i] = sign * cofactor(m, i, j) * invDet
		}
	}
	return inv
}

// InverseTranspose returns the normal matrix for m: transforming normals
// through it keeps them perpendicular to surfaces under non-uniform scale.
func (m Mat4) InverseTranspose() Mat4 {
	return m.Inverse().Transpose()
}

// cofactor returns the 3x3 minor determinant of m with row i and column j
// removed.
func cofactor(m Mat4, i, j int) float32 {
	var sub [3][3]float32
	for r, sr := 0, 0; r < 4; r++ {
		if r == i {
			continue
		}
		for c, sc := 0, 0; c < 4; c++ {
			if c == j {
				continue
			}
			sub[sr][sc] = m[r][c]
			sc++
		}
		sr++
	}
	return sub[0][0]*(sub[1][1]*sub[2][2]-sub[1][2]*sub[2][1]) -
		sub[0][1]*(sub[1][0]*sub[2][2]-sub[1][2]*sub[2][0]) +
		sub[0][2]*(sub[1][0]*sub[2][1]-sub[1][1]*sub[2][0])
}

// Lerp returns a + (b-a)*t for scalars, clamping nothing.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp01 clamps x to [0, 1].
func Clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
