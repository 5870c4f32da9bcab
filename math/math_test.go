package math

import (
	"math"
	"testing"
)

const tolerance = 1e-4

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func vec3ApproxEq(a, b Vec3) bool {
	return approxEq(a.X, b.X) && approxEq(a.Y, b.Y) && approxEq(a.Z, b.Z)
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got, want := v1.Add(v2), NewVec3(5, 7, 9); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), NewVec3(3, 3, 3); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got, want := v1.Mul(2), NewVec3(2, 4, 6); got != want {
		t.Errorf("Mul: expected %v, got %v", want, got)
	}
	if got, want := v1.Dot(v2), float32(32); got != want {
		t.Errorf("Dot: expected %v, got %v", want, got)
	}

	cross := NewVec3(1, 0, 0).Cross(Vec3Up)
	if cross != (Vec3{0, 0, 1}) {
		t.Errorf("Cross: expected (0,0,1), got %v", cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0).Normalize()
	if v != (Vec3{1, 0, 0}) {
		t.Errorf("Normalize: expected (1,0,0), got %v", v)
	}
	if length := NewVec3(1, 2, 2).Normalize().Length(); !approxEq(length, 1) {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
	// Zero vector must not produce NaNs
	if z := Vec3Zero.Normalize(); z != Vec3Zero {
		t.Errorf("Normalize: expected zero vector unchanged, got %v", z)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if m[i][j] != expected {
				t.Errorf("Identity: expected [%d][%d] = %v, got %v", i, j, expected, m[i][j])
			}
		}
	}
}

func TestMat4MulComposition(t *testing.T) {
	// Row-vector convention: a.Mul(b) applies a first.
	translate := Mat4Translation(NewVec3(1, 0, 0))
	scale := Mat4Scale(NewVec3(2, 2, 2))

	p := NewVec3(0, 0, 0)
	// Translate, then scale: (0,0,0) -> (1,0,0) -> (2,0,0)
	got := translate.Mul(scale).MulPoint(p)
	if !vec3ApproxEq(got, NewVec3(2, 0, 0)) {
		t.Errorf("Mul composition: expected (2,0,0), got %v", got)
	}
	// Scale, then translate: (0,0,0) -> (0,0,0) -> (1,0,0)
	got = scale.Mul(translate).MulPoint(p)
	if !vec3ApproxEq(got, NewVec3(1, 0, 0)) {
		t.Errorf("Mul composition: expected (1,0,0), got %v", got)
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	point := NewVec4(0, 0, 0, 1)
	result := point.MulMat(m)
	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}
}

func TestMat4MulDirIgnoresTranslation(t *testing.T) {
	m := Mat4Translation(NewVec3(10, 20, 30))
	dir := NewVec3(0, 1, 0)
	if got := m.MulDir(dir); got != dir {
		t.Errorf("MulDir: expected translation to be ignored, got %v", got)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4Translation(NewVec3(3, -1, 2)).Mul(Mat4RotationY(0.7)).Mul(Mat4Scale(NewVec3(2, 3, 4)))
	inv := m.Inverse()
	round := m.Mul(inv)

	identity := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !approxEq(round[i][j], identity[i][j]) {
				t.Errorf("Inverse: m*inv(m)[%d][%d] = %v, expected %v", i, j, round[i][j], identity[i][j])
			}
		}
	}
}

func TestMat4InverseSingular(t *testing.T) {
	m := Mat4Scale(NewVec3(1, 1, 0)) // rank-deficient
	if m.Determinant() != 0 {
		t.Fatalf("Determinant: expected 0 for singular matrix, got %v", m.Determinant())
	}
	if got := m.Inverse(); got != Mat4Identity() {
		t.Errorf("Inverse: expected identity fallback for singular matrix, got %v", got)
	}
}

func TestMat4InverseTransposeNonUniformScale(t *testing.T) {
	// A normal transformed through the inverse-transpose stays perpendicular
	// to the surface under non-uniform scale; through the plain matrix it
	// does not.
	world := Mat4Scale(NewVec3(1, 4, 1))
	// Surface tangent of a 45-degree slope in XY, with its normal.
	tangent := NewVec3(1, 1, 0).Normalize()
	normal := NewVec3(-1, 1, 0).Normalize()

	tWorld := world.MulDir(tangent)
	nWorld := world.InverseTranspose().MulDir(normal)
	if dot := tWorld.Dot(nWorld); !approxEq(dot, 0) {
		t.Errorf("InverseTranspose: expected transformed normal perpendicular to tangent, dot = %v", dot)
	}
}

func TestMat4ScreenSpace(t *testing.T) {
	m := Mat4ScreenSpace(800, 600)
	cases := []struct {
		in   Vec3
		want Vec3
	}{
		{NewVec3(0, 0, 0), NewVec3(-1, 1, 0)},
		{NewVec3(800, 600, 0), NewVec3(1, -1, 0)},
		{NewVec3(400, 300, 0), NewVec3(0, 0, 0)},
	}
	for _, c := range cases {
		if got := m.MulPoint(c.in); !vec3ApproxEq(got, c.want) {
			t.Errorf("ScreenSpace(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	result := m.MulVec(eye.ToVec4(1))
	if !vec3ApproxEq(result.ToVec3(), Vec3Zero) {
		t.Errorf("LookAt: expected eye to transform to origin, got %v", result.ToVec3())
	}
}

func TestLerpClamp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp: expected 5, got %v", got)
	}
	if got := Clamp01(-0.5); got != 0 {
		t.Errorf("Clamp01: expected 0, got %v", got)
	}
	if got := Clamp01(1.5); got != 1 {
		t.Errorf("Clamp01: expected 1, got %v", got)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationY(0.5)
	m2 := Mat4Translation(NewVec3(1, 2, 3))
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4InverseTranspose(b *testing.B) {
	m := Mat4RotationY(0.5).Mul(Mat4Scale(NewVec3(1, 2, 3)))
	for i := 0; i < b.N; i++ {
		_ = m.InverseTranspose()
	}
}
