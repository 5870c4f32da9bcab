package shading

import (
	"testing"

	"shading-pipeline/core"
	gmath "shading-pipeline/math"
)

func TestTransformVertexClipPosition(t *testing.T) {
	p := NewPipeline(Config{})
	u := SceneUniforms{
		World: gmath.Mat4Translation(gmath.NewVec3(1, 0, 0)),
		View:  gmath.Mat4Identity(),
		Proj:  gmath.Mat4Identity(),
		Color: core.ColorWhite,
	}

	v := p.TransformVertex(u, VertexInput{Position: gmath.NewVec3(0, 2, 0)})
	want := gmath.NewVec4(1, 2, 0, 1)
	if v.ClipPos != want {
		t.Errorf("expected clip position %v, got %v", want, v.ClipPos)
	}
}

func TestTransformVertexPropagatesColorUnlit(t *testing.T) {
	// The vertex stage copies the material color as-is; no per-vertex
	// lighting even when the pipeline lights fragments.
	p := NewPipeline(Config{Lighting: true})
	u := SceneUniforms{
		World: gmath.Mat4Identity(),
		View:  gmath.Mat4Identity(),
		Proj:  gmath.Mat4Identity(),
		Color: core.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4},
	}

	v := p.TransformVertex(u, VertexInput{Normal: gmath.NewVec3(0, 1, 0)})
	if v.Color != u.Color {
		t.Errorf("expected propagated color %v, got %v", u.Color, v.Color)
	}
}

func TestTransformVertexNormalNotRenormalized(t *testing.T) {
	// Renormalization is the fragment stage's job; the vertex stage output
	// keeps whatever length the inverse-transpose produces.
	p := NewPipeline(Config{})
	u := SceneUniforms{
		World: gmath.Mat4Scale(gmath.NewVec3(2, 2, 2)),
		View:  gmath.Mat4Identity(),
		Proj:  gmath.Mat4Identity(),
	}

	v := p.TransformVertex(u, VertexInput{Normal: gmath.NewVec3(0, 1, 0)})
	// Inverse-transpose of a uniform scale by 2 scales normals by 1/2.
	if !approxEq(v.Normal.Length(), 0.5) {
		t.Errorf("expected normal length 0.5, got %v", v.Normal.Length())
	}
}

func TestTransformVertexNormalNonUniformScale(t *testing.T) {
	// Under non-uniform scale the normal must use the inverse-transpose,
	// not the world matrix itself.
	p := NewPipeline(Config{})
	u := SceneUniforms{
		World: gmath.Mat4Scale(gmath.NewVec3(1, 4, 1)),
		View:  gmath.Mat4Identity(),
		Proj:  gmath.Mat4Identity(),
	}

	// 45-degree slope: tangent (1,1,0), normal (-1,1,0).
	tangent := u.World.MulDir(gmath.NewVec3(1, 1, 0))
	v := p.TransformVertex(u, VertexInput{Normal: gmath.NewVec3(-1, 1, 0)})

	if dot := tangent.Dot(v.Normal); !approxEq(dot, 0) {
		t.Errorf("transformed normal not perpendicular to surface: dot = %v", dot)
	}
}

func TestTransformVertexDepthIsViewDistance(t *testing.T) {
	p := NewPipeline(Config{})
	u := SceneUniforms{
		World: gmath.Mat4Identity(),
		View:  gmath.Mat4LookAt(gmath.NewVec3(0, 0, 10), gmath.Vec3Zero, gmath.Vec3Up),
		Proj:  gmath.Mat4Perspective(1.0, 1.0, 0.1, 200),
	}

	v := p.TransformVertex(u, VertexInput{Position: gmath.Vec3Zero})
	if !approxEq(v.Depth, 10) {
		t.Errorf("expected view-space distance 10, got %v", v.Depth)
	}
}

func TestTransformVertexTexCoordPassThrough(t *testing.T) {
	p := NewPipeline(Config{})
	u := SceneUniforms{World: gmath.Mat4Identity(), View: gmath.Mat4Identity(), Proj: gmath.Mat4Identity()}

	uv := gmath.NewVec2(0.25, 0.75)
	v := p.TransformVertex(u, VertexInput{TexCoord: uv})
	if v.TexCoord != uv {
		t.Errorf("expected texcoord %v unchanged, got %v", uv, v.TexCoord)
	}
}

func TestSceneUniformsPackOrder(t *testing.T) {
	u := SceneUniforms{
		World: gmath.Mat4Translation(gmath.NewVec3(7, 8, 9)),
		View:  gmath.Mat4Identity(),
		Proj:  gmath.Mat4Identity(),
		Color: core.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4},
	}

	packed := u.Pack()
	if len(packed) != 52 {
		t.Fatalf("expected 52 floats (3 mat4 + vec4), got %d", len(packed))
	}
	// World occupies the first 16 floats, row-major.
	if packed[12] != 7 || packed[13] != 8 || packed[14] != 9 {
		t.Errorf("world translation row misplaced: %v", packed[12:15])
	}
	// Color is the trailing vec4.
	if got := packed[48:]; got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.3 || got[3] != 0.4 {
		t.Errorf("color misplaced: %v", got)
	}
}

func BenchmarkTransformVertex(b *testing.B) {
	p := NewPipeline(Config{Lighting: true, Fog: true, Texturing: true})
	u := SceneUniforms{
		World: gmath.Mat4RotationY(0.5),
		View:  gmath.Mat4LookAt(gmath.NewVec3(0, 2, 5), gmath.Vec3Zero, gmath.Vec3Up),
		Proj:  gmath.Mat4Perspective(1.0, 1.6, 0.1, 200),
		Color: core.ColorWhite,
	}
	in := VertexInput{
		Position: gmath.NewVec3(1, 2, 3),
		Normal:   gmath.NewVec3(0, 1, 0),
		TexCoord: gmath.NewVec2(0.5, 0.5),
	}
	for i := 0; i < b.N; i++ {
		_ = p.TransformVertex(u, in)
	}
}
