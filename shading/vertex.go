package shading

import (
	"shading-pipeline/core"
	"shading-pipeline/math"
)

// VertexInput is one vertex in object space. Unit-length normals are not
// required; the fragment stage renormalizes after interpolation anyway.
type VertexInput struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Varyings are the per-vertex stage outputs. Everything except ClipPos is
// linearly interpolated by the rasterizer across the primitive and arrives
// at the fragment stage as a FragmentInput.
type Varyings struct {
	ClipPos  math.Vec4
	Color    core.Color
	Normal   math.Vec3
	TexCoord math.Vec2
	Depth    float32
}

// FragmentInput is the interpolated input of one fragment invocation.
type FragmentInput struct {
	Color    core.Color
	Normal   math.Vec3
	TexCoord math.Vec2
	Depth    float32
}

// Fragment converts interpolated varyings to a fragment input.
func (v Varyings) Fragment() FragmentInput {
	return FragmentInput{Color: v.Color, Normal: v.Normal, TexCoord: v.TexCoord, Depth: v.Depth}
}

// TransformVertex runs the scene vertex stage for one vertex.
//
// The clip position is proj · view · world applied to the homogeneous
// position. The material color is propagated unchanged; lighting is
// deferred to the fragment stage, never computed per vertex. The normal
// goes through the inverse-transpose of world (3x3 part only) so
// non-uniform scale keeps it perpendicular to the surface; it is NOT
// renormalized here, because interpolation across the triangle would break
// unit length again anyway. Depth is the view-space distance of the vertex,
// consumed by the fog stage.
//
// Precondition: world is invertible. A singular world leaves the normal
// transform undefined; this is not checked at runtime.
func (p *Pipeline) TransformVertex(u SceneUniforms, in VertexInput) Varyings {
	worldView := u.World.Mul(u.View)
	viewPos := in.Position.ToVec4(1).MulMat(worldView)

	return Varyings{
		ClipPos:  viewPos.MulMat(u.Proj),
		Color:    u.Color,
		Normal:   u.World.InverseTranspose().MulDir(in.Normal),
		TexCoord: in.TexCoord,
		Depth:    viewPos.ToVec3().Length(),
	}
}
