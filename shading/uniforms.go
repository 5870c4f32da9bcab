package shading

import (
	"shading-pipeline/core"
	"shading-pipeline/math"
)

// SceneUniforms is the per-draw-call uniform block for the scene pipeline.
// Field order matches the GPU block layout exactly (mat4 world, mat4 view,
// mat4 proj, vec4 color) and must not be reordered: the host writes this
// block byte-for-byte into the uniform buffer, and a mismatch silently
// corrupts every transform.
//
// All fields are supplied once per draw call and are read-only for its
// duration; swapping them while invocations are in flight is the caller's
// synchronization problem, not this package's.
type SceneUniforms struct {
	World math.Mat4
	View  math.Mat4
	Proj  math.Mat4
	Color core.Color
}

// Pack flattens the block into float32s in declared field order, ready for
// upload as a uniform buffer.
func (u SceneUniforms) Pack() []float32 {
	out := make([]float32, 0, 52)
	out = packMat4(out, u.World)
	out = packMat4(out, u.View)
	out = packMat4(out, u.Proj)
	return append(out, u.Color.R, u.Color.G, u.Color.B, u.Color.A)
}

// OverlayUniforms is the per-draw-call uniform block for the overlay
// pipeline: a single screen matrix mapping overlay-space positions directly
// to clip space.
type OverlayUniforms struct {
	Screen math.Mat4
}

// Pack flattens the block into float32s for upload.
func (u OverlayUniforms) Pack() []float32 {
	return packMat4(make([]float32, 0, 16), u.Screen)
}

func packMat4(dst []float32, m math.Mat4) []float32 {
	for i := 0; i < 4; i++ {
		dst = append(dst, m[i][0], m[i][1], m[i][2], m[i][3])
	}
	return dst
}
