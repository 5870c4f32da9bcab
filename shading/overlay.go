package shading

import (
	"shading-pipeline/core"
	"shading-pipeline/math"
)

// OverlayPipeline renders flat 2D GUI geometry on top of the scene. Overlay
// positions are already screen-relative, so they pass through a single
// screen matrix instead of the world/view/proj chain, and are never lit or
// fogged. Fragment shading is the same alpha-cutout texturing as the scene
// pipeline, realized by a texturing-only scene configuration instead of a
// second fragment implementation.
type OverlayPipeline struct {
	frag *Pipeline
}

func NewOverlayPipeline() *OverlayPipeline {
	return &OverlayPipeline{
		frag: NewPipeline(Config{Texturing: true}),
	}
}

// TransformVertex maps position.xy through the screen matrix at fixed depth
// zero. The input z and normal are ignored; their vertex streams stay bound
// so both pipelines share one vertex layout.
func (p *OverlayPipeline) TransformVertex(u OverlayUniforms, in VertexInput) Varyings {
	pos := math.NewVec4(in.Position.X, in.Position.Y, 0, 1).MulMat(u.Screen)
	pos.Z = 0

	return Varyings{
		ClipPos:  pos,
		Color:    core.ColorWhite,
		TexCoord: in.TexCoord,
	}
}

// ShadeFragment samples the bound texture with the scene pipeline's cutout
// rule: sampled alpha below the threshold discards the fragment.
func (p *OverlayPipeline) ShadeFragment(in FragmentInput, tex Sampler) (core.Color, bool) {
	return p.frag.ShadeFragment(in, tex)
}
