package shading

import (
	"shading-pipeline/core"
	"shading-pipeline/math"
)

// Sampler is a bound, read-only 2D texture resource. Wrap and filter
// behavior belong to the implementation.
type Sampler interface {
	Sample(uv math.Vec2) core.Color
}

// Pipeline is one built scene pipeline: the capability flags are fixed at
// build time, while Light and Fog stay runtime-tunable between draw calls.
// A Pipeline is stateless across invocations and safe for concurrent use as
// long as Light and Fog are not mutated mid-draw.
type Pipeline struct {
	Config

	Light DirectionalLight
	Fog   FogParams
}

// NewPipeline builds a scene pipeline with the given capability flags and
// stock light/fog parameters.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Light:  DefaultLight(),
		Fog:    DefaultFog(),
	}
}

// ShadeFragment runs the fragment stage for one covered pixel. It returns
// the final color and true, or a zero color and false when the fragment is
// discarded. Discard is the only early exit: it means no color and no depth
// are written for this pixel, and it is a per-invocation decision with no
// other side effect.
//
// Stage order: texture sample + alpha cutout, then lighting, then fog.
func (p *Pipeline) ShadeFragment(in FragmentInput, tex Sampler) (core.Color, bool) {
	out := in.Color

	if p.Texturing && tex != nil {
		sampled := tex.Sample(in.TexCoord)
		if sampled.A < AlphaCutoff {
			return core.Color{}, false
		}
		out = sampled
	}

	if p.Lighting {
		// Interpolation does not preserve unit length, so renormalize here
		// rather than in the vertex stage.
		n := in.Normal.Normalize()
		diffuse := maxf(n.Dot(p.Light.Direction.Normalize().Negate()), 0)
		out = out.Scale(diffuse + p.Light.Ambient)
	}

	// p.Fog is the FogParams field; the capability flag lives on Config.
	if p.Config.Fog {
		out = out.LerpRGB(p.Fog.Color, FogFactor(in.Depth, p.Fog))
		// A fogged fragment has already passed the cutout test; it is
		// composited fully opaque.
		out.A = 1
	}

	return out, true
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
