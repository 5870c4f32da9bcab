package shading

import (
	"shading-pipeline/core"
	"shading-pipeline/math"
)

// AlphaCutoff is the cutout threshold: fragments whose sampled alpha is
// below this value are discarded. A sampled alpha exactly equal to the
// threshold is kept.
const AlphaCutoff = 0.01

// Config selects which optional fragment stages a pipeline runs. The flags
// are fixed when the pipeline is built; per-draw-call data (transforms,
// material color, texture) varies afterwards without rebuilding.
type Config struct {
	Lighting  bool
	Fog       bool
	Texturing bool
}

// DirectionalLight is a single directional light shared by every fragment
// of a draw call. Direction points from the light toward the scene, in the
// same space as the interpolated normals.
type DirectionalLight struct {
	Direction math.Vec3
	Ambient   float32
}

// DefaultLight returns the stock scene light.
func DefaultLight() DirectionalLight {
	return DirectionalLight{
		Direction: math.NewVec3(-0.25, -0.5, -1.0).Normalize(),
		Ambient:   0.2,
	}
}

// FogParams describes linear distance fog. Fragments closer than Start are
// unfogged, fragments beyond End take Color entirely, and the blend ramps
// linearly in between.
type FogParams struct {
	Start float32
	End   float32
	Color core.Color
}

// DefaultFog returns the stock black distance fog.
func DefaultFog() FogParams {
	return FogParams{Start: 50, End: 120, Color: core.ColorBlack}
}

// FogFactor returns the fog blend amount for a view-space distance:
// a piecewise-linear, non-decreasing ramp from 0 at fog.Start to 1 at
// fog.End.
func FogFactor(depth float32, fog FogParams) float32 {
	if fog.End <= fog.Start {
		// Degenerate range: treat as a hard cut at Start.
		if depth < fog.Start {
			return 0
		}
		return 1
	}
	return math.Clamp01((depth - fog.Start) / (fog.End - fog.Start))
}
