package core

import (
	"shading-pipeline/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// Scale multiplies the RGB channels by s, leaving alpha untouched.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// LerpRGB blends the RGB channels toward other by t, leaving alpha untouched.
func (c Color) LerpRGB(other Color, t float32) Color {
	return Color{
		R: math.Lerp(c.R, other.R, t),
		G: math.Lerp(c.G, other.G, t),
		B: math.Lerp(c.B, other.B, t),
		A: c.A,
	}
}

// Vertex is the shared per-vertex layout for both the scene and overlay
// pipelines: position, normal, texcoord, bound to attribute slots 0, 1, 2
// in that order. The overlay pipeline ignores the normal values but its
// slot stays reserved so one layout serves both pipelines.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}
