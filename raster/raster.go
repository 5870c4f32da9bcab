// Package raster is a software reference implementation of the external
// rasterizer the shading stages plug into: it interpolates varyings across
// covered pixels, runs one fragment invocation per pixel, and owns the
// depth test that serializes fragments from different draw calls.
//
// Fragment invocations are data-parallel: rows are fanned out to worker
// goroutines that share no mutable state and only read the bound uniforms
// and texture. Interpolation is screen-space linear (no perspective
// correction), which is exact for the flat color interpolant and adequate
// as a reference for the rest.
package raster

import (
	"runtime"
	"sync"

	"shading-pipeline/core"
	"shading-pipeline/math"
	"shading-pipeline/scene"
	"shading-pipeline/shading"
)

// triangle is one screen-mapped primitive ready for coverage testing.
type triangle struct {
	v          [3]shading.Varyings
	sx, sy, sz [3]float32
	minY, maxY int
}

// DrawMesh rasterizes mesh through the scene pipeline into fb. tex may be
// nil for untextured draws. Uniforms and texture are read-only for the
// whole call.
func DrawMesh(fb *Framebuffer, p *shading.Pipeline, u shading.SceneUniforms, mesh *scene.Mesh, tex shading.Sampler) {
	tris := setup(fb, mesh, func(in shading.VertexInput) shading.Varyings {
		return p.TransformVertex(u, in)
	})
	shadeRows(fb, tris, true, func(in shading.FragmentInput) (core.Color, bool) {
		return p.ShadeFragment(in, tex)
	})
}

// DrawOverlay rasterizes mesh through the overlay pipeline. Overlay
// fragments skip the depth test entirely: the overlay sits on top of the
// scene unconditionally.
func DrawOverlay(fb *Framebuffer, p *shading.OverlayPipeline, u shading.OverlayUniforms, mesh *scene.Mesh, tex shading.Sampler) {
	tris := setup(fb, mesh, func(in shading.VertexInput) shading.Varyings {
		return p.TransformVertex(u, in)
	})
	shadeRows(fb, tris, false, func(in shading.FragmentInput) (core.Color, bool) {
		return p.ShadeFragment(in, tex)
	})
}

// setup runs the vertex stage once per vertex and maps surviving triangles
// to screen space.
func setup(fb *Framebuffer, mesh *scene.Mesh, vertexStage func(shading.VertexInput) shading.Varyings) []triangle {
	varyings := make([]shading.Varyings, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		varyings[i] = vertexStage(shading.VertexInput{
			Position: v.Position,
			Normal:   v.Normal,
			TexCoord: v.UV,
		})
	}

	indices := mesh.Indices
	tris := make([]triangle, 0, len(indices)/3)

	for i := 0; i+2 < len(indices); i += 3 {
		var t triangle
		reject := false
		for k := 0; k < 3; k++ {
			t.v[k] = varyings[indices[i+k]]
			clip := t.v[k].ClipPos
			// Trivial near-plane policy: drop the whole triangle instead
			// of clipping it.
			if clip.W <= 0 {
				reject = true
				break
			}
			ndc := clip.ToVec3DivW()
			t.sx[k] = (ndc.X + 1) * 0.5 * float32(fb.Width)
			t.sy[k] = (1 - ndc.Y) * 0.5 * float32(fb.Height)
			t.sz[k] = ndc.Z
		}
		if reject {
			continue
		}

		minY := int(minf(t.sy[0], minf(t.sy[1], t.sy[2])))
		maxY := int(maxf(t.sy[0], maxf(t.sy[1], t.sy[2]))) + 1
		if minY < 0 {
			minY = 0
		}
		if maxY > fb.Height {
			maxY = fb.Height
		}
		if minY >= maxY {
			continue
		}
		t.minY, t.maxY = minY, maxY
		tris = append(tris, t)
	}
	return tris
}

// shadeRows fans framebuffer rows out to workers. Every worker owns a
// disjoint band of rows, so no two invocations ever touch the same pixel
// within one draw call; ordering between them is unspecified.
func shadeRows(fb *Framebuffer, tris []triangle, depthTest bool, fragmentStage func(shading.FragmentInput) (core.Color, bool)) {
	if len(tris) == 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > fb.Height {
		workers = fb.Height
	}
	band := (fb.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * band
		y1 := y0 + band
		if y1 > fb.Height {
			y1 = fb.Height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for i := range tris {
				shadeBand(fb, &tris[i], y0, y1, depthTest, fragmentStage)
			}
		}(y0, y1)
	}
	wg.Wait()
}

func shadeBand(fb *Framebuffer, t *triangle, y0, y1 int, depthTest bool, fragmentStage func(shading.FragmentInput) (core.Color, bool)) {
	if t.maxY <= y0 || t.minY >= y1 {
		return
	}
	if t.minY > y0 {
		y0 = t.minY
	}
	if t.maxY < y1 {
		y1 = t.maxY
	}

	area := edge(t.sx[0], t.sy[0], t.sx[1], t.sy[1], t.sx[2], t.sy[2])
	if area == 0 {
		return
	}

	minX := int(minf(t.sx[0], minf(t.sx[1], t.sx[2])))
	maxX := int(maxf(t.sx[0], maxf(t.sx[1], t.sx[2]))) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX > fb.Width {
		maxX = fb.Width
	}

	invArea := 1 / area
	for y := y0; y < y1; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5

			// Barycentric weights; sign-matched against the full area so
			// both windings rasterize.
			w0 := edge(t.sx[1], t.sy[1], t.sx[2], t.sy[2], px, py) * invArea
			w1 := edge(t.sx[2], t.sy[2], t.sx[0], t.sy[0], px, py) * invArea
			w2 := edge(t.sx[0], t.sy[0], t.sx[1], t.sy[1], px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			idx := y*fb.Width + x
			z := w0*t.sz[0] + w1*t.sz[1] + w2*t.sz[2]
			if depthTest && z >= fb.Depth[idx] {
				continue
			}

			color, kept := fragmentStage(interpolate(t, w0, w1, w2))
			if !kept {
				// Discard: neither color nor depth is written.
				continue
			}

			fb.setPixel(x, y, color)
			if depthTest {
				fb.Depth[idx] = z
			}
		}
	}
}

// interpolate blends the three vertices' varyings with barycentric weights.
func interpolate(t *triangle, w0, w1, w2 float32) shading.FragmentInput {
	lerp3 := func(a, b, c float32) float32 { return a*w0 + b*w1 + c*w2 }
	return shading.FragmentInput{
		Color: core.Color{
			R: lerp3(t.v[0].Color.R, t.v[1].Color.R, t.v[2].Color.R),
			G: lerp3(t.v[0].Color.G, t.v[1].Color.G, t.v[2].Color.G),
			B: lerp3(t.v[0].Color.B, t.v[1].Color.B, t.v[2].Color.B),
			A: lerp3(t.v[0].Color.A, t.v[1].Color.A, t.v[2].Color.A),
		},
		Normal: math.Vec3{
			X: lerp3(t.v[0].Normal.X, t.v[1].Normal.X, t.v[2].Normal.X),
			Y: lerp3(t.v[0].Normal.Y, t.v[1].Normal.Y, t.v[2].Normal.Y),
			Z: lerp3(t.v[0].Normal.Z, t.v[1].Normal.Z, t.v[2].Normal.Z),
		},
		TexCoord: math.Vec2{
			X: lerp3(t.v[0].TexCoord.X, t.v[1].TexCoord.X, t.v[2].TexCoord.X),
			Y: lerp3(t.v[0].TexCoord.Y, t.v[1].TexCoord.Y, t.v[2].TexCoord.Y),
		},
		Depth: lerp3(t.v[0].Depth, t.v[1].Depth, t.v[2].Depth),
	}
}

// edge is the signed parallelogram area of (a, b, p): positive when p lies
// to the left of a->b.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
