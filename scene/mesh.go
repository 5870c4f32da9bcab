package scene

import (
	"shading-pipeline/core"
	"shading-pipeline/math"
)

// Mesh holds CPU-side vertex/index data in the shared three-stream layout.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	// Do not access directly; use the renderer's API.
	GPUData interface{}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{Name: name, Vertices: vertices, Indices: indices}
}

// CreateQuad builds a unit quad in the XY plane, centered on the origin,
// facing +Z, with uv (0,0) at the top-left.
func CreateQuad() *Mesh {
	normal := math.NewVec3(0, 0, 1)
	vertices := []core.Vertex{
		{Position: math.NewVec3(-0.5, 0.5, 0), Normal: normal, UV: math.NewVec2(0, 0)},
		{Position: math.NewVec3(0.5, 0.5, 0), Normal: normal, UV: math.NewVec2(1, 0)},
		{Position: math.NewVec3(0.5, -0.5, 0), Normal: normal, UV: math.NewVec2(1, 1)},
		{Position: math.NewVec3(-0.5, -0.5, 0), Normal: normal, UV: math.NewVec2(0, 1)},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return CreateMeshFromData("Quad", vertices, indices)
}

// CreateCube builds an axis-aligned cube with per-face normals and uvs.
func CreateCube(size float32) *Mesh {
	h := size / 2

	type face struct {
		normal     math.Vec3
		a, b, c, d math.Vec3
	}
	faces := []face{
		{math.NewVec3(0, 0, 1), math.NewVec3(-h, h, h), math.NewVec3(h, h, h), math.NewVec3(h, -h, h), math.NewVec3(-h, -h, h)},
		{math.NewVec3(0, 0, -1), math.NewVec3(h, h, -h), math.NewVec3(-h, h, -h), math.NewVec3(-h, -h, -h), math.NewVec3(h, -h, -h)},
		{math.NewVec3(1, 0, 0), math.NewVec3(h, h, h), math.NewVec3(h, h, -h), math.NewVec3(h, -h, -h), math.NewVec3(h, -h, h)},
		{math.NewVec3(-1, 0, 0), math.NewVec3(-h, h, -h), math.NewVec3(-h, h, h), math.NewVec3(-h, -h, h), math.NewVec3(-h, -h, -h)},
		{math.NewVec3(0, 1, 0), math.NewVec3(-h, h, -h), math.NewVec3(h, h, -h), math.NewVec3(h, h, h), math.NewVec3(-h, h, h)},
		{math.NewVec3(0, -1, 0), math.NewVec3(-h, -h, h), math.NewVec3(h, -h, h), math.NewVec3(h, -h, -h), math.NewVec3(-h, -h, -h)},
	}

	var vertices []core.Vertex
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(vertices))
		vertices = append(vertices,
			core.Vertex{Position: f.a, Normal: f.normal, UV: math.NewVec2(0, 0)},
			core.Vertex{Position: f.b, Normal: f.normal, UV: math.NewVec2(1, 0)},
			core.Vertex{Position: f.c, Normal: f.normal, UV: math.NewVec2(1, 1)},
			core.Vertex{Position: f.d, Normal: f.normal, UV: math.NewVec2(0, 1)},
		)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return CreateMeshFromData("Cube", vertices, indices)
}

// CreateOverlayQuad builds a screen-space rectangle for the overlay
// pipeline. x, y are the top-left corner in overlay coordinates. The z and
// normal values are left zero: the overlay vertex stage ignores both.
func CreateOverlayQuad(x, y, width, height float32) *Mesh {
	vertices := []core.Vertex{
		{Position: math.NewVec3(x, y, 0), UV: math.NewVec2(0, 0)},
		{Position: math.NewVec3(x+width, y, 0), UV: math.NewVec2(1, 0)},
		{Position: math.NewVec3(x+width, y+height, 0), UV: math.NewVec2(1, 1)},
		{Position: math.NewVec3(x, y+height, 0), UV: math.NewVec2(0, 1)},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return CreateMeshFromData("OverlayQuad", vertices, indices)
}
