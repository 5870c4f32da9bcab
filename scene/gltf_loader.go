package scene

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"shading-pipeline/core"
	"shading-pipeline/math"
	"shading-pipeline/texture"
)

// GLTFResult holds the meshes and textures loaded from a .glb / .gltf file.
// Draws bind each mesh's BaseColor texture (if any) and the material color
// as the per-draw-call uniforms; node hierarchies and PBR parameters are
// out of scope for this renderer and are flattened away.
type GLTFResult struct {
	Meshes []*GLTFMesh
}

// GLTFMesh is one drawable primitive plus its per-draw-call resources.
type GLTFMesh struct {
	Mesh      *Mesh
	Color     core.Color
	BaseColor *texture.Texture // nil when the material is untextured
}

// LoadGLTF opens a .glb or .gltf file and extracts every triangle
// primitive with its base-color material.
func LoadGLTF(path string) (*GLTFResult, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	result := &GLTFResult{}

	texCache := make([]*texture.Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var tex *texture.Texture
		switch {
		case img.BufferView != nil:
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				fmt.Printf("gltf: image %d bufferview: %v\n", *gt.Source, err)
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", *gt.Source)
			}
			tex, err = texture.Decode(name, raw)
			if err != nil {
				fmt.Printf("gltf: image %d decode: %v\n", *gt.Source, err)
				continue
			}
		case img.URI != "" && !img.IsEmbeddedResource():
			tex, err = texture.Load(filepath.Join(dir, img.URI))
			if err != nil {
				fmt.Printf("gltf: image %d (%s): %v\n", *gt.Source, img.URI, err)
				continue
			}
		}
		texCache[i] = tex
	}

	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := loadPrimitive(doc, gm.Name, pi, *prim)
			if err != nil {
				fmt.Printf("gltf: mesh %d prim %d: %v\n", mi, pi, err)
				continue
			}

			entry := &GLTFMesh{Mesh: m, Color: core.ColorWhite}
			if prim.Material != nil && *prim.Material < len(doc.Materials) {
				if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
					cf := pbr.BaseColorFactorOrDefault()
					entry.Color = core.Color{
						R: float32(cf[0]), G: float32(cf[1]),
						B: float32(cf[2]), A: float32(cf[3]),
					}
					if pbr.BaseColorTexture != nil {
						idx := pbr.BaseColorTexture.Index
						if idx < len(texCache) {
							entry.BaseColor = texCache[idx]
						}
					}
				}
			}
			result.Meshes = append(result.Meshes, entry)
		}
	}

	if len(result.Meshes) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle primitives", path)
	}
	return result, nil
}

// loadPrimitive converts one glTF mesh primitive into a Mesh.
func loadPrimitive(doc *gltf.Document, meshName string, primIdx int, prim gltf.Primitive) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3{X: 0, Y: 1, Z: 0},
		}
		if i < len(normals) {
			v.Normal = math.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	return CreateMeshFromData(name, verts, indices), nil
}
