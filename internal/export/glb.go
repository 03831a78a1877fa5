package export

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/vox2obj/internal/mesher"
	"github.com/Faultbox/vox2obj/pkg/formats"
)

// BuildGLTF converts g into a glTF document with a single mesh. Each
// buffer becomes one primitive with its own material, colored from the
// palette. Quads are split into two triangles sharing the first corner.
func BuildGLTF(g mesher.Group, palette *formats.VOXPalette, name string) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "vox2obj"

	mesh := &gltf.Mesh{Name: name}
	for i, mat := range g.Materials() {
		buf := g[mat]
		if len(buf.Faces) == 0 {
			continue
		}

		rgba := palette.RGBA(mat)
		color := [4]float32{unorm(rgba[0]), unorm(rgba[1]), unorm(rgba[2]), unorm(rgba[3])}

		positions := make([][3]float32, len(buf.Vertices))
		colors := make([][4]float32, len(buf.Vertices))
		for j, v := range buf.Vertices {
			positions[j] = v.Array()
			colors[j] = color
		}

		indices := make([]uint32, 0, len(buf.Faces)*6)
		for _, f := range buf.Faces {
			indices = append(indices,
				uint32(f[0]), uint32(f[1]), uint32(f[2]),
				uint32(f[0]), uint32(f[2]), uint32(f[3]))
		}

		posAccessor := modeler.WritePosition(doc, positions)
		colorAccessor := modeler.WriteColor(doc, colors)
		indicesAccessor := modeler.WriteIndices(doc, indices)

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: uint32(posAccessor),
				gltf.COLOR_0:  uint32(colorAccessor),
			},
			Indices:  gltf.Index(uint32(indicesAccessor)),
			Material: gltf.Index(uint32(len(doc.Materials))),
		}
		if len(buf.Normals) == len(buf.Vertices) {
			normals := make([][3]float32, len(buf.Normals))
			for j, n := range buf.Normals {
				normals[j] = n.Array()
			}
			prim.Attributes[gltf.NORMAL] = uint32(modeler.WriteNormal(doc, normals))
		}

		material := &gltf.Material{
			Name: materialName(i),
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float32{1, 1, 1, 1},
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1),
			},
			AlphaMode: gltf.AlphaOpaque,
		}
		if rgba[3] < 255 {
			material.AlphaMode = gltf.AlphaBlend
		}
		doc.Materials = append(doc.Materials, material)
		mesh.Primitives = append(mesh.Primitives, prim)
	}

	doc.Meshes = []*gltf.Mesh{mesh}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))
	return doc
}

// WriteGLB writes g as a binary glTF file.
func WriteGLB(path string, g mesher.Group, palette *formats.VOXPalette) error {
	doc := BuildGLTF(g, palette, "VoxelMesh")
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("writing GLB %s: %w", path, err)
	}
	return nil
}
