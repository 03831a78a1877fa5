package export

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/vox2obj/internal/mesher"
	"github.com/Faultbox/vox2obj/pkg/formats"
)

func TestBuildGLTF(t *testing.T) {
	g := mesher.Polygonize(formats.VOXModel{Voxels: []formats.VOXVoxel{
		{X: 0, Y: 0, Z: 0, ColorIndex: 1},
		{X: 1, Y: 0, Z: 0, ColorIndex: 2},
	}})
	palette := formats.DefaultVOXPalette()

	doc := BuildGLTF(g, &palette, "test")

	if len(doc.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(doc.Meshes))
	}
	prims := doc.Meshes[0].Primitives
	if len(prims) != 2 {
		t.Fatalf("expected 2 primitives, got %d", len(prims))
	}
	if len(doc.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(doc.Materials))
	}

	for i, prim := range prims {
		pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
		if pos.Count != 20 {
			t.Errorf("primitive %d: expected 20 positions, got %d", i, pos.Count)
		}
		if _, ok := prim.Attributes[gltf.NORMAL]; !ok {
			t.Errorf("primitive %d: missing normals", i)
		}
		if _, ok := prim.Attributes[gltf.COLOR_0]; !ok {
			t.Errorf("primitive %d: missing colors", i)
		}
		idx := doc.Accessors[*prim.Indices]
		if idx.Count != 30 {
			t.Errorf("primitive %d: expected 30 indices, got %d", i, idx.Count)
		}
	}
}

func TestWriteGLB_RoundTrip(t *testing.T) {
	g := mesher.Polygonize(formats.VOXModel{Voxels: []formats.VOXVoxel{
		{X: 2, Y: 3, Z: 4, ColorIndex: 9},
	}})
	palette := formats.DefaultVOXPalette()
	path := filepath.Join(t.TempDir(), "cube.glb")

	if err := WriteGLB(path, g, &palette); err != nil {
		t.Fatalf("WriteGLB failed: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("gltf.Open failed: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("unexpected mesh layout: %+v", doc.Meshes)
	}
	prim := doc.Meshes[0].Primitives[0]
	if idx := doc.Accessors[*prim.Indices]; idx.Count != 36 {
		t.Errorf("expected 36 indices, got %d", idx.Count)
	}
	if len(doc.Scenes) == 0 || len(doc.Scenes[0].Nodes) != 1 {
		t.Error("expected one node in the default scene")
	}
}
