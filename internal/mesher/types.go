// Package mesher turns voxel grids into per-material quad meshes.
package mesher

import (
	"sort"

	"github.com/Faultbox/vox2obj/pkg/math"
)

// Face is a quad referencing four vertices of its VoxelBuffer, 0-based.
type Face [4]int

// VoxelBuffer holds the geometry emitted for one material.
type VoxelBuffer struct {
	Vertices []math.Vec3
	Normals  []math.Vec3 // Same length as Vertices, or empty
	Faces    []Face
}

// Group is the mesh of one voxel grid, keyed by voxel color index.
type Group map[uint8]*VoxelBuffer

// Materials returns the color indices present in the group in ascending
// order. Exporters iterate buffers in this order.
func (g Group) Materials() []uint8 {
	keys := make([]uint8, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// FaceCount returns the number of quads across all buffers.
func (g Group) FaceCount() int {
	total := 0
	for _, buf := range g {
		total += len(buf.Faces)
	}
	return total
}

// VertexCount returns the number of vertices across all buffers.
func (g Group) VertexCount() int {
	total := 0
	for _, buf := range g {
		total += len(buf.Vertices)
	}
	return total
}

// HasNormals reports whether any buffer carries normals.
func (g Group) HasNormals() bool {
	for _, buf := range g {
		if len(buf.Normals) > 0 {
			return true
		}
	}
	return false
}

// Bounds holds the integer bounding box of a voxel grid.
type Bounds struct {
	Min [3]uint8
	Max [3]uint8
}

// StripNormals drops the normals of every buffer in place.
func (g Group) StripNormals() {
	for _, buf := range g {
		buf.Normals = nil
	}
}
