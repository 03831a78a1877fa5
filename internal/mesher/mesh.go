package mesher

import (
	"slices"

	"github.com/Faultbox/vox2obj/pkg/formats"
	"github.com/Faultbox/vox2obj/pkg/math"
)

// voxelKey packs a grid coordinate so that ascending keys follow (x, y, z)
// lexicographic order.
type voxelKey uint32

func makeKey(pos [3]uint8) voxelKey {
	return voxelKey(pos[0])<<16 | voxelKey(pos[1])<<8 | voxelKey(pos[2])
}

func (k voxelKey) pos() [3]uint8 {
	return [3]uint8{uint8(k >> 16), uint8(k >> 8), uint8(k)}
}

// occupancy maps every present coordinate to its color index.
type occupancy struct {
	cells  map[voxelKey]uint8
	bounds Bounds
}

// buildOccupancy indexes the voxels of a model. Duplicate coordinates keep
// the color of the last occurrence.
func buildOccupancy(model formats.VOXModel) *occupancy {
	occ := &occupancy{
		cells: make(map[voxelKey]uint8, len(model.Voxels)),
		bounds: Bounds{
			Min: [3]uint8{255, 255, 255},
			Max: [3]uint8{0, 0, 0},
		},
	}

	for _, v := range model.Voxels {
		pos := [3]uint8{v.X, v.Y, v.Z}
		for axis, c := range pos {
			occ.bounds.Min[axis] = min(occ.bounds.Min[axis], c)
			occ.bounds.Max[axis] = max(occ.bounds.Max[axis], c)
		}
		occ.cells[makeKey(pos)] = v.ColorIndex
	}
	return occ
}

func (o *occupancy) has(pos [3]uint8) bool {
	_, ok := o.cells[makeKey(pos)]
	return ok
}

// visibleFaces returns one bit per direction whose face is exposed: the
// voxel sits on the bounding box boundary on that side, or the neighbor
// cell is empty. Neighbor lookups never wrap around 0 or 255.
func (o *occupancy) visibleFaces(pos [3]uint8) uint8 {
	var flags uint8
	for dir, fa := range faceAxes {
		c := pos[fa.axis]
		if (fa.step > 0 && c == o.bounds.Max[fa.axis]) || (fa.step < 0 && c == o.bounds.Min[fa.axis]) {
			flags |= 1 << dir
			continue
		}

		neighbor := pos
		neighbor[fa.axis] = uint8(int(c) + fa.step)
		if !o.has(neighbor) {
			flags |= 1 << dir
		}
	}
	return flags
}

// sortedKeys returns the occupied coordinates in ascending (x, y, z) order.
func (o *occupancy) sortedKeys() []voxelKey {
	keys := make([]voxelKey, 0, len(o.cells))
	for k := range o.cells {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Polygonize builds the exposed-face mesh of one voxel grid. Every visible
// voxel side becomes a quad in the buffer of the voxel's color index.
// Vertices are not shared between faces.
func Polygonize(model formats.VOXModel) Group {
	group := make(Group)
	if len(model.Voxels) == 0 {
		return group
	}

	occ := buildOccupancy(model)
	for _, key := range occ.sortedKeys() {
		pos := key.pos()
		flags := occ.visibleFaces(pos)
		if flags == 0 {
			continue
		}

		color := occ.cells[key]
		buf, ok := group[color]
		if !ok {
			buf = &VoxelBuffer{}
			group[color] = buf
		}
		buf.appendVoxel(math.Vec3{X: float32(pos[0]), Y: float32(pos[1]), Z: float32(pos[2])}, flags)
	}

	return group
}

// appendVoxel emits one quad per set bit of flags.
func (b *VoxelBuffer) appendVoxel(origin math.Vec3, flags uint8) {
	for dir := 0; dir < dirCount; dir++ {
		if flags&(1<<dir) == 0 {
			continue
		}

		base := len(b.Vertices)
		for _, corner := range faceCorners[dir] {
			b.Vertices = append(b.Vertices, cubeCorners[corner].Add(origin))
			b.Normals = append(b.Normals, faceNormals[dir])
		}
		b.Faces = append(b.Faces, Face{base, base + 1, base + 2, base + 3})
	}
}

// ModelBounds returns the bounding box of a model's voxels. The second
// result is false for an empty model.
func ModelBounds(model formats.VOXModel) (Bounds, bool) {
	if len(model.Voxels) == 0 {
		return Bounds{}, false
	}
	return buildOccupancy(model).bounds, true
}
