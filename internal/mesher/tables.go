package mesher

import "github.com/Faultbox/vox2obj/pkg/math"

// Face directions, in the order the visibility bits use.
const (
	dirPosX = iota
	dirPosY
	dirPosZ
	dirNegX
	dirNegY
	dirNegZ
	dirCount
)

// allFaces has one bit set per direction.
const allFaces uint8 = 1<<dirCount - 1

// cubeCorners are the corners of a unit cube centered on the voxel.
var cubeCorners = [8]math.Vec3{
	{X: -0.5, Y: -0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5},
	{X: -0.5, Y: -0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5},
}

// faceCorners lists the cubeCorners of each face, counter-clockwise when
// seen from outside the cube. Do not reorder.
var faceCorners = [dirCount][4]int{
	dirPosX: {7, 6, 2, 3},
	dirPosY: {2, 6, 5, 1},
	dirPosZ: {3, 2, 1, 0},
	dirNegX: {0, 1, 5, 4},
	dirNegY: {7, 3, 0, 4},
	dirNegZ: {4, 5, 6, 7},
}

// faceNormals are the outward unit normals of each face.
var faceNormals = [dirCount]math.Vec3{
	dirPosX: {X: 1},
	dirPosY: {Y: 1},
	dirPosZ: {Z: 1},
	dirNegX: {X: -1},
	dirNegY: {Y: -1},
	dirNegZ: {Z: -1},
}

// faceAxes gives the axis and step of each direction.
var faceAxes = [dirCount]struct {
	axis int
	step int
}{
	dirPosX: {0, 1},
	dirPosY: {1, 1},
	dirPosZ: {2, 1},
	dirNegX: {0, -1},
	dirNegY: {1, -1},
	dirNegZ: {2, -1},
}
