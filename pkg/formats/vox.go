package formats

import (
	"fmt"
	"sort"

	"github.com/Faultbox/vox2obj/pkg/math"
)

// VOXPropertyUnset marks a material property that was not present in the file.
const VOXPropertyUnset float32 = -1

// VOXVoxel is a single voxel record as stored in an XYZI chunk.
type VOXVoxel struct {
	X, Y, Z    uint8
	ColorIndex uint8 // Palette slot, 1-255
}

// VOXModel is one voxel grid (one XYZI chunk), in file order.
type VOXModel struct {
	Voxels []VOXVoxel
}

// VOXPalette holds packed RGBA colors (R in the low byte).
// Slot 0 is reserved; slot N is the color for voxel color index N.
type VOXPalette [256]uint32

// RGBA unpacks the color stored in the given slot.
func (p *VOXPalette) RGBA(index uint8) [4]uint8 {
	c := p[index]
	return [4]uint8{uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)}
}

// VOXMaterialType is the shading model of a MATL entry.
type VOXMaterialType int

const (
	VOXMaterialDiffuse VOXMaterialType = iota
	VOXMaterialMetal
	VOXMaterialGlass
	VOXMaterialEmit
)

// String returns a human-readable material type name.
func (t VOXMaterialType) String() string {
	switch t {
	case VOXMaterialDiffuse:
		return "Diffuse"
	case VOXMaterialMetal:
		return "Metal"
	case VOXMaterialGlass:
		return "Glass"
	case VOXMaterialEmit:
		return "Emit"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// VOXMaterial is a MATL property bag. Absent properties hold VOXPropertyUnset.
type VOXMaterial struct {
	Type        VOXMaterialType
	Weight      float32
	Roughness   float32
	Specular    float32
	IOR         float32
	Attenuation float32
	Flux        float32
	Plastic     float32
}

// NewVOXMaterial returns a diffuse material with every property unset.
func NewVOXMaterial() VOXMaterial {
	return VOXMaterial{
		Type:        VOXMaterialDiffuse,
		Weight:      VOXPropertyUnset,
		Roughness:   VOXPropertyUnset,
		Specular:    VOXPropertyUnset,
		IOR:         VOXPropertyUnset,
		Attenuation: VOXPropertyUnset,
		Flux:        VOXPropertyUnset,
		Plastic:     VOXPropertyUnset,
	}
}

// VOXNodeKind identifies the concrete type of a scene node.
type VOXNodeKind int

const (
	VOXNodeTransform VOXNodeKind = iota
	VOXNodeGroup
	VOXNodeShape
)

// String returns the chunk id of the node kind.
func (k VOXNodeKind) String() string {
	switch k {
	case VOXNodeTransform:
		return "nTRN"
	case VOXNodeGroup:
		return "nGRP"
	case VOXNodeShape:
		return "nSHP"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// VOXNode is a scene graph node. The set of implementations is closed:
// *VOXTransform, *VOXGroup and *VOXShape.
type VOXNode interface {
	Kind() VOXNodeKind
	Base() *VOXNodeBase
	voxNode()
}

// VOXNodeBase holds the attributes common to every node kind.
type VOXNodeBase struct {
	NodeID int32
	Name   string // "_name" attribute, empty when absent
	Hidden bool   // "_hidden" attribute
}

// Base returns the common node attributes.
func (b *VOXNodeBase) Base() *VOXNodeBase { return b }

func (b *VOXNodeBase) voxNode() {}

// VOXFrame is one keyframe of a transform node.
type VOXFrame struct {
	Rotation    math.Mat3  // Signed permutation matrix, row-major
	Translation math.IVec3 // Integer translation
}

// IsMirrored reports whether the frame rotation flips handedness.
func (f VOXFrame) IsMirrored() bool {
	return f.Rotation.Determinant() < 0
}

// VOXTransform is an nTRN node.
type VOXTransform struct {
	VOXNodeBase
	ChildNodeID  int32
	ReservedID   int32 // -1 in well-formed files
	LayerID      int32
	FrameCount   int32 // 1 in well-formed files
	InitialFrame VOXFrame
}

// Kind returns VOXNodeTransform.
func (*VOXTransform) Kind() VOXNodeKind { return VOXNodeTransform }

// VOXGroup is an nGRP node.
type VOXGroup struct {
	VOXNodeBase
	Children []int32 // Child node ids, in file order
}

// Kind returns VOXNodeGroup.
func (*VOXGroup) Kind() VOXNodeKind { return VOXNodeGroup }

// VOXShapeModel is the attribute pair attached to a shape's model reference.
type VOXShapeModel struct {
	Name   string
	Hidden string
}

// VOXShape is an nSHP node.
type VOXShape struct {
	VOXNodeBase
	Models map[int32]VOXShapeModel // Keyed by index into VOX.Models
}

// Kind returns VOXNodeShape.
func (*VOXShape) Kind() VOXNodeKind { return VOXNodeShape }

// ModelIDs returns the referenced model ids in ascending order.
func (s *VOXShape) ModelIDs() []int32 {
	ids := make([]int32, 0, len(s.Models))
	for id := range s.Models {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// VOX represents a parsed MagicaVoxel file.
type VOX struct {
	Version    int32
	Size       [3]uint32 // SIZE chunk extents (informational, not enforced)
	Models     []VOXModel
	Palettes   []VOXPalette
	Materials  map[int32]VOXMaterial
	Transforms []*VOXTransform
	Groups     []*VOXGroup
	Shapes     []*VOXShape

	// Warnings lists recoverable anomalies met while decoding.
	Warnings []string

	nodes []VOXNode
}

// Nodes returns every scene node in file order.
func (v *VOX) Nodes() []VOXNode {
	return v.nodes
}

// Palette returns the last palette in the file, or the default palette
// when the file has none.
func (v *VOX) Palette() *VOXPalette {
	if len(v.Palettes) == 0 {
		p := DefaultVOXPalette()
		return &p
	}
	return &v.Palettes[len(v.Palettes)-1]
}

// GetTotalVoxelCount returns the number of voxels across all models.
func (v *VOX) GetTotalVoxelCount() int {
	total := 0
	for _, m := range v.Models {
		total += len(m.Voxels)
	}
	return total
}

// GetNodeByID returns the node with the given id, or nil if not found.
func (v *VOX) GetNodeByID(id int32) VOXNode {
	for _, n := range v.nodes {
		if n.Base().NodeID == id {
			return n
		}
	}
	return nil
}

// Summary returns a short multi-line description of the scene.
func (v *VOX) Summary() string {
	return fmt.Sprintf("Version:    %d\nSize:       %d %d %d\nModels:     %d (%d voxels)\nPalettes:   %d\nMaterials:  %d\nTransforms: %d\nGroups:     %d\nShapes:     %d\n",
		v.Version, v.Size[0], v.Size[1], v.Size[2],
		len(v.Models), v.GetTotalVoxelCount(),
		len(v.Palettes), len(v.Materials),
		len(v.Transforms), len(v.Groups), len(v.Shapes))
}

func (v *VOX) addNode(n VOXNode) {
	v.nodes = append(v.nodes, n)
	switch node := n.(type) {
	case *VOXTransform:
		v.Transforms = append(v.Transforms, node)
	case *VOXGroup:
		v.Groups = append(v.Groups, node)
	case *VOXShape:
		v.Shapes = append(v.Shapes, node)
	}
}

func (v *VOX) warnf(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
