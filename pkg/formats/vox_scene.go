package formats

import "github.com/Faultbox/vox2obj/pkg/math"

// VOXInstance is one placement of a model in the scene.
type VOXInstance struct {
	ShapeID     int32
	ModelID     int32
	Rotation    math.Mat3
	Translation math.IVec3
	Hidden      bool // Set when the shape or any ancestor is hidden
}

// Instances walks the scene graph from node 0 and returns every model
// placement with the transforms of its ancestors applied, in traversal
// order. A file without a scene graph places each model once at the
// origin. Missing nodes and cycles are skipped.
func (v *VOX) Instances() []VOXInstance {
	if len(v.nodes) == 0 {
		instances := make([]VOXInstance, len(v.Models))
		for i := range instances {
			instances[i] = VOXInstance{ShapeID: -1, ModelID: int32(i), Rotation: math.Identity3()}
		}
		return instances
	}

	byID := make(map[int32]VOXNode, len(v.nodes))
	for _, n := range v.nodes {
		byID[n.Base().NodeID] = n
	}

	var instances []VOXInstance
	visiting := make(map[int32]bool)

	var walk func(id int32, rot math.Mat3, t math.IVec3, hidden bool)
	walk = func(id int32, rot math.Mat3, t math.IVec3, hidden bool) {
		n, ok := byID[id]
		if !ok || visiting[id] {
			return
		}
		visiting[id] = true
		defer delete(visiting, id)
		hidden = hidden || n.Base().Hidden

		switch node := n.(type) {
		case *VOXTransform:
			// world = parent * local
			local := node.InitialFrame.Translation.Vec3()
			moved := rot.MulVec(local)
			offset := math.IVec3{X: int32(moved.X), Y: int32(moved.Y), Z: int32(moved.Z)}
			walk(node.ChildNodeID, rot.Mul(node.InitialFrame.Rotation), t.Add(offset), hidden)
		case *VOXGroup:
			for _, child := range node.Children {
				walk(child, rot, t, hidden)
			}
		case *VOXShape:
			for _, modelID := range node.ModelIDs() {
				instances = append(instances, VOXInstance{
					ShapeID:     node.NodeID,
					ModelID:     modelID,
					Rotation:    rot,
					Translation: t,
					Hidden:      hidden || node.Models[modelID].Hidden == "1",
				})
			}
		}
	}
	walk(0, math.Identity3(), math.IVec3{}, false)

	return instances
}
