package formats

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/vox2obj/pkg/encoding"
	"github.com/Faultbox/vox2obj/pkg/math"
)

// voxMaterialTypes maps the MATL "_type" value to a material type.
var voxMaterialTypes = map[string]VOXMaterialType{
	"_diffuse": VOXMaterialDiffuse,
	"_metal":   VOXMaterialMetal,
	"_glass":   VOXMaterialGlass,
	"_emit":    VOXMaterialEmit,
}

// voxMaterialProperty returns the field a numeric MATL key is stored in.
func voxMaterialProperty(m *VOXMaterial, key string) *float32 {
	switch key {
	case "_weight":
		return &m.Weight
	case "_rough":
		return &m.Roughness
	case "_spec":
		return &m.Specular
	case "_ior":
		return &m.IOR
	case "_att":
		return &m.Attenuation
	case "_flux":
		return &m.Flux
	case "_plastic":
		return &m.Plastic
	}
	return nil
}

func (v *VOX) decodeMaterial(content []byte) error {
	c := newVOXCursor(content)
	id, err := c.readInt32()
	if err != nil {
		return err
	}
	props, err := c.readDict()
	if err != nil {
		return err
	}

	mat := NewVOXMaterial()
	for key, value := range props {
		if key == "_type" {
			if t, ok := voxMaterialTypes[value]; ok {
				mat.Type = t
			} else {
				v.warnf("material %d: unknown type %q", id, value)
			}
			continue
		}

		field := voxMaterialProperty(&mat, key)
		if field == nil {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		if err != nil {
			v.warnf("material %d: property %s=%q is not a number", id, key, value)
			continue
		}
		*field = float32(f)
	}

	v.Materials[id] = mat
	return nil
}

func (v *VOX) decodeTransform(content []byte) error {
	c := newVOXCursor(content)
	base, err := c.readNodeHeader()
	if err != nil {
		return err
	}

	node := &VOXTransform{
		VOXNodeBase: base,
		InitialFrame: VOXFrame{
			Rotation: math.Identity3(),
		},
	}
	for _, field := range []*int32{&node.ChildNodeID, &node.ReservedID, &node.LayerID, &node.FrameCount} {
		if *field, err = c.readInt32(); err != nil {
			return err
		}
	}

	if node.ReservedID != -1 {
		v.warnf("transform %d: reserved id is %d, expected -1", node.NodeID, node.ReservedID)
	}
	if node.FrameCount != 1 {
		v.warnf("transform %d: %d frames, only the first is kept", node.NodeID, node.FrameCount)
	}

	// Frame 0 is read whenever content remains, whatever the declared count.
	if c.remaining() > 0 {
		frame, err := c.readDict()
		if err != nil {
			return fmt.Errorf("transform %d frame 0: %w", node.NodeID, err)
		}
		v.applyFrame(node, frame)
	}
	for i := int32(1); i < node.FrameCount; i++ {
		if _, err := c.readDict(); err != nil {
			v.warnf("transform %d: frame %d of %d is missing", node.NodeID, i, node.FrameCount)
			break
		}
	}

	v.addNode(node)
	return nil
}

// applyFrame fills the initial frame from its "_r" and "_t" attributes.
func (v *VOX) applyFrame(node *VOXTransform, frame voxDict) {
	if r, ok := frame["_r"]; ok {
		b, err := parseVOXRotationValue(r)
		if err != nil {
			v.warnf("transform %d: %v", node.NodeID, err)
		} else if m, ok := DecodeVOXRotation(b); ok {
			node.InitialFrame.Rotation = m
		} else {
			v.warnf("transform %d: illegal rotation byte %#08b", node.NodeID, b)
		}
	}

	if t, ok := frame["_t"]; ok {
		tr, err := parseVOXTranslation(t)
		if err != nil {
			v.warnf("transform %d: %v", node.NodeID, err)
		} else {
			node.InitialFrame.Translation = tr
		}
	}
}

// parseVOXRotationValue accepts the decimal string MagicaVoxel writes, or
// a single raw byte. Decimal wins: the raw bytes '1', '2', '4', '6', '8'
// and '9' are legal rotations too, but decode as their digit value.
func parseVOXRotationValue(s string) (byte, error) {
	if n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8); err == nil {
		return byte(n), nil
	}
	if len(s) == 1 {
		return s[0], nil
	}
	return 0, fmt.Errorf("invalid rotation value %q", s)
}

// parseVOXTranslation accepts "x y z" decimal text or three packed
// little-endian int32 values.
func parseVOXTranslation(s string) (math.IVec3, error) {
	if fields := strings.Fields(s); len(fields) == 3 {
		var xyz [3]int32
		valid := true
		for i, f := range fields {
			n, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				valid = false
				break
			}
			xyz[i] = int32(n)
		}
		if valid {
			return math.IVec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
		}
	}

	if len(s) == 12 {
		b := []byte(s)
		return math.IVec3{
			X: int32(binary.LittleEndian.Uint32(b[0:])),
			Y: int32(binary.LittleEndian.Uint32(b[4:])),
			Z: int32(binary.LittleEndian.Uint32(b[8:])),
		}, nil
	}

	return math.IVec3{}, fmt.Errorf("invalid translation value %q", s)
}

func (v *VOX) decodeGroup(content []byte) error {
	c := newVOXCursor(content)
	base, err := c.readNodeHeader()
	if err != nil {
		return err
	}
	count, err := c.readUint32()
	if err != nil {
		return err
	}
	if uint64(count)*4 > uint64(c.remaining()) {
		return fmt.Errorf("%w: group %d lists %d children in %d bytes", ErrVOXChunkBounds, base.NodeID, count, c.remaining())
	}

	node := &VOXGroup{VOXNodeBase: base, Children: make([]int32, count)}
	for i := range node.Children {
		if node.Children[i], err = c.readInt32(); err != nil {
			return err
		}
	}

	v.addNode(node)
	return nil
}

func (v *VOX) decodeShape(content []byte) error {
	c := newVOXCursor(content)
	base, err := c.readNodeHeader()
	if err != nil {
		return err
	}
	count, err := c.readUint32()
	if err != nil {
		return err
	}
	// Each model reference is an id plus an attribute pair count.
	if uint64(count)*8 > uint64(c.remaining()) {
		return fmt.Errorf("%w: shape %d lists %d models in %d bytes", ErrVOXChunkBounds, base.NodeID, count, c.remaining())
	}

	node := &VOXShape{VOXNodeBase: base, Models: make(map[int32]VOXShapeModel, count)}
	for i := uint32(0); i < count; i++ {
		modelID, err := c.readInt32()
		if err != nil {
			return err
		}
		attrs, err := c.readDict()
		if err != nil {
			return err
		}
		node.Models[modelID] = VOXShapeModel{Name: encoding.DecodeName(attrs["_name"]), Hidden: attrs["_hidden"]}
	}

	v.addNode(node)
	return nil
}
