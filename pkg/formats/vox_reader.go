package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/vox2obj/pkg/encoding"
)

// VOX format errors.
var (
	ErrInvalidVOXMagic  = errors.New("invalid VOX magic: expected 'VOX '")
	ErrMissingMainChunk = errors.New("missing VOX MAIN chunk")
	ErrTruncatedVOXData = errors.New("truncated VOX data")
	ErrVOXChunkBounds   = errors.New("VOX chunk exceeds declared bounds")
)

const (
	voxMagic           = "VOX "
	voxChunkHeaderSize = 12
)

// voxChunkHeader is the fixed 12-byte prefix of every chunk.
type voxChunkHeader struct {
	ID           string
	ContentSize  uint32
	ChildrenSize uint32
}

// voxRange is a [start, end) byte range of sibling chunks still to decode.
type voxRange struct {
	start, end int
}

// ParseVOX parses VOX data from a byte slice.
func ParseVOX(data []byte) (*VOX, error) {
	if len(data) < 8 || string(data[0:4]) != voxMagic {
		return nil, ErrInvalidVOXMagic
	}

	vox := &VOX{
		Version:   int32(binary.LittleEndian.Uint32(data[4:8])),
		Materials: make(map[int32]VOXMaterial),
	}

	if len(data) < 8+voxChunkHeaderSize {
		return nil, fmt.Errorf("%w: no room for MAIN chunk header", ErrTruncatedVOXData)
	}
	if string(data[8:12]) != "MAIN" {
		return nil, fmt.Errorf("%w: found %q", ErrMissingMainChunk, data[8:12])
	}

	if err := vox.walkChunks(data, voxRange{start: 8, end: len(data)}); err != nil {
		return nil, err
	}

	return vox, nil
}

// ParseVOXFile parses a VOX file from disk.
func ParseVOXFile(path string) (*VOX, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading VOX file: %w", err)
	}
	return ParseVOX(data)
}

// walkChunks decodes every chunk in root with an explicit stack of ranges.
// Children are decoded before the siblings that follow their parent.
// Every declared size is checked against the enclosing range first.
func (v *VOX) walkChunks(data []byte, root voxRange) error {
	stack := []voxRange{root}

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if r.start >= r.end {
			continue
		}
		if r.end-r.start < voxChunkHeaderSize {
			return fmt.Errorf("%w: %d trailing bytes at offset %d", ErrTruncatedVOXData, r.end-r.start, r.start)
		}

		hdr := voxChunkHeader{
			ID:           string(data[r.start : r.start+4]),
			ContentSize:  binary.LittleEndian.Uint32(data[r.start+4:]),
			ChildrenSize: binary.LittleEndian.Uint32(data[r.start+8:]),
		}

		contentStart := r.start + voxChunkHeaderSize
		available := uint64(r.end - contentStart)
		if uint64(hdr.ContentSize)+uint64(hdr.ChildrenSize) > available {
			return fmt.Errorf("%w: %s at offset %d declares %d+%d bytes, %d available",
				ErrVOXChunkBounds, hdr.ID, r.start, hdr.ContentSize, hdr.ChildrenSize, available)
		}
		contentEnd := contentStart + int(hdr.ContentSize)
		childrenEnd := contentEnd + int(hdr.ChildrenSize)

		known, err := v.decodeChunk(hdr.ID, data[contentStart:contentEnd])
		if err != nil {
			return fmt.Errorf("decoding %s chunk at offset %d: %w", hdr.ID, r.start, err)
		}

		stack = append(stack, voxRange{childrenEnd, r.end})
		if known && hdr.ChildrenSize > 0 {
			stack = append(stack, voxRange{contentEnd, childrenEnd})
		}
	}

	return nil
}

// decodeChunk dispatches chunk content to its decoder. Unknown ids are
// skipped together with their children and report false.
func (v *VOX) decodeChunk(id string, content []byte) (bool, error) {
	var err error
	switch id {
	case "MAIN":
	case "SIZE":
		err = v.decodeSize(content)
	case "XYZI":
		err = v.decodeXYZI(content)
	case "RGBA":
		err = v.decodeRGBA(content)
	case "MATL":
		err = v.decodeMaterial(content)
	case "nTRN":
		err = v.decodeTransform(content)
	case "nGRP":
		err = v.decodeGroup(content)
	case "nSHP":
		err = v.decodeShape(content)
	default:
		v.warnf("skipped unsupported chunk %q (%d bytes)", id, len(content))
		return false, nil
	}
	return true, err
}

func (v *VOX) decodeSize(content []byte) error {
	c := newVOXCursor(content)
	for i := range v.Size {
		n, err := c.readUint32()
		if err != nil {
			return err
		}
		v.Size[i] = n
	}
	return nil
}

func (v *VOX) decodeXYZI(content []byte) error {
	c := newVOXCursor(content)
	count, err := c.readUint32()
	if err != nil {
		return err
	}
	raw, err := c.readBytes(uint64(count) * 4)
	if err != nil {
		return fmt.Errorf("%d voxels: %w", count, err)
	}

	model := VOXModel{Voxels: make([]VOXVoxel, count)}
	for i := range model.Voxels {
		b := raw[i*4 : i*4+4]
		model.Voxels[i] = VOXVoxel{X: b[0], Y: b[1], Z: b[2], ColorIndex: b[3]}
	}
	v.Models = append(v.Models, model)
	return nil
}

// decodeRGBA stores chunk entry i at palette slot i+1. A 256th entry would
// land on the reserved slot 0 and is dropped.
func (v *VOX) decodeRGBA(content []byte) error {
	var p VOXPalette
	entries := len(content) / 4
	if entries > 255 {
		entries = 255
	}
	for i := 0; i < entries; i++ {
		p[i+1] = binary.LittleEndian.Uint32(content[i*4:])
	}
	v.Palettes = append(v.Palettes, p)
	return nil
}

// voxCursor reads little-endian values from chunk content and never reads
// past its end.
type voxCursor struct {
	buf []byte
	pos int
}

func newVOXCursor(buf []byte) *voxCursor {
	return &voxCursor{buf: buf}
}

func (c *voxCursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *voxCursor) readBytes(n uint64) ([]byte, error) {
	if n > uint64(c.remaining()) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrVOXChunkBounds, n, c.pos, c.remaining())
	}
	b := c.buf[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return b, nil
}

func (c *voxCursor) readUint32() (uint32, error) {
	b, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *voxCursor) readInt32() (int32, error) {
	n, err := c.readUint32()
	return int32(n), err
}

// readString reads a 4-byte length followed by that many raw bytes.
func (c *voxCursor) readString() (string, error) {
	n, err := c.readUint32()
	if err != nil {
		return "", err
	}
	b, err := c.readBytes(uint64(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// voxDict is a format-level dictionary of string pairs.
type voxDict map[string]string

// readDict reads a pair count followed by that many key/value strings.
func (c *voxCursor) readDict() (voxDict, error) {
	count, err := c.readUint32()
	if err != nil {
		return nil, err
	}
	// Each pair takes at least two length prefixes.
	if uint64(count)*8 > uint64(c.remaining()) {
		return nil, fmt.Errorf("%w: dictionary of %d pairs in %d bytes", ErrVOXChunkBounds, count, c.remaining())
	}

	dict := make(voxDict, count)
	for i := uint32(0); i < count; i++ {
		key, err := c.readString()
		if err != nil {
			return nil, err
		}
		value, err := c.readString()
		if err != nil {
			return nil, err
		}
		dict[key] = value
	}
	return dict, nil
}

// readNodeHeader reads the node id and attribute dictionary shared by all
// scene node chunks.
func (c *voxCursor) readNodeHeader() (VOXNodeBase, error) {
	id, err := c.readInt32()
	if err != nil {
		return VOXNodeBase{}, err
	}
	attrs, err := c.readDict()
	if err != nil {
		return VOXNodeBase{}, err
	}
	return VOXNodeBase{
		NodeID: id,
		Name:   encoding.DecodeName(attrs["_name"]),
		Hidden: attrs["_hidden"] == "1",
	}, nil
}
