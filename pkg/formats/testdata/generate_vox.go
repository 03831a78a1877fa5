//go:build ignore

// This program generates a test VOX file for unit tests.
// Run with: go run generate_vox.go
package main

import (
	"bytes"
	"encoding/binary"
	"os"
)

type chunk struct {
	id       string
	content  []byte
	children []chunk
}

func (c chunk) write(buf *bytes.Buffer) {
	var children bytes.Buffer
	for _, child := range c.children {
		child.write(&children)
	}
	buf.WriteString(c.id)
	binary.Write(buf, binary.LittleEndian, uint32(len(c.content)))
	binary.Write(buf, binary.LittleEndian, uint32(children.Len()))
	buf.Write(c.content)
	buf.Write(children.Bytes())
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

func writeDict(buf *bytes.Buffer, pairs ...string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(pairs)/2))
	for _, s := range pairs {
		writeString(buf, s)
	}
}

func main() {
	var children []chunk

	// Model 0: 2x2x1 slab, two colors
	children = append(children, sizeChunk(2, 2, 1), xyziChunk([][4]byte{
		{0, 0, 0, 1}, {1, 0, 0, 1}, {0, 1, 0, 2}, {1, 1, 0, 2},
	}))

	// Model 1: single voxel
	children = append(children, sizeChunk(1, 1, 1), xyziChunk([][4]byte{{0, 0, 0, 3}}))

	// Scene graph: root transform -> group -> two transforms -> shapes
	children = append(children,
		transformChunk(0, 1, nil, nil),
		groupChunk(1, 2, 4),
		transformChunk(2, 3, []string{"_name", "slab"}, []string{"_t", "0 0 1"}),
		shapeChunk(3, 0),
		transformChunk(4, 5, []string{"_name", "dot", "_hidden", "1"}, []string{"_r", "20", "_t", "4 0 0"}),
		shapeChunk(5, 1),
	)

	// Palette: red, green, blue in slots 1-3
	var rgba bytes.Buffer
	for i := 0; i < 256; i++ {
		c := uint32(0xff000000)
		switch i {
		case 0:
			c |= 0x0000ff
		case 1:
			c |= 0x00ff00
		case 2:
			c |= 0xff0000
		}
		binary.Write(&rgba, binary.LittleEndian, c)
	}
	children = append(children, chunk{id: "RGBA", content: rgba.Bytes()})

	var matl bytes.Buffer
	binary.Write(&matl, binary.LittleEndian, int32(1))
	writeDict(&matl, "_type", "_metal", "_weight", "0.5", "_rough", "0.1")
	children = append(children, chunk{id: "MATL", content: matl.Bytes()})

	var buf bytes.Buffer
	buf.WriteString("VOX ")
	binary.Write(&buf, binary.LittleEndian, int32(150))
	chunk{id: "MAIN", children: children}.write(&buf)

	if err := os.WriteFile("test.vox", buf.Bytes(), 0644); err != nil {
		panic(err)
	}
}

func sizeChunk(x, y, z uint32) chunk {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, [3]uint32{x, y, z})
	return chunk{id: "SIZE", content: buf.Bytes()}
}

func xyziChunk(voxels [][4]byte) chunk {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(len(voxels)))
	for _, v := range voxels {
		buf.Write(v[:])
	}
	return chunk{id: "XYZI", content: buf.Bytes()}
}

func transformChunk(id, child int32, attrs, frame []string) chunk {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, id)
	writeDict(&buf, attrs...)
	binary.Write(&buf, binary.LittleEndian, []int32{child, -1, 0, 1})
	writeDict(&buf, frame...)
	return chunk{id: "nTRN", content: buf.Bytes()}
}

func groupChunk(id int32, children ...int32) chunk {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, id)
	writeDict(&buf)
	binary.Write(&buf, binary.LittleEndian, uint32(len(children)))
	binary.Write(&buf, binary.LittleEndian, children)
	return chunk{id: "nGRP", content: buf.Bytes()}
}

func shapeChunk(id, model int32) chunk {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, id)
	writeDict(&buf)
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, model)
	writeDict(&buf)
	return chunk{id: "nSHP", content: buf.Bytes()}
}
