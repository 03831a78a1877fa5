package mesher

import (
	"encoding/binary"
	gomath "math"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/vox2obj/pkg/math"
)

// Digest returns an xxhash of the group's buffers in material order.
// Identical meshes always produce identical digests.
func (g Group) Digest() uint64 {
	h := xxhash.New()
	var scratch []byte

	writeVecs := func(vs []math.Vec3) {
		scratch = binary.LittleEndian.AppendUint32(scratch[:0], uint32(len(vs)))
		for _, v := range vs {
			scratch = binary.LittleEndian.AppendUint32(scratch, gomath.Float32bits(v.X))
			scratch = binary.LittleEndian.AppendUint32(scratch, gomath.Float32bits(v.Y))
			scratch = binary.LittleEndian.AppendUint32(scratch, gomath.Float32bits(v.Z))
		}
		h.Write(scratch)
	}

	for _, mat := range g.Materials() {
		buf := g[mat]
		h.Write([]byte{mat})
		writeVecs(buf.Vertices)
		writeVecs(buf.Normals)

		scratch = binary.LittleEndian.AppendUint32(scratch[:0], uint32(len(buf.Faces)))
		for _, f := range buf.Faces {
			for _, idx := range f {
				scratch = binary.LittleEndian.AppendUint32(scratch, uint32(idx))
			}
		}
		h.Write(scratch)
	}

	return h.Sum64()
}
