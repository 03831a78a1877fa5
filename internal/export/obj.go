// Package export writes meshes produced by the mesher to disk formats.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/vox2obj/internal/mesher"
)

// OBJOptions controls optional parts of the OBJ output.
type OBJOptions struct {
	// Object names the mesh with an "o" line. Empty omits it.
	Object string
	// MaterialLib references an MTL file and adds "usemtl" lines.
	MaterialLib string
}

// materialName returns the group and material name of the n-th emitted buffer.
func materialName(n int) string {
	return fmt.Sprintf("material_%d", n)
}

// WriteOBJ writes g as Wavefront OBJ text. All vertices are written first,
// then all normals, then one group of faces per material. Buffers are
// emitted in ascending color index order and face indices are 1-based,
// offset by the vertices of every buffer written before.
func WriteOBJ(w io.Writer, g mesher.Group, opts OBJOptions) error {
	bw := bufio.NewWriter(w)
	materials := g.Materials()
	hasNormals := g.HasNormals()

	if opts.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", opts.MaterialLib)
	}
	if opts.Object != "" {
		fmt.Fprintf(bw, "o %s\n", opts.Object)
	}

	for _, mat := range materials {
		for _, v := range g[mat].Vertices {
			fmt.Fprintf(bw, "v %f %f %f\n", v.X, v.Y, v.Z)
		}
	}
	if hasNormals {
		for _, mat := range materials {
			for _, n := range g[mat].Normals {
				fmt.Fprintf(bw, "vn %f %f %f\n", n.X, n.Y, n.Z)
			}
		}
	}

	fmt.Fprintf(bw, "# %d faces\n", g.FaceCount())

	offset := 1
	for i, mat := range materials {
		buf := g[mat]
		name := materialName(i)
		fmt.Fprintf(bw, "g %s\n", name)
		if opts.MaterialLib != "" {
			fmt.Fprintf(bw, "usemtl %s\n", name)
		}

		for _, f := range buf.Faces {
			a, b, c, d := offset+f[0], offset+f[1], offset+f[2], offset+f[3]
			if hasNormals {
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d %d//%d\n", a, a, b, b, c, c, d, d)
			} else {
				fmt.Fprintf(bw, "f %d %d %d %d\n", a, b, c, d)
			}
		}
		offset += len(buf.Vertices)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}
