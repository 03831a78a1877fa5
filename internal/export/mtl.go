package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/vox2obj/internal/mesher"
	"github.com/Faultbox/vox2obj/pkg/formats"
)

// WriteMTL writes one diffuse material per buffer of g, named to match the
// groups written by WriteOBJ. Colors come from the palette slot of each
// buffer's color index.
func WriteMTL(w io.Writer, g mesher.Group, palette *formats.VOXPalette) error {
	bw := bufio.NewWriter(w)

	for i, mat := range g.Materials() {
		rgba := palette.RGBA(mat)
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "# color index %d\n", mat)
		fmt.Fprintf(bw, "newmtl %s\n", materialName(i))
		fmt.Fprintf(bw, "Kd %.6f %.6f %.6f\n", unorm(rgba[0]), unorm(rgba[1]), unorm(rgba[2]))
		if rgba[3] < 255 {
			fmt.Fprintf(bw, "d %.6f\n", unorm(rgba[3]))
		}
		bw.WriteString("illum 1\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing MTL: %w", err)
	}
	return nil
}

func unorm(c uint8) float32 {
	return float32(c) / 255
}
