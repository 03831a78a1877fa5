package formats

var voxPaletteSteps = [6]uint32{0xff, 0xcc, 0x99, 0x66, 0x33, 0x00}

var voxPaletteRamp = [10]uint32{0xee, 0xdd, 0xbb, 0xaa, 0x88, 0x77, 0x55, 0x44, 0x22, 0x11}

// DefaultVOXPalette returns the palette MagicaVoxel uses for files without
// an RGBA chunk: a 6x6x6 color cube without black, followed by red, green,
// blue and gray ramps.
func DefaultVOXPalette() VOXPalette {
	var p VOXPalette
	slot := 1
	for _, r := range voxPaletteSteps {
		for _, g := range voxPaletteSteps {
			for _, b := range voxPaletteSteps {
				if r == 0 && g == 0 && b == 0 {
					continue
				}
				p[slot] = 0xff000000 | b<<16 | g<<8 | r
				slot++
			}
		}
	}
	for _, shift := range []uint32{0, 8, 16} {
		for _, v := range voxPaletteRamp {
			p[slot] = 0xff000000 | v<<shift
			slot++
		}
	}
	for _, v := range voxPaletteRamp {
		p[slot] = 0xff000000 | v<<16 | v<<8 | v
		slot++
	}
	return p
}
