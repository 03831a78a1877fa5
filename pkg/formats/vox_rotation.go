package formats

import "github.com/Faultbox/vox2obj/pkg/math"

// Rotation byte layout:
//
//	bit 0-1: column of the non-zero entry in row 0
//	bit 2-3: column of the non-zero entry in row 1
//	bit 4:   sign of row 0 (1 = negative)
//	bit 5:   sign of row 1
//	bit 6:   sign of row 2
//
// Row 2 takes whichever column rows 0 and 1 left unused.
const (
	voxRotIndexMask = 0x3
	voxRotSign0     = 1 << 4
	voxRotSign1     = 1 << 5
	voxRotSign2     = 1 << 6
)

// DecodeVOXRotation expands a packed rotation byte into a signed
// permutation matrix. It returns false when both rows claim the same
// column or a column index is out of range.
func DecodeVOXRotation(b byte) (math.Mat3, bool) {
	index0 := int(b & voxRotIndexMask)
	index1 := int((b >> 2) & voxRotIndexMask)
	if index0 > 2 || index1 > 2 || index0 == index1 {
		return math.Mat3{}, false
	}
	index2 := 3 - index0 - index1

	var m math.Mat3
	m[index0] = voxRotSign(b, voxRotSign0)
	m[3+index1] = voxRotSign(b, voxRotSign1)
	m[6+index2] = voxRotSign(b, voxRotSign2)
	return m, true
}

// EncodeVOXRotation packs a signed permutation matrix into a rotation byte.
func EncodeVOXRotation(m math.Mat3) (byte, bool) {
	if !m.IsSignedPermutation() {
		return 0, false
	}

	var b byte
	signBits := [3]byte{voxRotSign0, voxRotSign1, voxRotSign2}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			val := m.At(row, col)
			if val == 0 {
				continue
			}
			switch row {
			case 0:
				b |= byte(col)
			case 1:
				b |= byte(col) << 2
			}
			if val < 0 {
				b |= signBits[row]
			}
		}
	}
	return b, true
}

func voxRotSign(b, bit byte) float32 {
	if b&bit != 0 {
		return -1
	}
	return 1
}
