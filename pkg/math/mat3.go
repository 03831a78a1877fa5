package math

// Mat3 is a 3x3 matrix in row-major order.
// Layout: [m0 m1 m2]
//
//	[m3 m4 m5]
//	[m6 m7 m8]
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Mat3) At(row, col int) float32 {
	return m[row*3+col]
}

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = m[row*3]*other[col] + m[row*3+1]*other[3+col] + m[row*3+2]*other[6+col]
		}
	}
	return r
}

// MulVec returns m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Determinant returns det(m).
func (m Mat3) Determinant() float32 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// IsSignedPermutation reports whether every row and column holds exactly
// one entry of +1 or -1 and zeros elsewhere.
func (m Mat3) IsSignedPermutation() bool {
	var colUsed [3]bool
	for row := 0; row < 3; row++ {
		nonZero := 0
		for col := 0; col < 3; col++ {
			switch m.At(row, col) {
			case 0:
			case 1, -1:
				if colUsed[col] {
					return false
				}
				colUsed[col] = true
				nonZero++
			default:
				return false
			}
		}
		if nonZero != 1 {
			return false
		}
	}
	return true
}
