// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

// M3 is a column-major 3x3 matrix of float64.
type M3 [3]V3

// Mul sets v to contain m ⋅ w.
func (v *V3) Mul(m *M3, w *V3) {
	var u V3
	for i := range m {
		for j := range u {
			u[j] += m[i][j] * w[i]
		}
	}
	*v = u
}

// ZUpToYUp is the basis change from a right-handed Z-up
// space to a right-handed Y-up one: (x, y, z) ↦ (x, z, -y).
var ZUpToYUp = M3{
	{1, 0, 0},
	{0, 0, -1},
	{0, 1, 0},
}
