package gftables

// Matrix is a Dim x Dim matrix over GF(2^8). It acts on a state by
// out[r] = sum over c of m[r][c] * in[c].
type Matrix [Dim][Dim]byte

// Sbox is a byte substitution table.
type Sbox [256]byte

// Identity returns the identity matrix.
func Identity() Matrix {
	var m Matrix
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// Apply computes m * in.
func (m *Matrix) Apply(in [Dim]byte) (out [Dim]byte) {
	for r := 0; r < Dim; r++ {
		var acc byte
		for c := 0; c < Dim; c++ {
			acc ^= Mul(m[r][c], in[c])
		}
		out[r] = acc
	}
	return out
}

// Mul computes the product m * n.
func (m *Matrix) Mul(n *Matrix) (p Matrix) {
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			var acc byte
			for k := 0; k < Dim; k++ {
				acc ^= Mul(m[r][k], n[k][c])
			}
			p[r][c] = acc
		}
	}
	return p
}

// registerStep clocks the linear feedback register once: the new first
// byte is the tap-weighted sum of all bytes, the rest shift up by one.
func registerStep(s *[Dim]byte, taps *[Dim]byte) {
	var t byte
	for i := 0; i < Dim; i++ {
		t ^= Mul(s[i], taps[i])
	}
	copy(s[1:], s[:Dim-1])
	s[0] = t
}

// GenerateMatrix returns the matrix equivalent of clocking the feedback
// register with the given taps Dim times. Column c is the register output
// for the unit vector with a one in position c.
func GenerateMatrix(taps []byte) (Matrix, error) {
	var m Matrix
	if len(taps) != Dim {
		return m, ErrInvalidParameter
	}
	var t [Dim]byte
	copy(t[:], taps)
	for c := 0; c < Dim; c++ {
		var s [Dim]byte
		s[c] = 1
		for i := 0; i < Dim; i++ {
			registerStep(&s, &t)
		}
		for r := 0; r < Dim; r++ {
			m[r][c] = s[r]
		}
	}
	return m, nil
}

// InvertMatrix returns m^-1 using Gauss-Jordan elimination.
func InvertMatrix(m Matrix) (Matrix, error) {
	a := m
	inv := Identity()
	for col := 0; col < Dim; col++ {
		pivot := -1
		for row := col; row < Dim; row++ {
			if a[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return Matrix{}, ErrNotInvertible
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		f := Inverse(a[col][col])
		for j := 0; j < Dim; j++ {
			a[col][j] = Mul(a[col][j], f)
			inv[col][j] = Mul(inv[col][j], f)
		}
		for row := 0; row < Dim; row++ {
			g := a[row][col]
			if row == col || g == 0 {
				continue
			}
			for j := 0; j < Dim; j++ {
				a[row][j] ^= Mul(g, a[col][j])
				inv[row][j] ^= Mul(g, inv[col][j])
			}
		}
	}
	return inv, nil
}

// InvertPermutation returns the inverse of the substitution s.
func InvertPermutation(s Sbox) (Sbox, error) {
	var inv Sbox
	var seen [256]bool
	for i, v := range s {
		if seen[v] {
			return Sbox{}, ErrNotAPermutation
		}
		seen[v] = true
		inv[v] = byte(i)
	}
	return inv, nil
}

// ReverseMatrix returns the matrix acting on states stored in reversed
// byte order: out[r][c] = m[Dim-1-r][Dim-1-c].
func ReverseMatrix(m Matrix) (out Matrix) {
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			out[r][c] = m[Dim-1-r][Dim-1-c]
		}
	}
	return out
}
