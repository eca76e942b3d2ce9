// Package gftables builds the linear layer of the GOST R 34.12-2015 128-bit
// block cipher over GF(2^8) and the per-byte lookup tables that reduce a
// cipher round to sixteen table lookups.
package gftables

import (
	"errors"
)

const (
	// Dim is the width of the cipher state in bytes, and the dimension of
	// the linear transformation matrix.
	Dim = 16
	// poly is x^8 + x^7 + x^6 + x + 1 with the x^8 term dropped.
	poly = 0xc3
)

var (
	// ErrInvalidParameter is returned for inputs of the wrong size.
	ErrInvalidParameter = errors.New("gftables: invalid parameter")
	// ErrNotInvertible is returned when Gaussian elimination finds a zero pivot.
	ErrNotInvertible = errors.New("gftables: matrix is not invertible")
	// ErrNotAPermutation is returned when a substitution table maps two
	// inputs to the same output.
	ErrNotAPermutation = errors.New("gftables: substitution is not a permutation")
)

// inverses[a] is the multiplicative inverse of a; inverses[0] is 0.
var inverses [256]byte

func init() {
	for a := 1; a < 256; a++ {
		// a^254 == a^-1 in GF(2^8)
		r, x := byte(1), byte(a)
		for e := 254; e > 0; e >>= 1 {
			if e&1 != 0 {
				r = Mul(r, x)
			}
			x = Mul(x, x)
		}
		inverses[a] = r
	}
}

// Mul multiplies a and b in GF(2^8) modulo x^8 + x^7 + x^6 + x + 1.
func Mul(a, b byte) byte {
	var r byte
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= poly
		}
		b >>= 1
	}
	return r
}

// Inverse returns the multiplicative inverse of a. Inverse(0) is 0.
func Inverse(a byte) byte {
	return inverses[a]
}
