// Package magma implements the 64-bit block cipher of GOST R 34.12-2015
// with the substitution tables fixed by that standard.
package magma

import (
	"encoding/binary"
	"math/bits"
	"strconv"
)

const (
	// BlockSize is the cipher block size in bytes.
	BlockSize = 8
	// KeySize is the key size in bytes.
	KeySize = 32
)

// pi[j] substitutes nibble j of the round word, counting from the least
// significant nibble.
var pi = [8][16]byte{
	{12, 4, 6, 2, 10, 5, 11, 9, 14, 8, 13, 7, 0, 3, 15, 1},
	{6, 8, 2, 3, 9, 10, 5, 12, 1, 14, 4, 7, 11, 13, 0, 15},
	{11, 3, 5, 8, 2, 15, 10, 13, 14, 1, 7, 4, 12, 9, 6, 0},
	{12, 8, 2, 1, 13, 4, 15, 6, 7, 0, 10, 5, 3, 14, 9, 11},
	{7, 15, 5, 10, 8, 1, 6, 13, 0, 9, 3, 14, 11, 4, 2, 12},
	{5, 13, 15, 6, 9, 2, 12, 10, 11, 7, 8, 1, 4, 3, 14, 0},
	{8, 14, 2, 5, 6, 9, 1, 12, 15, 4, 11, 0, 13, 10, 3, 7},
	{1, 7, 14, 13, 0, 5, 8, 3, 4, 15, 10, 6, 9, 12, 11, 2},
}

// sbox[j][b] is the substituted and rotated contribution of byte j.
var sbox [4][256]uint32

func init() {
	for j := 0; j < 4; j++ {
		for b := 0; b < 256; b++ {
			v := uint32(pi[2*j][b&0xf]) | uint32(pi[2*j+1][b>>4])<<4
			sbox[j][b] = bits.RotateLeft32(v<<(8*j), 11)
		}
	}
}

func g(k, a uint32) uint32 {
	x := a + k
	return sbox[0][byte(x)] ^ sbox[1][byte(x>>8)] ^ sbox[2][byte(x>>16)] ^ sbox[3][byte(x>>24)]
}

// KeySizeError is returned for keys that are not KeySize bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "magma: invalid key size " + strconv.Itoa(int(k))
}

// Schedule holds the eight 32-bit key words.
type Schedule struct {
	k     [8]uint32
	wiped bool
}

// NewSchedule splits key into its key words.
func NewSchedule(key []byte) (*Schedule, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	s := &Schedule{}
	for i := range s.k {
		s.k[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	return s, nil
}

// BlockSize returns BlockSize.
func (s *Schedule) BlockSize() int { return BlockSize }

// Encrypt encrypts one block. dst and src may overlap entirely.
func (s *Schedule) Encrypt(dst, src []byte) {
	s.check(dst, src)
	a1, a0 := binary.BigEndian.Uint32(src[0:4]), binary.BigEndian.Uint32(src[4:8])
	for i := 0; i < 24; i++ {
		a1, a0 = a0, g(s.k[i%8], a0)^a1
	}
	for i := 7; i > 0; i-- {
		a1, a0 = a0, g(s.k[i], a0)^a1
	}
	a1 ^= g(s.k[0], a0)
	binary.BigEndian.PutUint32(dst[0:4], a1)
	binary.BigEndian.PutUint32(dst[4:8], a0)
}

// Decrypt decrypts one block. dst and src may overlap entirely.
func (s *Schedule) Decrypt(dst, src []byte) {
	s.check(dst, src)
	a1, a0 := binary.BigEndian.Uint32(src[0:4]), binary.BigEndian.Uint32(src[4:8])
	for i := 0; i < 8; i++ {
		a1, a0 = a0, g(s.k[i], a0)^a1
	}
	for i := 0; i < 23; i++ {
		a1, a0 = a0, g(s.k[7-i%8], a0)^a1
	}
	a1 ^= g(s.k[0], a0)
	binary.BigEndian.PutUint32(dst[0:4], a1)
	binary.BigEndian.PutUint32(dst[4:8], a0)
}

// Wipe zeroes the key words. The schedule must not be used afterwards.
func (s *Schedule) Wipe() {
	s.k = [8]uint32{}
	s.wiped = true
}

func (s *Schedule) check(dst, src []byte) {
	if s.wiped {
		panic("magma: use of wiped schedule")
	}
	if len(src) < BlockSize {
		panic("magma: input not full block")
	}
	if len(dst) < BlockSize {
		panic("magma: output not full block")
	}
}
