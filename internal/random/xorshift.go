package random

import (
	"encoding/binary"
	"errors"
)

// ErrEmptySeed is returned when a deterministic generator gets no seed.
var ErrEmptySeed = errors.New("random: empty seed")

// Xorshift64 is a fast deterministic xorshift64* generator. Its output is
// predictable from the seed; use it for reproducible test data only.
type Xorshift64 struct {
	val uint64
	res uint64
}

// NewXorshift64 returns a generator seeded with seed.
func NewXorshift64(seed []byte) (*Xorshift64, error) {
	x := &Xorshift64{}
	if err := x.Seed(seed); err != nil {
		return nil, err
	}
	return x, nil
}

// Seed resets the generator state from seed.
func (x *Xorshift64) Seed(seed []byte) error {
	if len(seed) == 0 {
		return ErrEmptySeed
	}
	x.val = uint64(seed[0])
	if x.val == 0 {
		x.val = 1
	}
	for _, b := range seed {
		x.next()
		x.val += uint64(b)
		if x.val == 0 {
			x.val = 0x42134ea1
		}
	}
	x.next()
	return nil
}

func (x *Xorshift64) next() {
	v := x.val
	v ^= v >> 12
	v ^= v << 25
	v ^= v >> 27
	x.val = v
	x.res = v * 0x2545f4914f6cdd1d
}

// Fill writes the next len(b) output bytes. It never fails.
func (x *Xorshift64) Fill(b []byte) error {
	for len(b) >= 8 {
		binary.LittleEndian.PutUint64(b, x.res)
		x.next()
		b = b[8:]
	}
	if len(b) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], x.res)
		copy(b, tail[:])
		x.next()
	}
	return nil
}
