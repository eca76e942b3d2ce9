package gftables

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
)

// State is a cipher state packed into two words. Byte i of the state is
// byte i%8 (little-endian) of word i/8.
type State [2]uint64

// Load packs the first Dim bytes of b.
func Load(b []byte) State {
	_ = b[Dim-1]
	return State{binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])}
}

// Store writes s into the first Dim bytes of b.
func (s State) Store(b []byte) {
	_ = b[Dim-1]
	binary.LittleEndian.PutUint64(b[0:8], s[0])
	binary.LittleEndian.PutUint64(b[8:16], s[1])
}

// Bytes returns the state as a byte array.
func (s State) Bytes() (b [Dim]byte) {
	s.Store(b[:])
	return b
}

// Xor returns s ^ o.
func (s State) Xor(o State) State {
	return State{s[0] ^ o[0], s[1] ^ o[1]}
}

// lookup holds, for every byte position and byte value, the state obtained
// by running a single non-zero byte through a round.
type lookup [Dim][256]State

func (t *lookup) apply(s State) (r State) {
	for i := 0; i < 8; i++ {
		e := &t[i][byte(s[0]>>(8*i))]
		f := &t[i+8][byte(s[1]>>(8*i))]
		r[0] ^= e[0] ^ f[0]
		r[1] ^= e[1] ^ f[1]
	}
	return r
}

// Variant selects the byte order the tables operate in.
type Variant int

const (
	// Standard stores states in the order the cipher standard prints them.
	Standard Variant = iota
	// Reversed stores states with byte 0 and byte 15 swapped, byte 1 and
	// byte 14 swapped, and so on.
	Reversed
)

func (v Variant) String() string {
	switch v {
	case Standard:
		return "standard"
	case Reversed:
		return "reversed"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Tables is an immutable set of round tables. It is safe for concurrent use.
type Tables struct {
	Variant Variant
	// L is the linear transformation, LInv its inverse.
	L, LInv Matrix
	// Pi is the substitution, PiInv its inverse.
	Pi, PiInv Sbox

	// enc[i][x] = L(Pi[x] at position i)
	enc lookup
	// dec[i][x] = LInv(PiInv[x] at position i)
	dec lookup
	// lin[i][x] = L(x at position i)
	lin lookup
	// linInv[i][x] = LInv(x at position i)
	linInv lookup
}

// InitRoundTables inverts m and pi and fills the four lookup tables.
func InitRoundTables(m Matrix, pi Sbox) (*Tables, error) {
	mInv, err := InvertMatrix(m)
	if err != nil {
		return nil, err
	}
	piInv, err := InvertPermutation(pi)
	if err != nil {
		return nil, err
	}
	t := &Tables{L: m, LInv: mInv, Pi: pi, PiInv: piInv}
	for i := 0; i < Dim; i++ {
		for x := 0; x < 256; x++ {
			t.enc[i][x] = column(&m, i, pi[x])
			t.dec[i][x] = column(&mInv, i, piInv[x])
			t.lin[i][x] = column(&m, i, byte(x))
			t.linInv[i][x] = column(&mInv, i, byte(x))
		}
	}
	return t, nil
}

// column returns column c of m scaled by x.
func column(m *Matrix, c int, x byte) State {
	var b [Dim]byte
	for r := 0; r < Dim; r++ {
		b[r] = Mul(m[r][c], x)
	}
	return Load(b[:])
}

// LS applies the substitution and then the linear transformation.
func (t *Tables) LS(s State) State {
	return t.enc.apply(s)
}

// InvLS applies the inverse substitution and then the inverse linear
// transformation. Note that this is not the inverse of LS.
func (t *Tables) InvLS(s State) State {
	return t.dec.apply(s)
}

// Linear applies the linear transformation.
func (t *Tables) Linear(s State) State {
	return t.lin.apply(s)
}

// LinearInv applies the inverse linear transformation.
func (t *Tables) LinearInv(s State) State {
	return t.linInv.apply(s)
}

// Sub applies the substitution to every byte.
func (t *Tables) Sub(s State) State {
	return substitute(&t.Pi, s)
}

// SubInv applies the inverse substitution to every byte.
func (t *Tables) SubInv(s State) State {
	return substitute(&t.PiInv, s)
}

func substitute(p *Sbox, s State) State {
	b := s.Bytes()
	for i := range b {
		b[i] = p[b[i]]
	}
	return Load(b[:])
}

// Check verifies that the inverse halves of t undo the forward halves.
func (t *Tables) Check() error {
	if p := t.L.Mul(&t.LInv); p != Identity() {
		return fmt.Errorf("%w: L * LInv is not the identity", ErrNotInvertible)
	}
	for x := 0; x < 256; x++ {
		if t.PiInv[t.Pi[x]] != byte(x) {
			return fmt.Errorf("%w: PiInv(Pi(%#02x)) != %#02x", ErrNotAPermutation, x, x)
		}
	}
	// Walk a few states through the round tables and back.
	s := State{0x0706050403020100, 0x0f0e0d0c0b0a0908}
	for i := 0; i < 32; i++ {
		if back := t.SubInv(t.LinearInv(t.LS(s))); back != s {
			return fmt.Errorf("gftables: round tables disagree for state %x", s.Bytes())
		}
		if back := t.Linear(t.LinearInv(s)); back != s {
			return fmt.Errorf("gftables: linear tables disagree for state %x", s.Bytes())
		}
		s = t.LS(s)
	}
	return nil
}

var current atomic.Value

// InitDefault builds the tables for the standard linear register and
// substitution in variant v and publishes them as the process-wide
// tables, replacing any previous set. Schedules built earlier keep the
// tables they were built with.
func InitDefault(v Variant) error {
	t, err := Default(v)
	if err != nil {
		return err
	}
	current.Store(t)
	return nil
}

// Default builds the standard tables in variant v without publishing them.
func Default(v Variant) (*Tables, error) {
	m, err := GenerateMatrix(StandardTaps[:])
	if err != nil {
		return nil, err
	}
	pi := StandardPi
	if v == Reversed {
		m = ReverseMatrix(m)
	}
	t, err := InitRoundTables(m, pi)
	if err != nil {
		return nil, err
	}
	t.Variant = v
	if err := t.Check(); err != nil {
		return nil, err
	}
	return t, nil
}

// Current returns the published tables, or nil before the first
// successful InitDefault.
func Current() *Tables {
	t, _ := current.Load().(*Tables)
	return t
}
