// Package kuznyechik implements the 128-bit block cipher of
// GOST R 34.12-2015 on top of the round tables published by gftables.
package kuznyechik

import (
	"errors"
	"strconv"

	"github.com/akcrypt/akcrypt/internal/gftables"
)

const (
	// BlockSize is the cipher block size in bytes.
	BlockSize = 16
	// KeySize is the key size in bytes.
	KeySize = 32

	rounds = 10
)

// ErrNoTables is returned by NewSchedule before gftables.InitDefault has run.
var ErrNoTables = errors.New("kuznyechik: round tables are not initialized")

// KeySizeError is returned for keys that are not KeySize bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "kuznyechik: invalid key size " + strconv.Itoa(int(k))
}

// Schedule holds the expanded round keys. It keeps a reference to the
// tables it was expanded with, so republishing the tables does not affect
// existing schedules.
type Schedule struct {
	tab *gftables.Tables
	enc [rounds]gftables.State
	// dec[0] is the first round key, dec[i] is LInv of round key i+1.
	dec   [rounds]gftables.State
	wiped bool
}

// NewSchedule expands key using the currently published tables.
func NewSchedule(key []byte) (*Schedule, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	tab := gftables.Current()
	if tab == nil {
		return nil, ErrNoTables
	}
	s := &Schedule{tab: tab}
	s.expand(key)
	return s, nil
}

// Tables returns the tables the schedule was built with.
func (s *Schedule) Tables() *gftables.Tables {
	return s.tab
}

func (s *Schedule) expand(key []byte) {
	t := s.tab
	a, b := gftables.Load(key[:16]), gftables.Load(key[16:])
	if t.Variant == gftables.Reversed {
		a, b = b, a
	}
	s.enc[0], s.enc[1] = a, b
	for i := 0; i < 32; i++ {
		var v [gftables.Dim]byte
		if t.Variant == gftables.Reversed {
			v[0] = byte(i + 1)
		} else {
			v[gftables.Dim-1] = byte(i + 1)
		}
		c := t.Linear(gftables.Load(v[:]))
		a, b = t.LS(a.Xor(c)).Xor(b), a
		if i%8 == 7 {
			s.enc[2+i/8*2] = a
			s.enc[3+i/8*2] = b
		}
	}
	s.dec[0] = s.enc[0]
	for i := 1; i < rounds; i++ {
		s.dec[i] = t.LinearInv(s.enc[i])
	}
}

// BlockSize returns BlockSize.
func (s *Schedule) BlockSize() int { return BlockSize }

// Encrypt encrypts one block. dst and src may overlap entirely.
func (s *Schedule) Encrypt(dst, src []byte) {
	s.check(dst, src)
	t := s.tab
	x := gftables.Load(src)
	for i := 0; i < rounds-1; i++ {
		x = t.LS(x.Xor(s.enc[i]))
	}
	x.Xor(s.enc[rounds-1]).Store(dst)
}

// Decrypt decrypts one block. dst and src may overlap entirely.
func (s *Schedule) Decrypt(dst, src []byte) {
	s.check(dst, src)
	t := s.tab
	x := t.LinearInv(gftables.Load(src)).Xor(s.dec[rounds-1])
	for i := rounds - 2; i >= 1; i-- {
		x = t.InvLS(x).Xor(s.dec[i])
	}
	t.SubInv(x).Xor(s.dec[0]).Store(dst)
}

// Wipe zeroes the round keys. The schedule must not be used afterwards.
func (s *Schedule) Wipe() {
	for i := range s.enc {
		s.enc[i] = gftables.State{}
		s.dec[i] = gftables.State{}
	}
	s.wiped = true
}

func (s *Schedule) check(dst, src []byte) {
	if s.wiped {
		panic("kuznyechik: use of wiped schedule")
	}
	if len(src) < BlockSize {
		panic("kuznyechik: input not full block")
	}
	if len(dst) < BlockSize {
		panic("kuznyechik: output not full block")
	}
}
