package bckey

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/akcrypt/akcrypt/internal/random"
)

// secret stores key material XORed with a random mask, next to a BLAKE2b
// integrity code of the unmasked value.
type secret struct {
	data  []byte
	mask  []byte
	icode [blake2b.Size256]byte
}

func newSecret(key []byte) (*secret, error) {
	s := &secret{
		data: make([]byte, len(key)),
		mask: make([]byte, len(key)),
	}
	lockMemory(s.data)
	lockMemory(s.mask)
	if err := random.System.Fill(s.mask); err != nil {
		s.wipe()
		return nil, fmt.Errorf("%w: cannot mask key: %v", ErrKeyValueUndefined, err)
	}
	for i := range key {
		s.data[i] = key[i] ^ s.mask[i]
	}
	s.icode = blake2b.Sum256(key)
	return s, nil
}

// value returns an unmasked copy of the key. The caller must wipe it.
func (s *secret) value() ([]byte, error) {
	out := make([]byte, len(s.data))
	for i := range out {
		out[i] = s.data[i] ^ s.mask[i]
	}
	sum := blake2b.Sum256(out)
	if subtle.ConstantTimeCompare(sum[:], s.icode[:]) != 1 {
		wipe(out)
		return nil, ErrWrongKeyICode
	}
	return out, nil
}

func (s *secret) wipe() {
	wipe(s.data)
	wipe(s.mask)
	unlockMemory(s.data)
	unlockMemory(s.mask)
	s.icode = [blake2b.Size256]byte{}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
