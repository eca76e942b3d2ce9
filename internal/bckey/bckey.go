// Package bckey implements a block cipher key: secret key material bound to
// one block cipher, with a resource counter that limits how many blocks the
// key may process, and the modes of operation of GOST R 34.13-2015 (ECB,
// CBC, CTR, CTR-ACPKM and CMAC) plus EME on top of it.
//
// A Key is not safe for concurrent use. Keys built from the same key
// material are independent of each other.
package bckey

import (
	"fmt"
)

// Key is a block cipher key. The zero value is unusable; get one from New.
//
// Once bound, alg stays fixed until Destroy. The schedule and the key
// material are installed and removed together, so a Key either can
// encrypt, decrypt and wipe, or can do none of these.
type Key struct {
	alg    Algorithm
	sched  Schedule
	secret *secret
	iv     ivState
	// blocks the key may still process
	resource int64
	// blocks processed in the current CTR-ACPKM section
	section   int
	destroyed bool
}

// New returns an unbound key.
func New() *Key {
	return &Key{}
}

// NewKey returns a key bound to the built-in algorithm k.
func NewKey(k Kind) (*Key, error) {
	key := New()
	if err := key.Bind(k); err != nil {
		return nil, err
	}
	return key, nil
}

// Bind binds an unbound key to the built-in algorithm k.
func (k *Key) Bind(kind Kind) error {
	alg, err := AlgorithmFor(kind)
	if err != nil {
		return err
	}
	return k.BindAlgorithm(alg)
}

// Resolver maps algorithm names and object identifiers to kinds.
type Resolver interface {
	Resolve(nameOrOID string) (Kind, error)
}

// BindByName binds an unbound key to the algorithm r resolves nameOrOID to.
func (k *Key) BindByName(r Resolver, nameOrOID string) error {
	if r == nil {
		return ErrNullArgument
	}
	kind, err := r.Resolve(nameOrOID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrongBlockCipher, err)
	}
	return k.Bind(kind)
}

// BindAlgorithm binds an unbound key to alg. The key has no key material
// until SetKey or SetKeyRandom.
func (k *Key) BindAlgorithm(alg Algorithm) error {
	if k == nil || alg == nil {
		return ErrNullArgument
	}
	if k.destroyed {
		return fmt.Errorf("%w: key has been destroyed", ErrWrongBlockCipher)
	}
	if k.alg != nil {
		return fmt.Errorf("%w: key is already bound to %s", ErrWrongBlockCipher, k.alg.Name())
	}
	if bs := alg.BlockSize(); bs != 8 && bs != 16 {
		return fmt.Errorf("%w: %s has unsupported block size %d", ErrWrongBlockCipher, alg.Name(), bs)
	}
	if ks := alg.KeySize(); ks <= 0 || ks%alg.BlockSize() != 0 {
		return fmt.Errorf("%w: %s has unsupported key size %d", ErrWrongBlockCipher, alg.Name(), ks)
	}
	if r, ok := alg.(interface{ Ready() error }); ok {
		if err := r.Ready(); err != nil {
			return fmt.Errorf("%w: %v", ErrWrongBlockCipher, err)
		}
	}
	k.alg = alg
	return nil
}

// Algorithm returns the bound algorithm, or nil.
func (k *Key) Algorithm() Algorithm {
	return k.alg
}

// BlockSize returns the block size of the bound algorithm, or 0.
func (k *Key) BlockSize() int {
	if k.alg == nil {
		return 0
	}
	return k.alg.BlockSize()
}

// Resource returns the number of blocks the key may still process.
func (k *Key) Resource() int64 {
	return k.resource
}

// LimitResource lowers the remaining resource to n. It never raises it.
func (k *Key) LimitResource(n int64) {
	if n < 0 {
		n = 0
	}
	if n < k.resource {
		k.resource = n
	}
}

// IVLen returns the length of the stored chaining state: the CBC register
// or the CTR counter. It is 0 when there is nothing to continue from.
func (k *Key) IVLen() int {
	return k.iv.n
}

// SectionLen returns the default CTR-ACPKM section length of the bound
// algorithm, or 0.
func (k *Key) SectionLen() int {
	if k.alg == nil {
		return 0
	}
	return k.alg.Section()
}

// ready checks that k is bound and has key material.
func (k *Key) ready() error {
	if k == nil {
		return ErrNullArgument
	}
	if k.alg == nil || k.destroyed {
		return ErrWrongBlockCipher
	}
	if k.sched == nil {
		return ErrKeyValueUndefined
	}
	return nil
}

// reserve fails unless n more blocks fit into the resource.
func (k *Key) reserve(n int64) error {
	if n > k.resource {
		return &ResourceError{Done: 0, Requested: n}
	}
	return nil
}

// spend takes one block from the resource.
func (k *Key) spend() bool {
	if k.resource <= 0 {
		return false
	}
	k.resource--
	return true
}

// checkBuffers panics if dst cannot hold the output for src, the way
// crypto/cipher modes do.
func checkBuffers(dst, src []byte) {
	if len(dst) < len(src) {
		panic("bckey: output smaller than input")
	}
}

const maxBlockSize = 16

func xorBytes(dst, a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}
