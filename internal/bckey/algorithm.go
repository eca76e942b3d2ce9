package bckey

import (
	"fmt"

	"github.com/akcrypt/akcrypt/internal/gftables"
	"github.com/akcrypt/akcrypt/internal/kuznyechik"
	"github.com/akcrypt/akcrypt/internal/magma"
	"github.com/akcrypt/akcrypt/internal/options"
	"github.com/akcrypt/akcrypt/internal/sm4"
)

// Schedule is an expanded key of one algorithm. Encrypt and Decrypt
// process exactly one block and allow dst and src to be the same slice.
type Schedule interface {
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
	// Wipe zeroes the round keys.
	Wipe()
}

// Algorithm describes a block cipher that a Key can be bound to.
type Algorithm interface {
	Name() string
	OID() string
	// BlockSize is 8 or 16.
	BlockSize() int
	KeySize() int
	// Resource is the number of blocks a freshly installed key may process.
	Resource() int64
	// Section is the default CTR-ACPKM section length in blocks.
	Section() int
	Schedule(key []byte) (Schedule, error)
}

// Kind names the built-in algorithms.
type Kind int

const (
	// Magma is the 64-bit GOST R 34.12-2015 cipher.
	Magma Kind = iota + 1
	// Kuznyechik is the 128-bit GOST R 34.12-2015 cipher.
	Kuznyechik
	// SM4 is the 128-bit GB/T 32907-2016 cipher.
	SM4
)

// Kinds lists the built-in algorithms.
func Kinds() []Kind {
	return []Kind{Magma, Kuznyechik, SM4}
}

func (k Kind) String() string {
	switch k {
	case Magma:
		return "magma"
	case Kuznyechik:
		return "kuznyechik"
	case SM4:
		return "sm4"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// AlgorithmFor returns the built-in algorithm of kind k.
func AlgorithmFor(k Kind) (Algorithm, error) {
	switch k {
	case Magma:
		return magmaAlgorithm{}, nil
	case Kuznyechik:
		return kuznyechikAlgorithm{}, nil
	case SM4:
		return sm4Algorithm{}, nil
	}
	return nil, fmt.Errorf("%w: unknown algorithm %v", ErrWrongBlockCipher, k)
}

type magmaAlgorithm struct{}

func (magmaAlgorithm) Name() string    { return "magma" }
func (magmaAlgorithm) OID() string     { return "1.2.643.7.1.1.5.1" }
func (magmaAlgorithm) BlockSize() int  { return magma.BlockSize }
func (magmaAlgorithm) KeySize() int    { return magma.KeySize }
func (magmaAlgorithm) Resource() int64 { return options.Get().MagmaResource }
func (magmaAlgorithm) Section() int    { return options.Get().MagmaSection }

func (magmaAlgorithm) Schedule(key []byte) (Schedule, error) {
	s, err := magma.NewSchedule(key)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type kuznyechikAlgorithm struct{}

func (kuznyechikAlgorithm) Name() string    { return "kuznyechik" }
func (kuznyechikAlgorithm) OID() string     { return "1.2.643.7.1.1.5.2" }
func (kuznyechikAlgorithm) BlockSize() int  { return kuznyechik.BlockSize }
func (kuznyechikAlgorithm) KeySize() int    { return kuznyechik.KeySize }
func (kuznyechikAlgorithm) Resource() int64 { return options.Get().KuznechikResource }
func (kuznyechikAlgorithm) Section() int    { return options.Get().KuznechikSection }

// Ready reports whether the round tables have been published.
func (kuznyechikAlgorithm) Ready() error {
	if gftables.Current() == nil {
		return kuznyechik.ErrNoTables
	}
	return nil
}

func (kuznyechikAlgorithm) Schedule(key []byte) (Schedule, error) {
	s, err := kuznyechik.NewSchedule(key)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type sm4Algorithm struct{}

func (sm4Algorithm) Name() string    { return "sm4" }
func (sm4Algorithm) OID() string     { return "1.2.156.10197.1.104" }
func (sm4Algorithm) BlockSize() int  { return sm4.BlockSize }
func (sm4Algorithm) KeySize() int    { return sm4.KeySize }
func (sm4Algorithm) Resource() int64 { return options.Get().SM4Resource }
func (sm4Algorithm) Section() int    { return options.Get().SM4Section }

func (sm4Algorithm) Schedule(key []byte) (Schedule, error) {
	s, err := sm4.NewSchedule(key)
	if err != nil {
		return nil, err
	}
	return s, nil
}
