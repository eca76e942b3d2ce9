package bckey

import (
	"fmt"

	"github.com/rfjakob/eme"
)

// EMEMaxBlocks is the longest input EME accepts, in 16-byte blocks.
const EMEMaxBlocks = 128

// EncryptEME enciphers data as one wide block with the EME mode of Halevi
// and Rogaway, under a 16-byte tweak. Only 16-byte block ciphers are
// supported. The result is a new slice of the same length.
func (k *Key) EncryptEME(tweak, data []byte) ([]byte, error) {
	return k.eme(tweak, data, true)
}

// DecryptEME is the inverse of EncryptEME.
func (k *Key) DecryptEME(tweak, data []byte) ([]byte, error) {
	return k.eme(tweak, data, false)
}

func (k *Key) eme(tweak, data []byte, encrypt bool) ([]byte, error) {
	if err := k.ready(); err != nil {
		return nil, err
	}
	if k.alg.BlockSize() != 16 {
		return nil, fmt.Errorf("%w: EME needs a 16-byte block cipher, %s has %d",
			ErrWrongBlockCipherFunction, k.alg.Name(), k.alg.BlockSize())
	}
	if len(tweak) != 16 {
		return nil, ErrWrongIVLength
	}
	if len(data) == 0 {
		return nil, ErrZeroLength
	}
	m := len(data) / 16
	if len(data)%16 != 0 || m > EMEMaxBlocks {
		return nil, ErrWrongBlockCipherLength
	}
	// Two passes over the data plus the L and M blocks.
	if err := k.reserve(int64(2*m + 2)); err != nil {
		return nil, err
	}
	c := eme.New(blockView{k})
	if encrypt {
		return c.Encrypt(tweak, data), nil
	}
	return c.Decrypt(tweak, data), nil
}
