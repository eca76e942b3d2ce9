package bckey

import (
	"errors"
	"fmt"
)

// Pad appends padding procedure 2 of GOST R 34.13-2015 to a copy of orig:
// one 0x80 byte, then zero bytes up to the next multiple of blockSize.
// Aligned input gets a whole block of padding.
func Pad(orig []byte, blockSize int) []byte {
	if blockSize <= 0 {
		panic("bckey: Pad with non-positive block size")
	}
	padLen := blockSize - len(orig)%blockSize
	padded := make([]byte, len(orig)+padLen)
	copy(padded, orig)
	padded[len(orig)] = 0x80
	return padded
}

// Unpad removes the padding added by Pad.
func Unpad(padded []byte, blockSize int) ([]byte, error) {
	oldLen := len(padded)
	if oldLen == 0 {
		return nil, ErrZeroLength
	}
	if blockSize <= 0 || oldLen%blockSize != 0 {
		return nil, ErrWrongBlockCipherLength
	}
	// The padding sits in the last block and ends in zero bytes.
	for i := oldLen - 1; i >= oldLen-blockSize; i-- {
		switch padded[i] {
		case 0:
			continue
		case 0x80:
			return padded[:i], nil
		default:
			return nil, fmt.Errorf("%w: padding byte at i=%d is %#02x", ErrInvalidValue, i, padded[i])
		}
	}
	return nil, errors.New("bckey: no padding marker in last block")
}

// padBlock writes partial, 0x80 and zero bytes to dst, which is one block.
// partial is shorter than a block.
func padBlock(dst, partial []byte) {
	n := copy(dst, partial)
	dst[n] = 0x80
	for i := n + 1; i < len(dst); i++ {
		dst[i] = 0
	}
}
