package bckey

// EncryptCBC encrypts src into dst in CBC mode as defined by
// GOST R 34.13-2015: iv holds z >= 1 blocks that act as a shift register,
// so block i is chained with the ciphertext of block i-z. With a nil iv
// the call continues the register left by the previous CBC call.
func (k *Key) EncryptCBC(dst, src, iv []byte) error {
	return k.cbc(dst, src, iv, true)
}

// DecryptCBC is the inverse of EncryptCBC.
func (k *Key) DecryptCBC(dst, src, iv []byte) error {
	return k.cbc(dst, src, iv, false)
}

func (k *Key) cbc(dst, src, iv []byte, encrypt bool) error {
	if err := k.ready(); err != nil {
		return err
	}
	bs := k.alg.BlockSize()
	if len(src)%bs != 0 {
		return ErrWrongBlockCipherLength
	}
	if iv == nil {
		if !k.iv.canContinue(ivCBC) {
			return ErrWrongIVLength
		}
	} else if len(iv) == 0 || len(iv)%bs != 0 || len(iv) > MaxIVLen {
		return ErrWrongIVLength
	}
	checkBuffers(dst, src)
	total := int64(len(src) / bs)
	if err := k.reserve(total); err != nil {
		return err
	}
	if iv != nil {
		k.iv.set(iv, ivCBC)
	}

	reg := k.iv.bytes()
	var tmp [maxBlockSize]byte
	for done := int64(0); len(src) > 0; done++ {
		if !k.spend() {
			return &ResourceError{Done: done, Requested: total}
		}
		if encrypt {
			xorBytes(tmp[:bs], src[:bs], reg[:bs])
			k.sched.Encrypt(dst[:bs], tmp[:bs])
			k.iv.push(dst[:bs])
		} else {
			// src may alias dst
			copy(tmp[:bs], src[:bs])
			k.sched.Decrypt(dst[:bs], src[:bs])
			xorBytes(dst[:bs], dst[:bs], reg[:bs])
			k.iv.push(tmp[:bs])
		}
		dst, src = dst[bs:], src[bs:]
	}
	return nil
}
