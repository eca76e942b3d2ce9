package bckey

// EncryptECB encrypts src into dst block by block. len(src) must be a
// multiple of the block size; dst and src may be the same slice.
func (k *Key) EncryptECB(dst, src []byte) error {
	return k.ecb(dst, src, true)
}

// DecryptECB decrypts src into dst block by block.
func (k *Key) DecryptECB(dst, src []byte) error {
	return k.ecb(dst, src, false)
}

func (k *Key) ecb(dst, src []byte, encrypt bool) error {
	if err := k.ready(); err != nil {
		return err
	}
	bs := k.alg.BlockSize()
	if len(src)%bs != 0 {
		return ErrWrongBlockCipherLength
	}
	checkBuffers(dst, src)
	total := int64(len(src) / bs)
	if err := k.reserve(total); err != nil {
		return err
	}
	crypt := k.sched.Encrypt
	if !encrypt {
		crypt = k.sched.Decrypt
	}
	for done := int64(0); len(src) > 0; done++ {
		if !k.spend() {
			return &ResourceError{Done: done, Requested: total}
		}
		crypt(dst[:bs], src[:bs])
		dst, src = dst[bs:], src[bs:]
	}
	return nil
}
