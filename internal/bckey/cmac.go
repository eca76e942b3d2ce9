package bckey

// CMAC computes the message authentication code of GOST R 34.13-2015
// (OMAC1) over msg and returns its first tagLen bytes. msg may be empty.
func (k *Key) CMAC(msg []byte, tagLen int) ([]byte, error) {
	if err := k.ready(); err != nil {
		return nil, err
	}
	bs := k.alg.BlockSize()
	if tagLen == 0 {
		return nil, ErrZeroLength
	}
	if tagLen < 0 || tagLen > bs {
		return nil, ErrWrongBlockCipherFunction
	}
	blocks := (len(msg) + bs - 1) / bs
	if blocks == 0 {
		blocks = 1
	}
	// one more block for the subkeys
	total := int64(blocks + 1)
	if err := k.reserve(total); err != nil {
		return nil, err
	}

	var l, k1, k2, c, last [maxBlockSize]byte
	defer func() {
		l, k1, k2, last = [maxBlockSize]byte{}, [maxBlockSize]byte{}, [maxBlockSize]byte{}, [maxBlockSize]byte{}
	}()
	done := int64(0)
	if !k.spend() {
		return nil, &ResourceError{Done: done, Requested: total}
	}
	done++
	k.sched.Encrypt(l[:bs], l[:bs])
	shiftSubkey(k1[:bs], l[:bs])
	shiftSubkey(k2[:bs], k1[:bs])

	for len(msg) > bs {
		if !k.spend() {
			return nil, &ResourceError{Done: done, Requested: total}
		}
		done++
		xorBytes(c[:bs], c[:bs], msg[:bs])
		k.sched.Encrypt(c[:bs], c[:bs])
		msg = msg[bs:]
	}
	if len(msg) == bs {
		xorBytes(last[:bs], msg, k1[:bs])
	} else {
		padBlock(last[:bs], msg)
		xorBytes(last[:bs], last[:bs], k2[:bs])
	}
	if !k.spend() {
		return nil, &ResourceError{Done: done, Requested: total}
	}
	xorBytes(c[:bs], c[:bs], last[:bs])
	k.sched.Encrypt(c[:bs], c[:bs])

	tag := make([]byte, tagLen)
	copy(tag, c[:tagLen])
	return tag, nil
}

// shiftSubkey computes dst = src * x in GF(2^n), n being the block size
// in bits: a left shift, reduced by 0x87 for n=128 or 0x1b for n=64.
func shiftSubkey(dst, src []byte) {
	rb := byte(0x87)
	if len(src) == 8 {
		rb = 0x1b
	}
	last := len(src) - 1
	carry := src[0] >> 7
	for i := 0; i < last; i++ {
		dst[i] = src[i]<<1 | src[i+1]>>7
	}
	dst[last] = src[last]<<1 ^ rb&-carry
}
