package bckey

import "errors"

// CTR XORs src with the key stream of the counter mode of
// GOST R 34.13-2015 and writes the result to dst; encryption and
// decryption are the same operation. The initial counter is iv followed by
// zero bytes when iv is half a block long, or iv itself when it is a whole
// block. The counter is incremented as one big-endian integer.
//
// With a nil iv the call continues the counter of the previous call. This
// is only possible if the previous call ended on a block boundary; a
// trailing partial block ends the stream.
func (k *Key) CTR(dst, src, iv []byte) error {
	if err := k.ready(); err != nil {
		return err
	}
	bs := k.alg.BlockSize()
	if err := k.checkCounterIV(iv, bs, ivCTR); err != nil {
		return err
	}
	checkBuffers(dst, src)
	total := int64((len(src) + bs - 1) / bs)
	if err := k.reserve(total); err != nil {
		return err
	}
	k.loadCounter(iv, bs, ivCTR)
	return k.xorKeyStream(dst, src, 0, total)
}

// CTRACPKM is CTR with key meshing (R 1323565.1.017-2018): after every
// section blocks of key stream the key is replaced by NextACPKMKey. The
// position inside the section carries over to calls with a nil iv; such a
// call cannot continue a plain CTR stream. The key object ends up holding
// the last derived key.
func (k *Key) CTRACPKM(dst, src []byte, section int, iv []byte) error {
	if err := k.ready(); err != nil {
		return err
	}
	if section <= 0 {
		return ErrInvalidValue
	}
	bs, ks := k.alg.BlockSize(), k.alg.KeySize()
	if err := k.checkCounterIV(iv, bs, ivACPKM); err != nil {
		return err
	}
	checkBuffers(dst, src)
	blocks := int64((len(src) + bs - 1) / bs)
	pos := k.section
	if iv != nil {
		pos = 0
	}
	total := blocks + rekeys(int64(pos), blocks, int64(section))*int64(ks/bs)
	if err := k.reserve(total); err != nil {
		return err
	}
	k.loadCounter(iv, bs, ivACPKM)
	return k.xorKeyStream(dst, src, section, blocks)
}

// rekeys counts the section boundaries crossed while producing blocks
// key stream blocks starting at position pos.
func rekeys(pos, blocks, section int64) int64 {
	if blocks == 0 {
		return 0
	}
	first := pos
	if first < 1 {
		first = 1
	}
	return (pos+blocks-1)/section - (first-1)/section
}

func (k *Key) checkCounterIV(iv []byte, bs int, mode ivMode) error {
	if iv == nil {
		if !k.iv.canContinue(mode) {
			return ErrWrongIVLength
		}
		return nil
	}
	if len(iv) != bs/2 && len(iv) != bs {
		return ErrWrongIVLength
	}
	return nil
}

func (k *Key) loadCounter(iv []byte, bs int, mode ivMode) {
	if iv == nil {
		return
	}
	var ctr [maxBlockSize]byte
	copy(ctr[:], iv)
	k.iv.set(ctr[:bs], mode)
	k.section = 0
}

// xorKeyStream runs the counter over src, which spans blocks blocks. A
// positive section enables key meshing.
func (k *Key) xorKeyStream(dst, src []byte, section int, blocks int64) error {
	bs := k.alg.BlockSize()
	var ks [maxBlockSize]byte
	for done := int64(0); len(src) > 0; done++ {
		if section > 0 && k.section >= section {
			if err := k.NextACPKMKey(); err != nil {
				if errors.Is(err, ErrLowKeyResource) {
					return &ResourceError{Done: done, Requested: blocks}
				}
				return err
			}
			k.section = 0
		}
		if !k.spend() {
			return &ResourceError{Done: done, Requested: blocks}
		}
		ctr := k.iv.bytes()
		k.sched.Encrypt(ks[:bs], ctr)
		incrementCounter(ctr)
		n := xorBytes(dst, src, ks[:bs])
		dst, src = dst[n:], src[n:]
		if section > 0 {
			k.section++
		}
		if n < bs {
			k.iv.reset()
		}
	}
	return nil
}

func incrementCounter(ctr []byte) {
	for i := len(ctr) - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}
