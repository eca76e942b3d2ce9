package bckey

import (
	"fmt"

	"github.com/akcrypt/akcrypt/internal/random"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// SetKey installs a copy of key as the key material, expands the round
// keys, resets the resource to the algorithm default and clears any IV
// state. Previously installed material and round keys are wiped.
func (k *Key) SetKey(key []byte) error {
	if k == nil {
		return ErrNullArgument
	}
	if k.alg == nil || k.destroyed {
		return ErrWrongBlockCipher
	}
	if len(key) == 0 {
		return ErrZeroLength
	}
	if len(key) != k.alg.KeySize() {
		return fmt.Errorf("%w: %s needs %d bytes, have %d",
			ErrWrongKeyLength, k.alg.Name(), k.alg.KeySize(), len(key))
	}
	if err := k.install(key); err != nil {
		return err
	}
	k.resource = k.alg.Resource()
	k.iv.reset()
	k.section = 0
	tlog.Debug.Printf("bckey: %s key installed, resource %d blocks", k.alg.Name(), k.resource)
	return nil
}

// SetKeyRandom installs fresh key material read from src.
func (k *Key) SetKeyRandom(src random.Source) error {
	if k == nil || src == nil {
		return ErrNullArgument
	}
	if k.alg == nil || k.destroyed {
		return ErrWrongBlockCipher
	}
	buf := make([]byte, k.alg.KeySize())
	defer wipe(buf)
	if err := src.Fill(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyValueUndefined, err)
	}
	return k.SetKey(buf)
}

// install expands key and swaps it in for the current material.
func (k *Key) install(key []byte) error {
	sched, err := k.alg.Schedule(key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyValueUndefined, err)
	}
	sec, err := newSecret(key)
	if err != nil {
		sched.Wipe()
		return err
	}
	k.dropMaterial()
	k.sched, k.secret = sched, sec
	return nil
}

func (k *Key) dropMaterial() {
	if k.sched != nil {
		k.sched.Wipe()
		k.sched = nil
	}
	if k.secret != nil {
		k.secret.wipe()
		k.secret = nil
	}
}

// NextACPKMKey replaces the key material with the next key of the ACPKM
// chain (R 1323565.1.017-2018): the encryption of the bytes 0x80, 0x81, ...
// under the current key. The encryption is charged to the resource, which
// is not reset. IV state is kept so that a CTR-ACPKM stream can go on.
func (k *Key) NextACPKMKey() error {
	if err := k.ready(); err != nil {
		return err
	}
	bs, ks := k.alg.BlockSize(), k.alg.KeySize()
	blocks := int64(ks / bs)
	if err := k.reserve(blocks); err != nil {
		return err
	}
	next := make([]byte, ks)
	defer wipe(next)
	for i := range next {
		next[i] = 0x80 + byte(i)
	}
	for off := 0; off < ks; off += bs {
		k.resource--
		k.sched.Encrypt(next[off:off+bs], next[off:off+bs])
	}
	if err := k.install(next); err != nil {
		return err
	}
	tlog.Debug.Printf("bckey: %s ACPKM key derived, resource %d blocks", k.alg.Name(), k.resource)
	return nil
}

// Clone returns a new key bound to the same algorithm with a copy of the
// key material. The clone starts with a full resource and no IV state.
func (k *Key) Clone() (*Key, error) {
	if err := k.ready(); err != nil {
		return nil, err
	}
	material, err := k.secret.value()
	if err != nil {
		return nil, err
	}
	defer wipe(material)
	c := New()
	if err := c.BindAlgorithm(k.alg); err != nil {
		return nil, err
	}
	if err := c.SetKey(material); err != nil {
		return nil, err
	}
	return c, nil
}

// Verify checks the stored key material against its integrity code.
func (k *Key) Verify() error {
	if err := k.ready(); err != nil {
		return err
	}
	material, err := k.secret.value()
	if err != nil {
		return err
	}
	wipe(material)
	return nil
}

// Destroy wipes the round keys, the key material and the IV state. Every
// later call on k fails with ErrWrongBlockCipher. Destroy is idempotent.
func (k *Key) Destroy() {
	if k == nil || k.destroyed {
		return
	}
	if k.alg != nil {
		tlog.Debug.Printf("bckey: %s key destroyed", k.alg.Name())
	}
	k.dropMaterial()
	k.iv.reset()
	k.alg = nil
	k.resource = 0
	k.section = 0
	k.destroyed = true
}
