package bckey

import (
	"crypto/cipher"
	"fmt"
)

// Block returns a cipher.Block backed by k, for use with crypto/cipher and
// other code that expects one. Every block processed through it is charged
// to the resource of k; since cipher.Block cannot return errors, running
// out of resource, or using the view after k lost its key, panics with a
// *ResourceError or the corresponding error value.
func (k *Key) Block() (cipher.Block, error) {
	if err := k.ready(); err != nil {
		return nil, err
	}
	return blockView{k}, nil
}

type blockView struct {
	k *Key
}

var _ cipher.Block = blockView{}

func (b blockView) BlockSize() int {
	return b.k.BlockSize()
}

func (b blockView) Encrypt(dst, src []byte) {
	b.charge()
	b.k.sched.Encrypt(dst, src)
}

func (b blockView) Decrypt(dst, src []byte) {
	b.charge()
	b.k.sched.Decrypt(dst, src)
}

func (b blockView) charge() {
	if err := b.k.ready(); err != nil {
		panic(fmt.Errorf("bckey: block view: %w", err))
	}
	if !b.k.spend() {
		panic(&ResourceError{Done: 0, Requested: 1})
	}
}
