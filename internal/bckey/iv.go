package bckey

// MaxIVLen is the longest IV the key can store: a CBC register of up to
// eight 8-byte blocks or four 16-byte blocks.
const MaxIVLen = 64

type ivMode int

const (
	ivNone ivMode = iota
	ivCBC
	ivCTR
	ivACPKM
)

// ivState is the chaining state carried between calls of one mode.
type ivState struct {
	buf  [MaxIVLen]byte
	n    int
	mode ivMode
}

func (v *ivState) reset() {
	v.buf = [MaxIVLen]byte{}
	v.n = 0
	v.mode = ivNone
}

func (v *ivState) set(b []byte, mode ivMode) {
	v.reset()
	v.n = copy(v.buf[:], b)
	v.mode = mode
}

func (v *ivState) bytes() []byte {
	return v.buf[:v.n]
}

// canContinue reports whether a call without an IV may resume mode.
func (v *ivState) canContinue(mode ivMode) bool {
	return v.n > 0 && v.mode == mode
}

// push drops the first block of the register and appends blk.
func (v *ivState) push(blk []byte) {
	bs := len(blk)
	copy(v.buf[:v.n-bs], v.buf[bs:v.n])
	copy(v.buf[v.n-bs:v.n], blk)
}
