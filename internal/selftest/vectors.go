package selftest

import (
	"github.com/akcrypt/akcrypt/internal/bckey"
	"github.com/akcrypt/akcrypt/internal/gftables"
)

// GOST R 34.13-2015 appendix A, R 1323565.1.017-2018 and GB/T 32907-2016.
const (
	kuznyechikKey = "8899aabbccddeeff0011223344556677fedcba98765432100123456789abcdef"
	magmaKey      = "ffeeddccbbaa99887766554433221100f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"
	sm4Key        = "0123456789abcdeffedcba9876543210"

	// encryption of the zero block under the first ACPKM key derived
	// from kuznyechikKey
	acpkmKeyZeroBlock = "b04e88c43ffcdabe2039b41f83d5fc83"
)

var (
	kuznyechikPlain = []string{
		"1122334455667700ffeeddccbbaa9988",
		"00112233445566778899aabbcceeff0a",
		"112233445566778899aabbcceeff0a00",
		"2233445566778899aabbcceeff0a0011",
		"33445566778899aabbcceeff0a001122",
		"445566778899aabbcceeff0a00112233",
		"5566778899aabbcceeff0a0011223344",
	}
	kuznyechikECB = []string{
		"7f679d90bebc24305a468d42b9d4edcd",
		"b429912c6e0032f9285452d76718d08b",
		"f0ca33549d247ceef3f5a5313bd4b157",
		"d0b09ccde830b9eb3a02c4c5aa8ada98",
	}
	magmaPlain = []string{
		"92def06b3c130a59",
		"db54c704f8189d20",
		"4a98fb2e67a8024c",
		"8912409b17b57e41",
	}
	magmaECB = []string{
		"2b073f0494f372a0",
		"de70e715d3556e48",
		"11d8d9e9eacfbc1e",
		"7c68260996c67efb",
	}
)

func ecb(plain []string, decrypt bool) func(k *bckey.Key) ([]byte, error) {
	return func(k *bckey.Key) ([]byte, error) {
		buf := unhex(plain...)
		if decrypt {
			return buf, k.DecryptECB(buf, buf)
		}
		return buf, k.EncryptECB(buf, buf)
	}
}

func ctr(plain []string, iv string) func(k *bckey.Key) ([]byte, error) {
	return func(k *bckey.Key) ([]byte, error) {
		buf := unhex(plain...)
		return buf, k.CTR(buf, buf, unhex(iv))
	}
}

func cbc(plain []string, iv string) func(k *bckey.Key) ([]byte, error) {
	return func(k *bckey.Key) ([]byte, error) {
		buf := unhex(plain...)
		return buf, k.EncryptCBC(buf, buf, unhex(iv))
	}
}

func cmac(plain []string, tagLen int) func(k *bckey.Key) ([]byte, error) {
	return func(k *bckey.Key) ([]byte, error) {
		return k.CMAC(unhex(plain...), tagLen)
	}
}

func reverse(s string) string {
	b := unhex(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	const digits = "0123456789abcdef"
	out := make([]byte, 2*len(b))
	for i, c := range b {
		out[2*i] = digits[c>>4]
		out[2*i+1] = digits[c&15]
	}
	return string(out)
}

func kuznyechikTests() []Test {
	if t := gftables.Current(); t != nil && t.Variant == gftables.Reversed {
		// The reversed tables work on byte reversed keys and blocks.
		return []Test{{
			Name: "kuznyechik-reversed-ecb",
			Kind: bckey.Kuznyechik,
			Key:  reverse(kuznyechikKey),
			Run:  ecb([]string{reverse(kuznyechikPlain[0])}, false),
			Want: reverse(kuznyechikECB[0]),
		}}
	}
	return []Test{
		{
			Name: "kuznyechik-ecb",
			Kind: bckey.Kuznyechik,
			Key:  kuznyechikKey,
			Run:  ecb(kuznyechikPlain[:4], false),
			Want: concat(kuznyechikECB),
		},
		{
			Name: "kuznyechik-ecb-decrypt",
			Kind: bckey.Kuznyechik,
			Key:  kuznyechikKey,
			Run:  ecb(kuznyechikECB, true),
			Want: concat(kuznyechikPlain[:4]),
		},
		{
			Name: "kuznyechik-ctr",
			Kind: bckey.Kuznyechik,
			Key:  kuznyechikKey,
			Run:  ctr(kuznyechikPlain[:4], "1234567890abcef0"),
			Want: "f195d8bec10ed1dbd57b5fa240bda1b885eee733f6a13e5df33ce4b33c45dee4" +
				"a5eae88be6356ed3d5e877f13564a3a5cb91fab1f20cbab6d1c6d15820bdba73",
		},
		{
			Name: "kuznyechik-cbc",
			Kind: bckey.Kuznyechik,
			Key:  kuznyechikKey,
			Run:  cbc(kuznyechikPlain[:4], "1234567890abcef0a1b2c3d4e5f0011223344556677889901213141516171819"),
			Want: "689972d4a085fa4d90e52e3d6d7dcc272826e661b478eca6af1e8e448d5ea5ac" +
				"fe7babf1e91999e85640e8b0f49d90d0167688065a895c631a2d9a1560b63970",
		},
		{
			Name: "kuznyechik-cmac",
			Kind: bckey.Kuznyechik,
			Key:  kuznyechikKey,
			Run:  cmac(kuznyechikPlain[:4], 8),
			Want: "336f4d296059fbe3",
		},
		{
			Name: "kuznyechik-ctr-acpkm",
			Kind: bckey.Kuznyechik,
			Key:  kuznyechikKey,
			Run: func(k *bckey.Key) ([]byte, error) {
				buf := unhex(kuznyechikPlain...)
				return buf, k.CTRACPKM(buf, buf, 2, unhex("1234567890abcef0"))
			},
			Want: "f195d8bec10ed1dbd57b5fa240bda1b885eee733f6a13e5df33ce4b33c45dee4" +
				"4bceeb8f646f4c55001706275e85e800587c4df568d094393e4834afd0805046" +
				"cf30f57686aeece11cfc6c316b8a896edffd07ec813636460c4f3b743423163e" +
				"6409a9c282fac8d469d221e7fbd6de5d",
		},
		{
			Name: "kuznyechik-acpkm-key",
			Kind: bckey.Kuznyechik,
			Key:  kuznyechikKey,
			Run: func(k *bckey.Key) ([]byte, error) {
				if err := k.NextACPKMKey(); err != nil {
					return nil, err
				}
				// the derived key is checked through its encryption of zero
				buf := make([]byte, 16)
				return buf, k.EncryptECB(buf, buf)
			},
			Want: acpkmKeyZeroBlock,
		},
	}
}

func concat(s []string) string {
	out := ""
	for _, x := range s {
		out += x
	}
	return out
}

func magmaTests() []Test {
	return []Test{
		{
			Name: "magma-ecb",
			Kind: bckey.Magma,
			Key:  magmaKey,
			Run:  ecb(magmaPlain, false),
			Want: concat(magmaECB),
		},
		{
			Name: "magma-ecb-decrypt",
			Kind: bckey.Magma,
			Key:  magmaKey,
			Run:  ecb(magmaECB, true),
			Want: concat(magmaPlain),
		},
		{
			Name: "magma-ctr",
			Kind: bckey.Magma,
			Key:  magmaKey,
			Run:  ctr(magmaPlain, "12345678"),
			Want: "4e98110c97b7b93c3e250d93d6e85d69136d868807b2dbef568eb680ab52a12d",
		},
		{
			Name: "magma-cbc",
			Kind: bckey.Magma,
			Key:  magmaKey,
			Run:  cbc(magmaPlain, "1234567890abcdef234567890abcdef134567890abcdef12"),
			Want: "96d1b05eea683919aff76129abb937b95058b4a1c4bc001920b78b1a7cd7e667",
		},
		{
			Name: "magma-cmac",
			Kind: bckey.Magma,
			Key:  magmaKey,
			Run:  cmac(magmaPlain, 8),
			Want: "154e72102030c5bb",
		},
	}
}

func sm4Tests() []Test {
	return []Test{
		{
			Name: "sm4-ecb",
			Kind: bckey.SM4,
			Key:  sm4Key,
			Run:  ecb([]string{sm4Key}, false),
			Want: "681edf34d206965e86b3e94f536e4246",
		},
		{
			Name: "sm4-ecb-decrypt",
			Kind: bckey.SM4,
			Key:  sm4Key,
			Run:  ecb([]string{"681edf34d206965e86b3e94f536e4246"}, true),
			Want: sm4Key,
		},
	}
}

// Tests returns the known-answer tests for the active Kuznyechik tables.
func Tests() []Test {
	var out []Test
	out = append(out, magmaTests()...)
	out = append(out, kuznyechikTests()...)
	out = append(out, sm4Tests()...)
	return out
}
