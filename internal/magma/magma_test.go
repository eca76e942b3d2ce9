package magma

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func decodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

const testKey = "ffeeddccbbaa99887766554433221100f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"

func TestVectors(t *testing.T) {
	testCases := []struct {
		plain, cipher string
	}{
		// GOST R 34.12-2015, A.2.4
		{"fedcba9876543210", "4ee901e5c2d8ca3d"},
		// GOST R 34.13-2015, A.2.1
		{"92def06b3c130a59", "2b073f0494f372a0"},
		{"db54c704f8189d20", "de70e715d3556e48"},
		{"4a98fb2e67a8024c", "11d8d9e9eacfbc1e"},
		{"8912409b17b57e41", "7c68260996c67efb"},
	}
	s, err := NewSchedule(decodeHex(testKey))
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range testCases {
		out := make([]byte, BlockSize)
		s.Encrypt(out, decodeHex(tc.plain))
		if !bytes.Equal(out, decodeHex(tc.cipher)) {
			t.Errorf("encrypt %s: want %s, have %x", tc.plain, tc.cipher, out)
		}
		s.Decrypt(out, out)
		if !bytes.Equal(out, decodeHex(tc.plain)) {
			t.Errorf("decrypt %s: have %x", tc.cipher, out)
		}
	}
}

// The round function from GOST R 34.12-2015, A.2.3.
func TestRoundFunction(t *testing.T) {
	testCases := []struct {
		k, a, want uint32
	}{
		{0x87654321, 0xfedcba98, 0xfdcbc20c},
		{0xfdcbc20c, 0x87654321, 0x7e791a4b},
		{0x7e791a4b, 0xfdcbc20c, 0xc76549ec},
		{0xc76549ec, 0x7e791a4b, 0x9791c849},
	}
	for _, tc := range testCases {
		if have := g(tc.k, tc.a); have != tc.want {
			t.Errorf("g(%08x, %08x): want %08x, have %08x", tc.k, tc.a, tc.want, have)
		}
	}
}

func TestKeySize(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33} {
		if _, err := NewSchedule(make([]byte, n)); err == nil {
			t.Errorf("key size %d accepted", n)
		}
	}
}

func TestWipe(t *testing.T) {
	s, err := NewSchedule(decodeHex(testKey))
	if err != nil {
		t.Fatal(err)
	}
	s.Wipe()
	if s.k != [8]uint32{} {
		t.Error("key words survived Wipe")
	}
	defer func() {
		if recover() == nil {
			t.Error("Decrypt after Wipe did not panic")
		}
	}()
	s.Decrypt(make([]byte, BlockSize), make([]byte, BlockSize))
}

func BenchmarkEncrypt(b *testing.B) {
	s, err := NewSchedule(decodeHex(testKey))
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, BlockSize)
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Encrypt(buf, buf)
	}
}
