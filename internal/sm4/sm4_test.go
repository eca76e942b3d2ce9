package sm4

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

const testKey = "0123456789abcdeffedcba9876543210"

// GB/T 32907-2016, example 1
func TestVector(t *testing.T) {
	s, err := NewSchedule(decodeHex(testKey))
	if err != nil {
		t.Fatal(err)
	}
	if s.rk[0] != 0xf12186f9 || s.rk[31] != 0x9124a012 {
		t.Errorf("round keys: rk0=%08x rk31=%08x", s.rk[0], s.rk[31])
	}
	out := make([]byte, BlockSize)
	s.Encrypt(out, decodeHex(testKey))
	want := decodeHex("681edf34d206965e86b3e94f536e4246")
	if !bytes.Equal(out, want) {
		t.Errorf("want %x, have %x", want, out)
	}
	s.Decrypt(out, out)
	if !bytes.Equal(out, decodeHex(testKey)) {
		t.Errorf("decryption gave %x", out)
	}
}

// GB/T 32907-2016, example 2: one million encryptions in place.
func TestVectorMillion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	s, err := NewSchedule(decodeHex(testKey))
	if err != nil {
		t.Fatal(err)
	}
	buf := decodeHex(testKey)
	for i := 0; i < 1000000; i++ {
		s.Encrypt(buf, buf)
	}
	want := decodeHex("595298c7c6fd271f0402f804c33d3f66")
	if !bytes.Equal(buf, want) {
		t.Errorf("want %x, have %x", want, buf)
	}
}

func TestKeySize(t *testing.T) {
	_, err := NewSchedule(make([]byte, 32))
	if _, ok := err.(KeySizeError); !ok {
		t.Errorf("want KeySizeError, have %v", err)
	}
}

func TestWipe(t *testing.T) {
	s, err := NewSchedule(decodeHex(testKey))
	if err != nil {
		t.Fatal(err)
	}
	s.Wipe()
	if s.rk != [rounds]uint32{} {
		t.Error("round keys survived Wipe")
	}
	defer func() {
		if recover() == nil {
			t.Error("Encrypt after Wipe did not panic")
		}
	}()
	s.Encrypt(make([]byte, BlockSize), make([]byte, BlockSize))
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
