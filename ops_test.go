package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"strings"
	"testing"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/gftables"
	"github.com/akcrypt/akcrypt/internal/options"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

func TestMain(m *testing.M) {
	if err := gftables.InitDefault(gftables.Standard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const (
	testKuznyechikKey = "8899aabbccddeeff0011223344556677fedcba98765432100123456789abcdef"
	testMagmaKey      = "ffeeddcc-bbaa9988-77665544-33221100-f0f1f2f3-f4f5f6f7-f8f9fafb-fcfdfeff"
)

func unhex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func runOp(t *testing.T, args argContainer, in []byte) (out, diag []byte, err error) {
	var o, d bytes.Buffer
	err = runDataOp(&args, args.op(), bytes.NewReader(in), &o, &d)
	return o.Bytes(), d.Bytes(), err
}

func TestDataOpVectors(t *testing.T) {
	testcases := []struct {
		name string
		args argContainer
		in   string
		want string
	}{
		{
			name: "kuznyechik-ecb",
			args: argContainer{ecbEncrypt: true, nopad: true, alg: "kuznyechik", key: testKuznyechikKey},
			in:   "1122334455667700ffeeddccbbaa998800112233445566778899aabbcceeff0a",
			want: "7f679d90bebc24305a468d42b9d4edcdb429912c6e0032f9285452d76718d08b",
		},
		{
			name: "magma-ctr",
			args: argContainer{ctr: true, alg: "1.2.643.7.1.1.5.1", key: testMagmaKey, iv: "12345678"},
			in:   "92def06b3c130a59db54c704f8189d20",
			want: "4e98110c97b7b93c3e250d93d6e85d69",
		},
		{
			name: "kuznyechik-ctr-acpkm",
			args: argContainer{ctrACPKM: true, alg: "grasshopper", key: testKuznyechikKey, iv: "1234567890abcef0", section: 2},
			in: "1122334455667700ffeeddccbbaa998800112233445566778899aabbcceeff0a" +
				"112233445566778899aabbcceeff0a00",
			want: "f195d8bec10ed1dbd57b5fa240bda1b885eee733f6a13e5df33ce4b33c45dee4" +
				"4bceeb8f646f4c55001706275e85e800",
		},
	}
	for _, tc := range testcases {
		out, _, err := runOp(t, tc.args, unhex(t, tc.in))
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if hex.EncodeToString(out) != tc.want {
			t.Errorf("%s:\nwant %s\nhave %x", tc.name, tc.want, out)
		}
	}
}

func TestDataOpCMAC(t *testing.T) {
	args := argContainer{cmac: true, alg: "magma", key: testMagmaKey, taglen: 4}
	out, _, err := runOp(t, args, unhex(t, "92def06b3c130a59db54c704f8189d204a98fb2e67a8024c8912409b17b57e41"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "154e7210\n" {
		t.Errorf("have %q", out)
	}
}

// Encrypting without -iv prints the generated IV, which decrypts the output
// again. The input spans several chunks.
func TestDataOpRoundTrip(t *testing.T) {
	plain := bytes.Repeat([]byte("akcrypt round trip "), 10000)
	for _, enc := range []argContainer{
		{cbcEncrypt: true},
		{ctr: true},
		{ctrACPKM: true},
		{ecbEncrypt: true},
	} {
		for _, alg := range []string{"magma", "kuznyechik", "sm4"} {
			key := testKuznyechikKey
			if alg == "sm4" {
				key = key[:32]
			}
			enc.alg, enc.key = alg, key
			ct, diag, err := runOp(t, enc, plain)
			if err != nil {
				t.Fatalf("%v %s: %v", enc.op(), alg, err)
			}
			dec := argContainer{alg: alg, key: key}
			switch enc.op() {
			case opCBCEncrypt:
				dec.cbcDecrypt = true
			case opCTR:
				dec.ctr = true
			case opCTRACPKM:
				dec.ctrACPKM = true
			case opECBEncrypt:
				dec.ecbDecrypt = true
			}
			if enc.op() != opECBEncrypt {
				line := strings.TrimSpace(string(diag))
				if !strings.HasPrefix(line, "iv: ") {
					t.Fatalf("no IV printed: %q", diag)
				}
				dec.iv = strings.TrimPrefix(line, "iv: ")
			}
			pt, _, err := runOp(t, dec, ct)
			if err != nil {
				t.Fatalf("%v %s: %v", dec.op(), alg, err)
			}
			if !bytes.Equal(pt, plain) {
				t.Errorf("%v %s: round trip failed", enc.op(), alg)
			}
		}
	}
}

// Aligned input gets a whole block of padding, also at a chunk boundary.
func TestDataOpPadding(t *testing.T) {
	args := argContainer{ecbEncrypt: true, alg: "sm4", key: testKuznyechikKey[:32]}
	for _, n := range []int{0, 1, 16, chunkSize - 1, chunkSize, chunkSize + 16} {
		ct, _, err := runOp(t, args, make([]byte, n))
		if err != nil {
			t.Fatal(err)
		}
		if want := (n/16 + 1) * 16; len(ct) != want {
			t.Errorf("n=%d: want %d bytes, have %d", n, want, len(ct))
		}
	}
}

func TestDataOpErrors(t *testing.T) {
	testcases := []struct {
		name string
		args argContainer
		in   []byte
		code int
	}{
		{"no key", argContainer{ctr: true, alg: "magma"}, nil, exitcodes.Key},
		{"bad key", argContainer{ctr: true, alg: "magma", key: "xyz"}, nil, exitcodes.Key},
		{"short key", argContainer{ctr: true, alg: "magma", key: "0011"}, nil, exitcodes.Key},
		{"bad alg", argContainer{ctr: true, alg: "des", key: "0011"}, nil, exitcodes.Usage},
		{"no iv", argContainer{cbcDecrypt: true, alg: "sm4", key: testKuznyechikKey[:32]}, make([]byte, 16), exitcodes.Usage},
		{"not aligned", argContainer{ecbEncrypt: true, nopad: true, alg: "sm4", key: testKuznyechikKey[:32]}, make([]byte, 15), exitcodes.Other},
		{"bad padding", argContainer{ecbDecrypt: true, alg: "sm4", key: testKuznyechikKey[:32]}, nil, exitcodes.Other},
	}
	for _, tc := range testcases {
		_, _, err := runOp(t, tc.args, tc.in)
		if err == nil {
			t.Errorf("%s: no error", tc.name)
			continue
		}
		if code := exitcodes.Code(err); code != tc.code {
			t.Errorf("%s: want exit code %d, have %d (%v)", tc.name, tc.code, code, err)
		}
	}
}

func TestDataOpResource(t *testing.T) {
	o := options.Default()
	o.SM4Resource = 3
	if err := options.Set(o); err != nil {
		t.Fatal(err)
	}
	defer options.Set(options.Default())
	args := argContainer{ecbEncrypt: true, nopad: true, alg: "sm4", key: testKuznyechikKey[:32]}
	if _, _, err := runOp(t, args, make([]byte, 48)); err != nil {
		t.Fatal(err)
	}
	_, _, err := runOp(t, args, make([]byte, 64))
	if exitcodes.Code(err) != exitcodes.Resource {
		t.Errorf("want exit code %d, have %v", exitcodes.Resource, err)
	}
}

func TestProcessStream(t *testing.T) {
	for _, n := range []int{0, 5, chunkSize, chunkSize + 1, 3 * chunkSize} {
		var chunks []int
		lastSeen := 0
		var out bytes.Buffer
		err := processStream(bytes.NewReader(make([]byte, n)), &out, func(c []byte, last bool) ([]byte, error) {
			chunks = append(chunks, len(c))
			if last {
				lastSeen++
			}
			return c, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if lastSeen != 1 || out.Len() != n {
			t.Errorf("n=%d: chunks %v, %d last, %d bytes out", n, chunks, lastSeen, out.Len())
		}
		for _, c := range chunks[:len(chunks)-1] {
			if c != chunkSize {
				t.Errorf("n=%d: short chunk before the last one: %v", n, chunks)
			}
		}
	}
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	args := argContainer{list: true}
	if err := run(&args, nil, &out, nil); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"kuznyechik", "magma", "sm4", "1.2.643.7.1.1.5.2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("%q missing from %q", want, out.String())
		}
	}
}

func TestRunInfo(t *testing.T) {
	var out bytes.Buffer
	args := argContainer{info: true}
	if err := run(&args, nil, &out, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Kuznyechik tables: standard") {
		t.Errorf("have %q", out.String())
	}
}

func TestRunSelftest(t *testing.T) {
	args := argContainer{selftest: true}
	if err := run(&args, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOptions(t *testing.T) {
	defer func() {
		options.Set(options.Default())
		gftables.InitDefault(gftables.Standard)
		tlog.SetLevel(options.LogStandard)
	}()
	path := t.TempDir() + "/akcrypt.toml"
	if err := os.WriteFile(path, []byte("sm4_cipher_resource = 77\n"), 0600); err != nil {
		t.Fatal(err)
	}
	args := argContainer{config: path, reversed: true, quiet: true}
	o, err := loadOptions(&args)
	if err != nil {
		t.Fatal(err)
	}
	if o.SM4Resource != 77 || !o.ReversedTables || o.LogLevel != options.LogNone {
		t.Errorf("have %+v", o)
	}
	if gftables.Current().Variant != gftables.Reversed {
		t.Error("tables were not switched")
	}

	args = argContainer{config: path + ".missing"}
	if _, err := loadOptions(&args); exitcodes.Code(err) != exitcodes.LoadConf {
		t.Errorf("want exit code %d, have %v", exitcodes.LoadConf, err)
	}
}
