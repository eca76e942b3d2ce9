package speed

import (
	"os"
	"testing"

	"github.com/akcrypt/akcrypt/internal/bckey"
	"github.com/akcrypt/akcrypt/internal/gftables"
)

/*
Make the "-speed" benchmarks also accessible to the standard test system.
Example run:

$ go test -bench .
BenchmarkModes/kuznyechik-ECB-4         	   10000	    110042 ns/op	  37.22 MB/s
...
*/

func TestMain(m *testing.M) {
	if err := gftables.InitDefault(gftables.Standard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func BenchmarkModes(b *testing.B) {
	for _, kind := range bckey.Kinds() {
		for _, m := range modes {
			b.Run(kind.String()+"-"+m.name, bench(kind, m))
		}
	}
}

// A single call of every mode fits into the resource that bench reserves.
func TestModeBlocks(t *testing.T) {
	for _, kind := range bckey.Kinds() {
		for _, m := range modes {
			k, err := bckey.NewKey(kind)
			if err != nil {
				t.Fatal(err)
			}
			if err := k.SetKey(randBytes(k.Algorithm().KeySize())); err != nil {
				t.Fatal(err)
			}
			before := k.Resource()
			if err := m.run(k, randBytes(msgSize)); err != nil {
				t.Fatalf("%v-%s: %v", kind, m.name, err)
			}
			if used := before - k.Resource(); used > m.blocks(k) {
				t.Errorf("%v-%s: used %d blocks, bound is %d", kind, m.name, used, m.blocks(k))
			}
		}
	}
}

func TestMbPerSec(t *testing.T) {
	if mbPerSec(testing.BenchmarkResult{}) != 0 {
		t.Error("empty result should give 0")
	}
}

func TestCPUModelName(t *testing.T) {
	// Just make sure it does not crash
	t.Logf("model %q, features %q", cpuModelName(), cpuFeatures())
}

func TestParseCPUInfo(t *testing.T) {
	testTable := []struct {
		in   string
		want string
	}{
		{"processor\t: 0\nmodel name\t: Intel(R) Core(TM) i5-3470 CPU @ 3.20GHz\n", "Intel(R) Core(TM) i5-3470 CPU @ 3.20GHz"},
		{"processor\t: 0\nHardware\t: BCM2835\n", "BCM2835"},
		{"Hardware\t: BCM2835\nmodel name\t: x\n", "x"},
		{"", ""},
	}
	for _, v := range testTable {
		if have := parseCPUInfo(v.in); have != v.want {
			t.Errorf("want=%q have=%q", v.want, have)
		}
	}
}
