// Package speed implements the "-speed" command-line option,
// similar to "openssl speed".
// It benchmarks every block cipher in every mode of operation.
package speed

import (
	"fmt"
	"log"
	"strings"
	"testing"

	"golang.org/x/sys/cpu"

	"github.com/akcrypt/akcrypt/internal/bckey"
	"github.com/akcrypt/akcrypt/internal/random"
)

// Benchmarks process 4 kiB messages
const msgSize = 4096

type mode struct {
	name string
	run  func(k *bckey.Key, buf []byte) error
	// blocks is an upper bound of the resource one call consumes
	blocks func(k *bckey.Key) int64
}

var modes = []mode{
	{
		name: "ECB",
		run: func(k *bckey.Key, buf []byte) error {
			return k.EncryptECB(buf, buf)
		},
		blocks: msgBlocks,
	},
	{
		name: "CBC",
		run: func(k *bckey.Key, buf []byte) error {
			return k.EncryptCBC(buf, buf, buf[:k.BlockSize()])
		},
		blocks: msgBlocks,
	},
	{
		name: "CTR",
		run: func(k *bckey.Key, buf []byte) error {
			return k.CTR(buf, buf, buf[:k.BlockSize()/2])
		},
		blocks: msgBlocks,
	},
	{
		name: "CTR-ACPKM",
		run: func(k *bckey.Key, buf []byte) error {
			return k.CTRACPKM(buf, buf, k.SectionLen(), buf[:k.BlockSize()/2])
		},
		blocks: func(k *bckey.Key) int64 {
			// a derivation after every block at worst
			a := k.Algorithm()
			return msgBlocks(k) * int64(1+a.KeySize()/a.BlockSize())
		},
	},
	{
		name: "CMAC",
		run: func(k *bckey.Key, buf []byte) error {
			_, err := k.CMAC(buf, k.BlockSize())
			return err
		},
		blocks: func(k *bckey.Key) int64 { return msgBlocks(k) + 1 },
	},
}

func msgBlocks(k *bckey.Key) int64 {
	return int64(msgSize / k.BlockSize())
}

// Run - run the speed the test and print the results.
func Run() {
	if model := cpuModelName(); model != "" {
		fmt.Printf("cpu: %s\n", model)
	}
	if f := cpuFeatures(); f != "" {
		fmt.Printf("cpu features: %s\n", f)
	}
	for _, kind := range bckey.Kinds() {
		for _, m := range modes {
			name := fmt.Sprintf("%s-%s", kind, m.name)
			fmt.Printf("%-22s\t", name)
			mbs := mbPerSec(testing.Benchmark(bench(kind, m)))
			if mbs > 0 {
				fmt.Printf("%7.2f MB/s\n", mbs)
			} else {
				fmt.Printf("    N/A\n")
			}
		}
	}
}

func mbPerSec(r testing.BenchmarkResult) float64 {
	if r.Bytes <= 0 || r.T <= 0 || r.N <= 0 {
		return 0
	}
	return (float64(r.Bytes) * float64(r.N) / 1e6) / r.T.Seconds()
}

// cpuFeatures lists the instruction set extensions relevant for table
// driven ciphers.
func cpuFeatures() string {
	var f []string
	add := func(has bool, name string) {
		if has {
			f = append(f, name)
		}
	}
	add(cpu.X86.HasSSE2, "sse2")
	add(cpu.X86.HasSSE41, "sse4.1")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasAES, "aes-ni")
	add(cpu.ARM64.HasAES, "arm64-aes")
	add(cpu.ARM64.HasASIMD, "asimd")
	return strings.Join(f, " ")
}

// Get "n" random bytes or panic
func randBytes(n int) []byte {
	b, err := random.Bytes(random.System, n)
	if err != nil {
		log.Panic("Failed to read random bytes: " + err.Error())
	}
	return b
}

// bench returns a benchmark of "kind" in mode "m". The key is reinstalled
// whenever its resource runs low; this is not timed.
func bench(kind bckey.Kind, m mode) func(*testing.B) {
	return func(b *testing.B) {
		k, err := bckey.NewKey(kind)
		if err != nil {
			b.Skip(err)
		}
		key := randBytes(k.Algorithm().KeySize())
		if err := k.SetKey(key); err != nil {
			b.Fatal(err)
		}
		need := m.blocks(k)
		buf := randBytes(msgSize)
		b.SetBytes(msgSize)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if k.Resource() < need {
				b.StopTimer()
				if err := k.SetKey(key); err != nil {
					b.Fatal(err)
				}
				b.StartTimer()
			}
			if err := m.run(k, buf); err != nil {
				b.Fatal(err)
			}
		}
	}
}
