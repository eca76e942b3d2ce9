package random

import (
	"bytes"
	"sync"
)

// Number of bytes to prefetch.
const prefetchN = 512

// Prefetched buffers operating system randomness in the background. It is
// meant for initial vectors, not for key material.
var Prefetched Source = newPrefetcher(System)

type prefetcher struct {
	sync.Mutex
	buf    bytes.Buffer
	refill chan []byte
	start  sync.Once
	src    Source
}

func newPrefetcher(src Source) *prefetcher {
	return &prefetcher{src: src, refill: make(chan []byte)}
}

func (p *prefetcher) refillWorker() {
	for {
		fresh := make([]byte, prefetchN)
		if err := p.src.Fill(fresh); err != nil {
			// A nil slice tells the reader that the source failed.
			fresh = nil
		}
		p.refill <- fresh
	}
}

// Fill copies buffered random bytes into b, refilling as needed.
func (p *prefetcher) Fill(b []byte) error {
	p.start.Do(func() { go p.refillWorker() })
	p.Lock()
	// Note: don't use defer, Fill sits on the IV generation path.
	for len(b) > 0 {
		n, _ := p.buf.Read(b)
		b = b[n:]
		if len(b) == 0 {
			break
		}
		fresh := <-p.refill
		if fresh == nil {
			p.Unlock()
			return ErrExhausted
		}
		p.buf.Reset()
		p.buf.Write(fresh)
	}
	p.Unlock()
	return nil
}
