package random

import (
	"fmt"
	"io"
	"os"
)

// File reads random bytes from a file or device such as /dev/random.
type File struct {
	f *os.File
}

// OpenFile opens path for reading.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

// Fill reads exactly len(b) bytes. A short file yields ErrExhausted.
func (r *File) Fill(b []byte) error {
	if _, err := io.ReadFull(r.f, b); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExhausted, r.f.Name(), err)
	}
	return nil
}

// Close closes the underlying file.
func (r *File) Close() error {
	return r.f.Close()
}
