// Package random provides the byte sources used to generate keys, key masks
// and initial vectors.
package random

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// ErrExhausted is returned when a source cannot deliver the requested bytes.
var ErrExhausted = errors.New("random: source exhausted")

// Source fills buffers with random bytes.
type Source interface {
	Fill(b []byte) error
}

type systemSource struct{}

// Fill reads len(b) bytes from crypto/rand.
func (systemSource) Fill(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("%w: %v", ErrExhausted, err)
	}
	return nil
}

// System reads directly from the operating system generator. Use it for
// key material.
var System Source = systemSource{}

// Bytes returns n bytes from src.
func Bytes(src Source, n int) ([]byte, error) {
	b := make([]byte, n)
	if err := src.Fill(b); err != nil {
		return nil, err
	}
	return b, nil
}
