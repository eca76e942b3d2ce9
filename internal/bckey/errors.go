package bckey

import (
	"errors"
	"fmt"
)

var (
	// ErrNullArgument is returned for nil keys, algorithms or sources.
	ErrNullArgument = errors.New("bckey: missing argument")
	// ErrZeroLength is returned for empty inputs where data is required.
	ErrZeroLength = errors.New("bckey: zero length")
	// ErrWrongKeyLength is returned when the key size does not match the algorithm.
	ErrWrongKeyLength = errors.New("bckey: wrong key length")
	// ErrWrongBlockCipherLength is returned for data that is not a whole
	// number of blocks where whole blocks are required.
	ErrWrongBlockCipherLength = errors.New("bckey: wrong data length")
	// ErrWrongIVLength is returned for a malformed IV, or a missing IV
	// where the mode has nothing to continue from.
	ErrWrongIVLength = errors.New("bckey: wrong iv length")
	// ErrWrongBlockCipher is returned when the key is not bound to an
	// algorithm, is bound already, or has been destroyed.
	ErrWrongBlockCipher = errors.New("bckey: wrong block cipher")
	// ErrWrongBlockCipherFunction is returned when a mode does not support
	// the bound algorithm or the requested parameters.
	ErrWrongBlockCipherFunction = errors.New("bckey: unsupported block cipher function")
	// ErrLowKeyResource is wrapped by *ResourceError.
	ErrLowKeyResource = errors.New("bckey: low key resource")
	// ErrKeyValueUndefined is returned when the key has no key material.
	ErrKeyValueUndefined = errors.New("bckey: key value is undefined")
	// ErrWrongKeyICode is returned when the stored key material no longer
	// matches its integrity code.
	ErrWrongKeyICode = errors.New("bckey: wrong key integrity code")
	// ErrInvalidValue is returned for out-of-range parameters.
	ErrInvalidValue = errors.New("bckey: invalid value")
)

// ResourceError reports that the key ran out of resource. Done blocks of
// the Requested total were processed before the failure.
type ResourceError struct {
	Done, Requested int64
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("bckey: low key resource: processed %d of %d blocks", e.Done, e.Requested)
}

// Unwrap lets errors.Is match ErrLowKeyResource.
func (e *ResourceError) Unwrap() error {
	return ErrLowKeyResource
}
