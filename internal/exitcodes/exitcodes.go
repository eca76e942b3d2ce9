// Package exitcodes contains all well-defined exit codes that akcrypt
// can return.
package exitcodes

import (
	"errors"
	"fmt"
	"os"
)

const (
	// Usage - usage error like wrong cli syntax, wrong number of parameters.
	Usage = 1
	// 2 is reserved because it is used by Go panic

	// Init means the Kuznyechik tables could not be generated
	Init = 7
	// LoadConf is an error while loading the options file
	LoadConf = 8
	// Other error - please inspect the message
	Other = 11
	// Key means that something went wrong when parsing the "-key" or "-iv"
	// command line options, or the key could not be installed
	Key = 14
	// Profiler - error occurred when trying to write cpu or memory profile or
	// execution trace
	Profiler = 25
	// SelfTest - at least one known-answer test failed
	SelfTest = 26
	// DevNull means that /dev/null could not be opened
	DevNull = 30
	// Resource - the key resource ran out in the middle of an operation
	Resource = 31
	// IO - reading the input or writing the output failed
	IO = 32
)

// Err wraps an error with an associated numeric exit code
type Err struct {
	error
	code int
}

// NewErr returns an error containing "msg" and the exit code "code".
func NewErr(msg string, code int) Err {
	return Err{
		error: errors.New(msg),
		code:  code,
	}
}

// Wrap attaches the exit code "code" to "err".
func Wrap(err error, code int) Err {
	return Err{
		error: err,
		code:  code,
	}
}

// Errorf formats an error like fmt.Errorf and attaches "code" to it.
func Errorf(code int, format string, a ...interface{}) Err {
	return Wrap(fmt.Errorf(format, a...), code)
}

// Unwrap returns the wrapped error.
func (e Err) Unwrap() error {
	return e.error
}

// Code returns the exit code carried by "err", or Other.
func Code(err error) int {
	var e Err
	if errors.As(err, &e) {
		return e.code
	}
	return Other
}

// Exit extracts the numeric exit code from "err" (if available) and exits the
// application.
func Exit(err error) {
	os.Exit(Code(err))
}
