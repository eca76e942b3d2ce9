//go:build linux || darwin || freebsd

package bckey

import (
	"golang.org/x/sys/unix"

	"github.com/akcrypt/akcrypt/internal/tlog"
)

// lockMemory keeps b out of swap. Failure, typically RLIMIT_MEMLOCK, is
// logged and otherwise ignored.
func lockMemory(b []byte) {
	if len(b) == 0 {
		return
	}
	if err := unix.Mlock(b); err != nil {
		tlog.Debug.Printf("bckey: mlock of %d bytes failed: %v", len(b), err)
	}
}

func unlockMemory(b []byte) {
	if len(b) == 0 {
		return
	}
	unix.Munlock(b)
}
