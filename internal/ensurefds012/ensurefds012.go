// Package ensurefds012 ensures that file descriptors 0,1,2 are open. It opens
// multiple copies of /dev/null as required.
// akcrypt writes its output to fd 1. If that fd were closed, the next file
// the process opens (a profile, for example) would receive the ciphertext.
//
// Use like this:
//
//	import _ "github.com/akcrypt/akcrypt/internal/ensurefds012"
//
// The import line MUST be in the alphabetically first source code file of
// package main!
//
// Check it with all fds closed:
//
//	$ ./akcrypt -list 0<&- 1>&- 2>&-
package ensurefds012

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
)

func init() {
	fd, err := unix.Open("/dev/null", unix.O_RDWR, 0)
	if err != nil {
		os.Exit(exitcodes.DevNull)
	}
	for fd <= 2 {
		fd, err = unix.Dup(fd)
		if err != nil {
			os.Exit(exitcodes.DevNull)
		}
	}
	// Close excess fd (usually fd 3)
	unix.Close(fd)
}
