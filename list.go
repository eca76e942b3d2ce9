package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/oid"
)

// list prints the supported block ciphers.
// This is called when you pass the "-list" option.
func list(w io.Writer) error {
	for _, e := range oid.Default.List() {
		_, err := fmt.Fprintf(w, "%-12s %-22s block %2dB  key %2dB  aliases: %s\n",
			e.Name, e.OID, e.BlockSize, e.KeySize, strings.Join(e.Aliases, " "))
		if err != nil {
			return exitcodes.Wrap(err, exitcodes.IO)
		}
	}
	return nil
}
