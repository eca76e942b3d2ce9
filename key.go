package main

import (
	"encoding/hex"
	"strings"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// unhexArg converts the hex value of option "-name" to binary. Dashes and
// spaces are ignored, so "941a6029-3adc6a1c" is accepted.
func unhexArg(name, val string) ([]byte, error) {
	val = strings.NewReplacer("-", "", " ", "").Replace(val)
	b, err := hex.DecodeString(val)
	if err != nil {
		return nil, exitcodes.Errorf(exitcodes.Key, "Could not parse -%s: %v", name, err)
	}
	if name == "key" && len(b) > 0 {
		tlog.Info.Printf(tlog.ColorYellow +
			"THE KEY IS VISIBLE VIA \"ps ax\" AND MAY BE STORED IN YOUR SHELL HISTORY!" +
			tlog.ColorReset)
	}
	return b, nil
}
