package main

import (
	"fmt"

	"github.com/akcrypt/akcrypt/internal/tlog"
)

const tUsage = "" +
	"Usage: " + tlog.ProgramName + " -list|-info|-selftest|-speed [OPTIONS]\n" +
	"  or   " + tlog.ProgramName + " -ecb-encrypt|-ecb-decrypt|-cbc-encrypt|-cbc-decrypt|-ctr|-ctr-acpkm|-cmac\n" +
	"          -key HEX [-alg NAME] [-iv HEX] [OPTIONS] < INPUT > OUTPUT\n"

// helpShort is what gets displayed on syntax error.
func helpShort() {
	printVersion()
	fmt.Printf("\n")
	fmt.Printf(tUsage)
	fmt.Printf(`
Common Options (use -h to show all):
  -alg               Block cipher: magma, kuznyechik (default) or sm4, or an OID
  -config            Load options from a TOML file
  -d, -debug         Enable debug output
  -iv                IV in hex
  -key               Key in hex
  -list              List the supported block ciphers
  -nopad             Do not pad ECB and CBC input
  -q, -quiet         Silence informational messages
  -section           CTR-ACPKM section length in blocks
  -selftest          Run the known-answer tests
  -speed             Run crypto speed test
  -syslog            Send log messages to syslog
  -taglen            CMAC length in bytes
  -version           Print version information
`)
}
