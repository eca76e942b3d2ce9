package main

// Should be initialized before anything else.
// This import line MUST be in the alphabetically first source code file of
// package main!
import (
	_ "github.com/akcrypt/akcrypt/internal/ensurefds012"

	"fmt"
	"strings"

	"github.com/integrii/flaggy"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// argContainer stores the parsed CLI options and arguments
type argContainer struct {
	debug, quiet, wpanic, syslog, version, info, list, selftest, noselftest,
	speed, reversed, nopad bool
	// Data operations, at most one may be set
	ecbEncrypt, ecbDecrypt, cbcEncrypt, cbcDecrypt, ctr, ctrACPKM, cmac bool
	alg, key, iv, config, cpuprofile, memprofile, trace string
	// taglen and section are 0 when the algorithm default should be used
	taglen, section int
}

// dataOp is the data operation selected on the command line.
type dataOp int

const (
	opNone dataOp = iota
	opECBEncrypt
	opECBDecrypt
	opCBCEncrypt
	opCBCDecrypt
	opCTR
	opCTRACPKM
	opCMAC
)

func (o dataOp) String() string {
	return [...]string{"none", "ecb-encrypt", "ecb-decrypt", "cbc-encrypt",
		"cbc-decrypt", "ctr", "ctr-acpkm", "cmac"}[o]
}

// op returns the selected data operation.
func (args *argContainer) op() dataOp {
	switch {
	case args.ecbEncrypt:
		return opECBEncrypt
	case args.ecbDecrypt:
		return opECBDecrypt
	case args.cbcEncrypt:
		return opCBCEncrypt
	case args.cbcDecrypt:
		return opCBCDecrypt
	case args.ctr:
		return opCTR
	case args.ctrACPKM:
		return opCTRACPKM
	case args.cmac:
		return opCMAC
	}
	return opNone
}

// parseCliOpts - parse command line options (i.e. arguments that start with "-")
func parseCliOpts(osArgs []string) (args argContainer, err error) {
	p := flaggy.NewParser(tlog.ProgramName)
	p.Description = "block cipher engine for Magma, Kuznyechik and SM4"
	p.ShowVersionWithVersionFlag = false

	p.Bool(&args.debug, "d", "debug", "Enable debug output")
	p.Bool(&args.quiet, "q", "quiet", "Quiet - silence informational messages")
	p.Bool(&args.wpanic, "wpanic", "", "When encountering a warning, panic and exit immediately")
	p.Bool(&args.syslog, "syslog", "", "Send log messages to syslog instead of stderr")
	p.Bool(&args.version, "version", "", "Print version and exit")
	p.Bool(&args.info, "info", "", "Print the active options")
	p.Bool(&args.list, "list", "", "List the supported block ciphers")
	p.Bool(&args.selftest, "selftest", "", "Run the known-answer tests and exit")
	p.Bool(&args.noselftest, "noselftest", "", "Skip the known-answer tests before data operations")
	p.Bool(&args.speed, "speed", "", "Run crypto speed test")
	p.Bool(&args.reversed, "reversed", "", "Use the byte reversed Kuznyechik tables")
	p.Bool(&args.nopad, "nopad", "", "Do not pad ECB and CBC input")

	p.Bool(&args.ecbEncrypt, "ecb-encrypt", "", "Encrypt stdin in ECB mode")
	p.Bool(&args.ecbDecrypt, "ecb-decrypt", "", "Decrypt stdin in ECB mode")
	p.Bool(&args.cbcEncrypt, "cbc-encrypt", "", "Encrypt stdin in CBC mode")
	p.Bool(&args.cbcDecrypt, "cbc-decrypt", "", "Decrypt stdin in CBC mode")
	p.Bool(&args.ctr, "ctr", "", "Encrypt or decrypt stdin in CTR mode")
	p.Bool(&args.ctrACPKM, "ctr-acpkm", "", "Encrypt or decrypt stdin in CTR-ACPKM mode")
	p.Bool(&args.cmac, "cmac", "", "Print the CMAC of stdin")

	args.alg = "kuznyechik"
	p.String(&args.alg, "alg", "", "Block cipher name or OID")
	p.String(&args.key, "key", "", "Key in hex")
	p.String(&args.iv, "iv", "", "IV in hex. Generated and printed to stderr when encrypting without one")
	p.String(&args.config, "config", "", "Load options from the specified TOML file")
	p.String(&args.cpuprofile, "cpuprofile", "", "Write cpu profile to specified file")
	p.String(&args.memprofile, "memprofile", "", "Write memory profile to specified file")
	p.String(&args.trace, "trace", "", "Write execution trace to file")
	p.Int(&args.taglen, "taglen", "", "CMAC length in bytes, default one block")
	p.Int(&args.section, "section", "", "CTR-ACPKM section length in blocks, default from the options")

	var rest []string
	if len(osArgs) > 1 {
		rest = osArgs[1:]
	}
	// Actual parsing
	if err = p.ParseArgs(rest); err != nil {
		return args, exitcodes.Errorf(exitcodes.Usage, "Invalid command line: %v. Try '%s -help'.", err, tlog.ProgramName)
	}
	if err = checkArgs(&args); err != nil {
		return args, err
	}
	return args, nil
}

// checkArgs rejects contradicting options.
func checkArgs(args *argContainer) error {
	if n := countOpFlags(args); n > 1 {
		return exitcodes.NewErr(fmt.Sprintf("At most one operation flag may be given, have %d: %s",
			n, strings.Join(opFlagNames(args), " ")), exitcodes.Usage)
	}
	if args.debug && args.quiet {
		return exitcodes.NewErr("The options -d and -q cannot be used at the same time", exitcodes.Usage)
	}
	if args.taglen < 0 {
		return exitcodes.NewErr("-taglen cannot be negative", exitcodes.Usage)
	}
	if args.section < 0 {
		return exitcodes.NewErr("-section cannot be negative", exitcodes.Usage)
	}
	if args.taglen != 0 && !args.cmac {
		return exitcodes.NewErr("-taglen only makes sense with -cmac", exitcodes.Usage)
	}
	if args.section != 0 && !args.ctrACPKM {
		return exitcodes.NewErr("-section only makes sense with -ctr-acpkm", exitcodes.Usage)
	}
	if args.nopad && !(args.ecbEncrypt || args.ecbDecrypt || args.cbcEncrypt || args.cbcDecrypt) {
		return exitcodes.NewErr("-nopad only makes sense with ECB and CBC", exitcodes.Usage)
	}
	return nil
}

// countOpFlags counts the number of operation flags we were passed.
func countOpFlags(args *argContainer) int {
	return len(opFlagNames(args))
}

func opFlagNames(args *argContainer) []string {
	flags := []struct {
		set  bool
		name string
	}{
		{args.info, "-info"},
		{args.list, "-list"},
		{args.selftest, "-selftest"},
		{args.speed, "-speed"},
		{args.ecbEncrypt, "-ecb-encrypt"},
		{args.ecbDecrypt, "-ecb-decrypt"},
		{args.cbcEncrypt, "-cbc-encrypt"},
		{args.cbcDecrypt, "-cbc-decrypt"},
		{args.ctr, "-ctr"},
		{args.ctrACPKM, "-ctr-acpkm"},
		{args.cmac, "-cmac"},
	}
	var names []string
	for _, f := range flags {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}
