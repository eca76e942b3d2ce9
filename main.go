package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/gftables"
	"github.com/akcrypt/akcrypt/internal/options"
	"github.com/akcrypt/akcrypt/internal/selftest"
	"github.com/akcrypt/akcrypt/internal/speed"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// loadOptions reads "-config" (if given), applies the command line
// overrides, publishes the result and builds the Kuznyechik tables.
func loadOptions(args *argContainer) (options.Options, error) {
	o := options.Get()
	if args.config != "" {
		path, err := filepath.Abs(args.config)
		if err != nil {
			return o, exitcodes.Errorf(exitcodes.LoadConf, "Invalid \"-config\" setting: %v", err)
		}
		o, err = options.Load(path)
		if err != nil {
			return o, exitcodes.Wrap(err, exitcodes.LoadConf)
		}
		tlog.Debug.Printf("Using options file %s", path)
	}
	if args.reversed {
		o.ReversedTables = true
	}
	if args.debug {
		o.LogLevel = options.LogMaximum
	}
	if args.quiet {
		o.LogLevel = options.LogNone
	}
	if err := options.Set(o); err != nil {
		return o, exitcodes.Wrap(err, exitcodes.LoadConf)
	}
	tlog.SetLevel(o.LogLevel)

	v := gftables.Standard
	if o.ReversedTables {
		v = gftables.Reversed
	}
	if err := gftables.InitDefault(v); err != nil {
		return o, exitcodes.Wrap(err, exitcodes.Init)
	}
	tlog.Debug.Printf("Kuznyechik tables: %s", v)
	return o, nil
}

// runSelftest runs the known-answer tests of all block ciphers.
func runSelftest() error {
	if err := selftest.RunAll(context.Background()); err != nil {
		return exitcodes.Wrap(err, exitcodes.SelfTest)
	}
	tlog.Debug.Printf("Self-test passed")
	return nil
}

// run executes the operation selected by "args".
func run(args *argContainer, stdin io.Reader, stdout, stderr io.Writer) error {
	switch {
	case args.list:
		return list(stdout)
	case args.info:
		return info(stdout)
	case args.selftest:
		if err := runSelftest(); err != nil {
			return err
		}
		tlog.Info.Println(tlog.ColorGreen + "Self-test passed." + tlog.ColorReset)
		return nil
	case args.speed:
		speed.Run()
		return nil
	}
	op := args.op()
	if op == opNone {
		helpShort()
		return exitcodes.NewErr("No operation given", exitcodes.Usage)
	}
	if !args.noselftest {
		if err := runSelftest(); err != nil {
			return err
		}
	}
	return runDataOp(args, op, stdin, stdout, stderr)
}

func main() {
	args, err := parseCliOpts(os.Args)
	if err != nil {
		tlog.Fatal.Println(err)
		exitcodes.Exit(err)
	}
	// "-version"
	if args.version {
		printVersion()
		os.Exit(0)
	}
	// "-wpanic"
	if args.wpanic {
		tlog.Warn.Wpanic = true
		tlog.Debug.Printf("Panicking on warnings")
	}
	// "-syslog"
	if args.syslog {
		tlog.SwitchAllToSyslog()
	}
	if _, err = loadOptions(&args); err != nil {
		tlog.Fatal.Println(err)
		exitcodes.Exit(err)
	}
	var stops []func()
	// "-cpuprofile"
	if args.cpuprofile != "" {
		stops = append(stops, setupCpuprofile(args.cpuprofile))
	}
	// "-memprofile"
	if args.memprofile != "" {
		stops = append(stops, setupMemprofile(args.memprofile))
	}
	// "-trace"
	if args.trace != "" {
		stops = append(stops, setupTrace(args.trace))
	}
	err = run(&args, os.Stdin, os.Stdout, os.Stderr)
	for _, stop := range stops {
		stop()
	}
	if err != nil {
		tlog.Fatal.Println(err)
		exitcodes.Exit(err)
	}
}
