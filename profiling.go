package main

import (
	"os"
	"runtime/pprof"
	"runtime/trace"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// createProfile creates "path" or exits with exitcodes.Profiler.
func createProfile(what, path string) *os.File {
	tlog.Info.Printf("Writing %s to %s", what, path)
	f, err := os.Create(path)
	if err != nil {
		tlog.Fatal.Println(err)
		os.Exit(exitcodes.Profiler)
	}
	return f
}

// setupCpuprofile is called to handle a non-empty "-cpuprofile" cli argument
func setupCpuprofile(cpuprofileArg string) func() {
	f := createProfile("CPU profile", cpuprofileArg)
	if err := pprof.StartCPUProfile(f); err != nil {
		tlog.Fatal.Println(err)
		os.Exit(exitcodes.Profiler)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}

// setupMemprofile is called to handle a non-empty "-memprofile" cli argument.
// The profile is written when the returned function is called.
func setupMemprofile(memprofileArg string) func() {
	f := createProfile("memory profile", memprofileArg)
	return func() {
		if err := pprof.WriteHeapProfile(f); err != nil {
			tlog.Warn.Printf("memprofile: WriteHeapProfile failed: %v", err)
		}
		f.Close()
	}
}

// setupTrace is called to handle a non-empty "-trace" cli argument
func setupTrace(traceArg string) func() {
	f := createProfile("execution trace", traceArg)
	if err := trace.Start(f); err != nil {
		tlog.Fatal.Println(err)
		os.Exit(exitcodes.Profiler)
	}
	return func() {
		trace.Stop()
		f.Close()
	}
}
