package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
)

const (
	gitVersionNotSet = "[GitVersion not set - please compile using ./build.bash]"
	buildDateNotSet  = "0000-00-00"
)

var (
	// GitVersion is the akcrypt version according to git, set by build.bash
	GitVersion = gitVersionNotSet
	// BuildDate is a date string like "2017-09-06", set by build.bash
	BuildDate = buildDateNotSet
)

func init() {
	versionFromBuildInfo()
}

// raceDetector is set to true by race.go if we are compiled with "go build -race"
var raceDetector bool

// versionString returns a version string like this:
// akcrypt v0.3-12-gcf99cfd; 2022-05-12 go1.19 linux/amd64
func versionString() string {
	built := fmt.Sprintf("%s %s", BuildDate, runtime.Version())
	if raceDetector {
		built += " -race"
	}
	return fmt.Sprintf("%s %s; %s %s/%s",
		"akcrypt", GitVersion, built, runtime.GOOS, runtime.GOARCH)
}

// printVersion prints versionString()
func printVersion() {
	fmt.Println(versionString())
}

// versionFromBuildInfo tries to get some information out of the information baked in
// by the Go compiler. Does nothing when build.bash was used to build.
func versionFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	// Parse BuildSettings
	var vcsRevision, vcsTime string
	var vcsModified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			vcsRevision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			vcsModified, _ = strconv.ParseBool(s.Value)
		}
	}
	// Fill our version strings
	if GitVersion == gitVersionNotSet {
		GitVersion = info.Main.Version
		if GitVersion == "(devel)" && vcsRevision != "" {
			GitVersion = fmt.Sprintf("vcs.revision=%s", vcsRevision)
		}
		if vcsModified {
			GitVersion += "-dirty"
		}
	}
	if BuildDate == buildDateNotSet && vcsTime != "" {
		BuildDate = fmt.Sprintf("vcs.time=%s", vcsTime)
	}
}
