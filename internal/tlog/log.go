// Package tlog is a "toggled logger" that can be enabled and disabled and
// provides coloring.
package tlog

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/syslog"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

const (
	// ProgramName is used in log reports.
	ProgramName = "akcrypt"
	wpanicMsg   = "-wpanic turns this warning into a panic: "
)

// Audit levels, the values of the log_level option.
const (
	// LevelNone prints warnings and fatal errors only.
	LevelNone = 0
	// LevelStandard adds informational messages.
	LevelStandard = 1
	// LevelMaximum adds debug messages, including every key lifecycle event.
	LevelMaximum = 2
)

// Escape sequences for terminal colors. These are set in init() if and only
// if stdout is a terminal. Otherwise they are empty strings.
var (
	// ColorReset is used to reset terminal colors.
	ColorReset string
	// ColorGrey is a terminal color setting string.
	ColorGrey string
	// ColorRed is a terminal color setting string.
	ColorRed string
	// ColorGreen is a terminal color setting string.
	ColorGreen string
	// ColorYellow is a terminal color setting string.
	ColorYellow string
)

// JSONDump writes the object in json form.
func JSONDump(obj interface{}) string {
	b, err := json.MarshalIndent(obj, "", "\t")
	if err != nil {
		return err.Error()
	}

	return string(b)
}

// toggledLogger - a Logger than can be enabled and disabled
type toggledLogger struct {
	// Enable or disable output
	Enabled bool
	// Panic after logging a message, useful in regression tests
	Wpanic bool
	// Private prefix and postfix are used for coloring
	prefix  string
	postfix string

	*log.Logger
}

// trimNewline removes one trailing newline from "msg"
func trimNewline(msg string) string {
	return strings.TrimSuffix(msg, "\n")
}

func (l *toggledLogger) Printf(format string, v ...interface{}) {
	if !l.Enabled {
		return
	}
	msg := trimNewline(fmt.Sprintf(format, v...))
	l.Logger.Print(l.prefix + msg + l.postfix)
	if l.Wpanic {
		l.Logger.Panic(wpanicMsg + msg)
	}
}

func (l *toggledLogger) Println(v ...interface{}) {
	if !l.Enabled {
		return
	}
	msg := trimNewline(fmt.Sprint(v...))
	l.Logger.Println(l.prefix + msg + l.postfix)
	if l.Wpanic {
		l.Logger.Panic(wpanicMsg + msg)
	}
}

// Debug logs debug messages
// Can be enabled by passing "-d"
var Debug *toggledLogger

// Info logs informational message
// Can be disabled by passing "-q"
var Info *toggledLogger

// Warn logs warnings,
// meaning nothing serious by itself but might indicate problems.
// Passing "-wpanic" will make this function panic after printing the message.
var Warn *toggledLogger

// Fatal error, we are about to exit
var Fatal *toggledLogger

func init() {
	if terminal.IsTerminal(int(os.Stdout.Fd())) {
		ColorReset = "\033[0m"
		ColorGrey = "\033[2m"
		ColorRed = "\033[31m"
		ColorGreen = "\033[32m"
		ColorYellow = "\033[33m"
	}

	// Info and Debug go to stderr: stdout carries the output of the data
	// operations.
	Debug = &toggledLogger{
		Logger:  log.New(os.Stderr, "", 0),
		prefix:  ColorGrey,
		postfix: ColorReset,
	}
	Info = &toggledLogger{
		Enabled: true,
		Logger:  log.New(os.Stderr, "", 0),
	}
	Warn = &toggledLogger{
		Enabled: true,
		Logger:  log.New(os.Stderr, "", 0),
		prefix:  ColorYellow,
		postfix: ColorReset,
	}
	Fatal = &toggledLogger{
		Enabled: true,
		Logger:  log.New(os.Stderr, "", 0),
		prefix:  ColorRed,
		postfix: ColorReset,
	}
}

// SetLevel switches Debug and Info on or off according to an audit level.
// Levels above LevelMaximum are treated as LevelMaximum.
func SetLevel(level int) {
	Info.Enabled = level >= LevelStandard
	Debug.Enabled = level >= LevelMaximum
}

// SetOutput redirects all loggers to w.
func SetOutput(w io.Writer) {
	for _, l := range []*toggledLogger{Debug, Info, Warn, Fatal} {
		l.SetOutput(w)
	}
}

// SwitchAllToSyslog redirects every logger to syslog, each with a matching
// priority.
func SwitchAllToSyslog() {
	Info.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_INFO)
	Debug.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_DEBUG)
	Warn.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_WARNING)
	Fatal.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_CRIT)
}

// SwitchToSyslog redirects the output of this logger to syslog.
func (l *toggledLogger) SwitchToSyslog(p syslog.Priority) {
	w, err := syslog.New(p, ProgramName)
	if err != nil {
		Warn.Printf("SwitchToSyslog: %v", err)
	} else {
		l.SetOutput(w)
	}
}
