package tlog

import (
	"bytes"
	"log"
	"log/syslog"
	"testing"
)

// Test that trimNewline() works as expected
func TestTrimNewline(t *testing.T) {
	testTable := []struct {
		in   string
		want string
	}{
		{"...\n", "..."},
		{"\n...\n", "\n..."},
		{"", ""},
		{"\n", ""},
		{"\n\n", "\n"},
		{"   ", "   "},
	}
	for _, v := range testTable {
		have := trimNewline(v.in)
		if v.want != have {
			t.Errorf("want=%q have=%q", v.want, have)
		}
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelStandard)
	testTable := []struct {
		level       int
		info, debug bool
	}{
		{LevelNone, false, false},
		{LevelStandard, true, false},
		{LevelMaximum, true, true},
		{7, true, true},
	}
	for _, v := range testTable {
		SetLevel(v.level)
		if Info.Enabled != v.info || Debug.Enabled != v.debug {
			t.Errorf("level %d: info=%v debug=%v", v.level, Info.Enabled, Debug.Enabled)
		}
	}
}

func TestPrintfTrimsNewline(t *testing.T) {
	var buf bytes.Buffer
	l := &toggledLogger{Enabled: true, Logger: log.New(&buf, "", 0)}
	l.Printf("hello %d\n", 42)
	if buf.String() != "hello 42\n" {
		t.Errorf("have %q", buf.String())
	}
	buf.Reset()
	l.Enabled = false
	l.Println("quiet")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestSwitchToSyslog(t *testing.T) {
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_DEBUG, ProgramName)
	if err != nil {
		t.Skipf("syslog not available: %v", err)
	}
	w.Close()

	var buf bytes.Buffer
	l := &toggledLogger{Enabled: true, Logger: log.New(&buf, "", 0)}
	l.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_DEBUG)
	l.Printf("switched")
	if buf.Len() != 0 {
		t.Errorf("logger still writes to its old output: %q", buf.String())
	}
}
