package trust

import (
	"bytes"
	"testing"
)

func TestMasking(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, nil)
	l.SetLevel(ErrorMask | WarnMask)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden too")
	l.Warnf("line %d rejected", 7)
	l.Errorf("bad thing\n")

	want := " WARN:line 7 rejected\nERROR:bad thing\n"
	if buf.String() != want {
		t.Errorf("expected %q but got %q", want, buf.String())
	}
}

func TestEnabled(t *testing.T) {
	l := NewLogger(&bytes.Buffer{}, nil)
	l.SetLevel(ErrorMask | WarnMask)
	if !l.Enabled(WarnMask) || l.Enabled(DebugMask) {
		t.Errorf("Enabled disagrees with the mask %x", l.Level())
	}
	if Discard().Enabled(ErrorMask) {
		t.Errorf("Discard should have nothing enabled")
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, nil)
	l.Statsf("shell", "%d lines", 3)
	if buf.String() != "STATS[shell]:3 lines\n" {
		t.Errorf("unexpected stats line %q", buf.String())
	}
}

func TestFatalIgnoresMask(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	l := NewLogger(&buf, func(c int) { code = c })
	l.SetLevel(Nothing)
	l.Fatalf(3, "out of %s", "luck")
	if code != 3 {
		t.Errorf("exit was called with %d, expected 3", code)
	}
	if buf.String() != "FATAL:out of luck\n" {
		t.Errorf("unexpected fatal line %q", buf.String())
	}
}

func TestLevelUpTo(t *testing.T) {
	tests := []struct {
		name string
		want MaskLevel
		ok   bool
	}{
		{"error", ErrorMask, true},
		{"WARN", ErrorMask | WarnMask, true},
		{"debug", ErrorMask | WarnMask | InfoMask | DebugMask, true},
		{"none", Nothing, true},
		{"chatty", Nothing, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LevelUpTo(tt.name)
			if (err == nil) != tt.ok {
				t.Fatalf("unexpected error result: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected mask %x but got %x", tt.want, got)
			}
		})
	}
}

func TestLevelToString(t *testing.T) {
	l := NewLogger(nil, nil)
	l.SetLevel(ErrorMask | InfoMask)
	if s := l.LevelToString(); s != "error info" {
		t.Errorf("unexpected level string %q", s)
	}
}
