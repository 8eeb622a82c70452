package trust

import (
	"fmt"
	"io"
	"strings"
)

type MaskLevel int

const (
	Nothing   MaskLevel = 0x0
	ErrorMask MaskLevel = 0x1
	WarnMask  MaskLevel = 0x2
	InfoMask  MaskLevel = 0x4
	DebugMask MaskLevel = 0x8
	StatsMask MaskLevel = 0x10
	fatalMask MaskLevel = 0x80
)

// Logger prints masked log lines to out.  On the board out is the console,
// which takes care of turning \n into \r\n.
type Logger struct {
	out   io.Writer
	level MaskLevel
	exit  func(code int)
}

// NewLogger logs everything to out.  Fatalf calls exit after printing; on the
// board there is no process to exit so that is usually an abort loop.
func NewLogger(out io.Writer, exit func(code int)) *Logger {
	return &Logger{
		out:   out,
		level: fatalMask | StatsMask | ErrorMask | WarnMask | InfoMask | DebugMask,
		exit:  exit,
	}
}

// SetLevel lets you set an error mask directly. You can pass in something like
// ErrorMask | DebugMask to control exactly what gets printed.  It returns the
// previous mask.  Fatal messages cannot be masked.
func (l *Logger) SetLevel(mask MaskLevel) MaskLevel {
	r := l.level & 0x1f
	l.level = (mask & 0x1f) | fatalMask
	return r
}

// Enabled reports whether messages at m would be printed.  Callers on hot
// paths check it first so the arguments are not boxed for nothing.
func (l *Logger) Enabled(m MaskLevel) bool {
	return l.level&m != 0
}

func (l *Logger) Level() MaskLevel {
	return l.level & 0x1f
}

// LevelUpTo returns the mask that prints name and everything more severe:
// "warn" is ErrorMask|WarnMask.  "stats" turns on everything.
func LevelUpTo(name string) (MaskLevel, error) {
	order := []MaskLevel{ErrorMask, WarnMask, InfoMask, DebugMask, StatsMask}
	names := []string{"error", "warn", "info", "debug", "stats"}
	if strings.ToLower(name) == "none" {
		return Nothing, nil
	}
	result := Nothing
	for i, n := range names {
		result |= order[i]
		if strings.ToLower(name) == n {
			return result, nil
		}
	}
	return Nothing, fmt.Errorf("unknown log level %q", name)
}

func (l *Logger) LevelToString() string {
	var parts []string
	for _, p := range []struct {
		m MaskLevel
		s string
	}{{ErrorMask, "error"}, {WarnMask, "warn"}, {InfoMask, "info"}, {DebugMask, "debug"}, {StatsMask, "stats"}} {
		if l.level&p.m > 0 {
			parts = append(parts, p.s)
		}
	}
	return strings.Join(parts, " ")
}

func (l *Logger) logf(m MaskLevel, format string, params ...interface{}) {
	if l.level&m == 0 {
		return
	}
	start := 0
	switch {
	case m&fatalMask > 0:
		fmt.Fprint(l.out, "FATAL:")
	case m&ErrorMask > 0:
		fmt.Fprint(l.out, "ERROR:")
	case m&WarnMask > 0:
		fmt.Fprint(l.out, " WARN:")
	case m&InfoMask > 0:
		fmt.Fprint(l.out, " INFO:")
	case m&DebugMask > 0:
		fmt.Fprint(l.out, "DEBUG:")
	case m&StatsMask > 0:
		s, ok := params[0].(string)
		if !ok {
			s = "unknown"
		}
		fmt.Fprintf(l.out, "STATS[%s]:", s)
		start = 1
	}
	if len(format) == 0 {
		format = "\n"
	} else if format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprintf(l.out, format, params[start:]...)
}

//Fatalf prints the given log message (format + params) and then calls the
//exit function with exitCode.  Fatalf is not maskable.
func (l *Logger) Fatalf(exitCode int, format string, params ...interface{}) {
	l.logf(fatalMask, format, params...)
	if l.exit != nil {
		l.exit(exitCode)
	}
}

//Errorf prints the given log message (format + params) using the ErrorMask level.
func (l *Logger) Errorf(format string, params ...interface{}) {
	l.logf(ErrorMask, format, params...)
}

//Warnf prints the given log message (format + params) using the WarnMask level.
func (l *Logger) Warnf(format string, params ...interface{}) {
	l.logf(WarnMask, format, params...)
}

//Infof prints the given log message (format + params) using the InfoMask level.
func (l *Logger) Infof(format string, params ...interface{}) {
	l.logf(InfoMask, format, params...)
}

//Debugf prints the given log message (format + params) using the DebugMask level.
func (l *Logger) Debugf(format string, params ...interface{}) {
	l.logf(DebugMask, format, params...)
}

//Statsf prints the given log message (format + params) using the StatsMask level and
//takes an extra parameter that will be visible in the log message as the category
//of stats that is reported.
func (l *Logger) Statsf(category string, format string, params ...interface{}) {
	l.logf(StatsMask, format, append([]interface{}{category}, params...)...)
}

// Discard is a logger that prints nothing but fatal messages, which go nowhere.
func Discard() *Logger {
	l := NewLogger(io.Discard, nil)
	l.SetLevel(Nothing)
	return l
}
