package shell

import (
	"errors"
	"unicode/utf8"
	"unsafe"

	"picon/src/console"
	"picon/src/lib/trust"
)

const DefaultPrompt = "> "

// Shell is the prompt, edit, parse, dispatch loop on a console.
//
// The line, the words and the parsed command are reused for every line, so
// running a command does not allocate.
type Shell struct {
	con      *console.Console
	table    *Table
	prefix   string
	echoPath bool
	log      *trust.Logger

	lineBuf [MaxLine]byte
	argBuf  [MaxArgs]string
	cmd     Command
}

type Option func(*Shell)

// WithTable replaces the builtin command table.
func WithTable(t *Table) Option {
	return func(s *Shell) { s.table = t }
}

// WithPathEcho controls the "path: <command>" line printed before a command
// runs.  It is on by default.
func WithPathEcho(on bool) Option {
	return func(s *Shell) { s.echoPath = on }
}

func WithLogger(l *trust.Logger) Option {
	return func(s *Shell) { s.log = l }
}

func New(con *console.Console, prefix string, opts ...Option) *Shell {
	s := &Shell{
		con:      con,
		table:    Builtins(),
		prefix:   prefix,
		echoPath: true,
		log:      trust.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run is the console's main loop.  It never returns.
func (s *Shell) Run() {
	for {
		if err := s.RunOnce(); err != nil {
			s.log.Errorf("console: %v", err)
		}
	}
}

// Serve runs the loop until the console fails, for ports that can close.
func (s *Shell) Serve() error {
	for {
		if err := s.RunOnce(); err != nil {
			return err
		}
	}
}

// RunOnce prompts, reads one line and runs it.  Bad lines are reported on
// the console and are not errors; only a failing console is.
func (s *Shell) RunOnce() error {
	if _, err := s.con.WriteStrings("\n", s.prefix); err != nil {
		return err
	}

	line, err := ReadLine(s.con, s.lineBuf[:])
	if err != nil && !errors.Is(err, ErrLineTooLong) {
		return err
	}
	if _, werr := s.con.WriteStrings("\n"); werr != nil {
		return werr
	}
	if err == nil && !utf8.Valid(line) {
		err = ErrInvalidText
	}
	if err != nil {
		if s.log.Enabled(trust.DebugMask) {
			s.log.Debugf("rejected line: %v", err)
		}
		s.con.WriteStrings("error: ", err.Error(), "\n")
		return nil
	}

	s.cmd, err = Parse(lineText(line), s.argBuf[:])
	if err != nil {
		s.con.WriteStrings("parse error: ", err.Error(), "\n")
		return nil
	}

	if s.echoPath {
		s.con.WriteStrings("path: ", s.cmd.Path(), "\n")
	}
	if s.log.Enabled(trust.DebugMask) {
		s.log.Debugf("dispatch %s with %d args", s.cmd.Path(), s.cmd.Len()-1)
	}
	return s.table.Execute(s.con, &s.cmd)
}

// lineText views the line buffer as a string without copying it.  The words
// Parse makes point into the buffer, which is overwritten by the next line.
func lineText(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
