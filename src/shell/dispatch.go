package shell

import (
	"errors"
	"io"

	"picon/src/console"
)

var ErrNotFound = errors.New("command not found")

// Handler runs a command.  It gets the whole command, its own name included
// as the first argument, and writes its output to out.
type Handler interface {
	Run(out io.Writer, cmd *Command)
}

// HandlerFunc lets an ordinary function be a Handler.
type HandlerFunc func(out io.Writer, cmd *Command)

func (f HandlerFunc) Run(out io.Writer, cmd *Command) {
	f(out, cmd)
}

// Builtin pairs a command name with its handler.
type Builtin struct {
	Name    string
	Handler Handler
}

// Table maps command names to handlers.  It is built once at startup; lookups
// scan it in order, so the first entry wins if a name appears twice.
type Table struct {
	entries []Builtin
}

func NewTable(entries ...Builtin) *Table {
	t := &Table{entries: make([]Builtin, 0, len(entries))}
	t.entries = append(t.entries, entries...)
	return t
}

// Register adds a command at the end of the table.
func (t *Table) Register(name string, h Handler) {
	t.entries = append(t.entries, Builtin{Name: name, Handler: h})
}

func (t *Table) Lookup(name string) (Handler, error) {
	for i := range t.entries {
		if t.entries[i].Name == name {
			return t.entries[i].Handler, nil
		}
	}
	return nil, ErrNotFound
}

// Names lists the commands in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Execute runs cmd.  An unknown command is reported on out and counts as
// handled, so Execute only returns an error if out fails.
func (t *Table) Execute(out io.Writer, cmd *Command) error {
	h, err := t.Lookup(cmd.Path())
	if errors.Is(err, ErrNotFound) {
		return writeStrings(out, "unknown command: $", cmd.Path(), "\n")
	}
	h.Run(out, cmd)
	return nil
}

// writeStrings writes parts in order.  On the console they go out under one
// hold of its lock.
func writeStrings(out io.Writer, parts ...string) error {
	if c, ok := out.(*console.Console); ok {
		_, err := c.WriteStrings(parts...)
		return err
	}
	for _, p := range parts {
		if _, err := io.WriteString(out, p); err != nil {
			return err
		}
	}
	return nil
}
