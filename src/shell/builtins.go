package shell

import "io"

// Builtins is the command table the console starts with.
func Builtins() *Table {
	return NewTable(
		Builtin{Name: "echo", Handler: HandlerFunc(echo)},
	)
}

// echo prints its arguments separated by single spaces.
func echo(out io.Writer, cmd *Command) {
	for i, arg := range cmd.Args()[1:] {
		if i > 0 {
			io.WriteString(out, " ")
		}
		io.WriteString(out, arg)
	}
	io.WriteString(out, "\n")
}
