// Package shell is the line oriented command shell on the serial console:
// it edits a line, splits it into words and runs the command named by the
// first word.  Lines and words live in fixed arrays, nothing grows.
package shell

import (
	"errors"
	"fmt"

	"picon/src/gen"
)

// MaxArgs is how many words a command line may have, the command included.
const MaxArgs = 64

var (
	ErrEmpty       = errors.New("empty command")
	ErrTooManyArgs = fmt.Errorf("too many arguments (max %d)", MaxArgs)
)

// Command is one parsed line.  It always has at least one word; the first
// is the command's path.
type Command struct {
	args gen.StackVec[string]
}

// Parse splits line on spaces, skipping empty fields, and stores the words in
// storage.  A line with no words is ErrEmpty; a line with more words than
// storage holds is ErrTooManyArgs.  The words are substrings of line, so the
// Command is valid as long as line and storage are.
func Parse(line string, storage []string) (Command, error) {
	args := gen.NewStackVec(storage)
	start := -1
	for i := 0; i <= len(line); i++ {
		if i < len(line) && line[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start < 0 {
			continue
		}
		if err := args.Push(line[start:i]); err != nil {
			return Command{}, ErrTooManyArgs
		}
		start = -1
	}
	if args.IsEmpty() {
		return Command{}, ErrEmpty
	}
	return Command{args: args}, nil
}

// Path is the first word, the name the command is looked up by.
func (c *Command) Path() string {
	return c.args.AsSlice()[0]
}

// Args is every word including the path.
func (c *Command) Args() []string {
	return c.args.AsSlice()
}

func (c *Command) Len() int {
	return c.args.Len()
}
