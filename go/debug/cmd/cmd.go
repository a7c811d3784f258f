package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

type Command struct {
	Name string
	Desc string
	// Alias is an optional short name.
	Alias string
	Run   func(c *Context, args []string) error
}

var Commands = make(map[string]*Command)

func cmd(c *Command) *Command {
	if c.Run == nil {
		panic(fmt.Sprintf("Command.Run must be set: %s", c.Name))
	}
	Commands[c.Name] = c
	if c.Alias != "" {
		Commands[c.Alias] = c
	}
	return c
}

// Lookup finds a command by name or alias.
func Lookup(name string) (*Command, bool) {
	c, ok := Commands[name]
	return c, ok
}

// Names lists the canonical command names, sorted.
func Names() []string {
	var names []string
	for name, c := range Commands {
		if name == c.Name {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Run parses and executes one command line. Command failures are printed,
// not returned, so a bad command never ends the session.
func Run(c *Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		c.Printf("parse error: %v\n", err)
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]
	if cmd, ok := Lookup(name); ok {
		if err := cmd.Run(c, args); err != nil {
			c.Printf("error: %v\n", err)
		}
	} else {
		c.Printf("command not found.\n")
	}
	return nil
}

func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	return n, errors.Wrapf(err, "bad number %q", s)
}

// optCount parses an optional repeat count argument.
func optCount(args []string, idx int, def uint64) (uint64, error) {
	if len(args) <= idx {
		return def, nil
	}
	return parseUint(args[idx])
}
