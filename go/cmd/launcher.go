package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type command struct {
	name, desc string
	main       func(args []string) int
}

var commands map[string]*command
var order []string
var pad int

// Stdout and Stderr are where commands print. Tests swap them out.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func init() { commands = make(map[string]*command) }

func Register(name, desc string, main func(args []string) int) {
	if len(name) > pad {
		pad = len(name)
	}
	commands[name] = &command{name, desc, main}
	order = append(order, name)
}

func usage(prog string) {
	fmt.Fprintln(Stderr, "Commands:")
	fstr := fmt.Sprintf("  %%-%ds | %%s\n", pad)
	for _, name := range order {
		cmd := commands[name]
		fmt.Fprintf(Stderr, fstr, cmd.name, cmd.desc)
	}
	fmt.Fprintf(Stderr, "\nExample: %s code --arch x86_64 --os linux --format hex -i 'b83c000000bf2a0000000f05'\n\n", prog)
}

// Main dispatches args[1] to a registered subcommand and returns the process
// exit status.
func Main(args []string) int {
	if len(args) < 2 {
		usage(args[0])
		return 2
	}
	switch args[1] {
	case "-h", "--help", "help":
		usage(args[0])
		return 0
	}
	cmd, ok := commands[args[1]]
	if !ok {
		fmt.Fprintf(Stderr, "Command '%s' not found.\n\n", args[1])
		usage(args[0])
		return 2
	}
	sub := append([]string{strings.Join(args[:2], " ")}, args[2:]...)
	return cmd.main(sub)
}
