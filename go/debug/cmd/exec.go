package cmd

import (
	"sort"

	"github.com/pkg/errors"
)

// Where prints the current location, or the exit status once the guest is
// gone.
func (c *Context) Where() {
	if c.T.Exited() {
		c.Printf("exited with code %d\n", c.T.ExitCode())
		return
	}
	pc, err := c.T.PC()
	if err != nil {
		c.Printf("pc: %v\n", err)
		return
	}
	if lines, ok := c.Disassemble(pc, 1); ok && len(lines) > 0 {
		c.Printf("%s\n", lines[0])
	} else {
		c.Printf("0x%x\n", pc)
	}
}

func (c *Context) step() error {
	if c.RR != nil {
		return c.RR.Step()
	}
	return c.T.Step()
}

var StepCmd = cmd(&Command{
	Name:  "step",
	Alias: "s",
	Desc:  "Execute [n] instructions.",
	Run: func(c *Context, args []string) error {
		n, err := optCount(args, 0, 1)
		if err != nil {
			return err
		}
		for i := uint64(0); i < n && !c.T.Exited(); i++ {
			if err := c.step(); err != nil {
				return err
			}
		}
		c.Where()
		return nil
	},
})

var ContinueCmd = cmd(&Command{
	Name:  "continue",
	Alias: "c",
	Desc:  "Run until a breakpoint or exit.",
	Run: func(c *Context, args []string) error {
		if c.T.Exited() {
			return errors.New("guest has exited")
		}
		if c.RR == nil {
			if err := c.T.Continue(); err != nil {
				return err
			}
			c.Where()
			return nil
		}
		// recorded runs go one instruction at a time
		for {
			if err := c.RR.Step(); err != nil {
				return err
			}
			if c.T.Exited() {
				break
			}
			pc, err := c.T.PC()
			if err != nil {
				return err
			}
			if c.breaks[pc] {
				break
			}
		}
		c.Where()
		return nil
	},
})

var BackCmd = cmd(&Command{
	Name: "back",
	Desc: "Undo [n] recorded steps.",
	Run: func(c *Context, args []string) error {
		if c.RR == nil {
			return errors.New("back requires record/replay (--rr)")
		}
		n, err := optCount(args, 0, 1)
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			if err := c.RR.Back(); err != nil {
				return err
			}
		}
		c.Where()
		return nil
	},
})

var BreakCmd = cmd(&Command{
	Name: "break",
	Desc: "Set a breakpoint: break <addr>.",
	Run: func(c *Context, args []string) error {
		if len(args) != 1 {
			return errors.New("usage: break <addr>")
		}
		addr, err := parseUint(args[0])
		if err != nil {
			return err
		}
		c.breaks[addr] = true
		c.T.AddBreakpoint(addr)
		c.Printf("breakpoint at 0x%x\n", addr)
		return nil
	},
})

var DeleteCmd = cmd(&Command{
	Name: "delete",
	Desc: "Remove a breakpoint: delete <addr>.",
	Run: func(c *Context, args []string) error {
		if len(args) != 1 {
			return errors.New("usage: delete <addr>")
		}
		addr, err := parseUint(args[0])
		if err != nil {
			return err
		}
		if !c.breaks[addr] {
			return errors.Errorf("no breakpoint at 0x%x", addr)
		}
		delete(c.breaks, addr)
		c.T.RemoveBreakpoint(addr)
		return nil
	},
})

var DisCmd = cmd(&Command{
	Name: "dis",
	Desc: "Disassemble: dis [addr] [count].",
	Run: func(c *Context, args []string) error {
		var addr uint64
		var err error
		if len(args) > 0 {
			addr, err = parseUint(args[0])
		} else {
			addr, err = c.T.PC()
		}
		if err != nil {
			return err
		}
		count, err := optCount(args, 1, 8)
		if err != nil {
			return err
		}
		lines, ok := c.Disassemble(addr, int(count))
		if !ok {
			return errors.New("disassembly unavailable")
		}
		for _, line := range lines {
			c.Printf("  %s\n", line)
		}
		return nil
	},
})

var InfoCmd = cmd(&Command{
	Name: "info",
	Desc: "Show session state and breakpoints.",
	Run: func(c *Context, args []string) error {
		pc, _ := c.T.PC()
		c.Printf("arch %s, pc 0x%x\n", c.T.Arch().Name, pc)
		if c.T.Exited() {
			c.Printf("exited with code %d\n", c.T.ExitCode())
		}
		if c.RR != nil {
			c.Printf("recorded steps: %d\n", c.RR.Len())
		}
		addrs := make([]uint64, 0, len(c.breaks))
		for addr := range c.breaks {
			addrs = append(addrs, addr)
		}
		sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
		for _, addr := range addrs {
			c.Printf("break 0x%x\n", addr)
		}
		return nil
	},
})

var QuitCmd = cmd(&Command{
	Name:  "quit",
	Alias: "q",
	Desc:  "Leave the debugger.",
	Run: func(c *Context, args []string) error {
		c.Quit = true
		return nil
	},
})

var HelpCmd = cmd(&Command{
	Name: "help",
	Desc: "List commands.",
	Run: func(c *Context, args []string) error {
		for _, name := range Names() {
			cmd := Commands[name]
			if cmd.Alias != "" {
				c.Printf("  %-9s (%s) %s\n", name, cmd.Alias, cmd.Desc)
			} else {
				c.Printf("  %-13s %s\n", name, cmd.Desc)
			}
		}
		return nil
	},
})
