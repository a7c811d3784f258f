package cmd

import (
	"fmt"
	"io"

	"github.com/lunixbochs/corntool/go/models"
)

// Rewinder records steps so they can be undone.
type Rewinder interface {
	Step() error
	Back() error
	Len() int
}

// Disassembler is implemented by targets that can render instructions.
type Disassembler interface {
	Disassemble(addr uint64, count int) ([]string, error)
}

type Context struct {
	io.Writer
	T models.Target
	// RR is nil unless record/replay is on.
	RR Rewinder

	Quit bool

	breaks map[uint64]bool
}

func NewContext(w io.Writer, t models.Target, rr Rewinder) *Context {
	return &Context{Writer: w, T: t, RR: rr, breaks: make(map[uint64]bool)}
}

func (c *Context) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(c, format, a...)
}

func (c *Context) bits() int {
	if bits := c.T.Arch().Bits; bits > 0 {
		return bits
	}
	return 64
}

// Disassemble renders instructions at addr when the target supports it.
func (c *Context) Disassemble(addr uint64, count int) ([]string, bool) {
	d, ok := c.T.(Disassembler)
	if !ok {
		return nil, false
	}
	lines, err := d.Disassemble(addr, count)
	if err != nil {
		return nil, false
	}
	return lines, true
}
