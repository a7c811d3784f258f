package cmd

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

var MemCmd = cmd(&Command{
	Name:  "mem",
	Alias: "x",
	Desc:  "Read memory: mem <addr> <size>. Write hex bytes: mem <addr> = <hex>.",
	Run: func(c *Context, args []string) error {
		if len(args) == 3 && args[1] == "=" {
			addr, err := parseUint(args[0])
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(args[2])
			if err != nil {
				return errors.Wrap(err, "bad hex")
			}
			return c.T.MemWrite(addr, data)
		}
		if len(args) != 2 {
			return errors.New("usage: mem <addr> <size>")
		}
		addr, err := parseUint(args[0])
		if err != nil {
			return err
		}
		size, err := parseUint(args[1])
		if err != nil {
			return err
		}
		mem, err := c.T.MemRead(addr, size)
		if err != nil {
			return err
		}
		for _, line := range models.HexDump(addr, mem, c.bits()) {
			c.Printf("  %s\n", line)
		}
		return nil
	},
})
