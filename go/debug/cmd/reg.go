package cmd

import (
	"regexp"
	"strconv"
	"strings"
)

var strEqNumRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9]*)=((-|0|0x|0b)?[0-9a-fA-F]+)$`)

var RegCmd = cmd(&Command{
	Name:  "reg",
	Alias: "r",
	Desc:  "Read/write regs.",
	Run: func(c *Context, args []string) error {
		if len(args) == 0 {
			regs, err := c.T.RegDump()
			if err != nil {
				return err
			}
			for _, reg := range regs {
				c.Printf("%s 0x%x\n", reg.Name, reg.Val)
			}
			return nil
		}
		for _, v := range args {
			var value uint64
			reg := v
			match := strEqNumRe.FindStringSubmatch(v)
			if len(match) > 0 {
				reg = match[1]
				var err error
				if match[2][0] == '-' {
					var n int64
					n, err = strconv.ParseInt(match[2], 0, c.bits())
					value = uint64(n)
				} else {
					value, err = strconv.ParseUint(match[2], 0, c.bits())
				}
				if err != nil {
					c.Printf("error parsing %s value: %v\n", reg, err)
					continue
				}
			}
			enum, ok := c.T.Arch().RegEnum(reg)
			if !ok {
				if strings.Contains(reg, "=") {
					c.Printf("invalid assignment: %s\n", reg)
				} else {
					c.Printf("reg %s not found\n", reg)
				}
				continue
			}
			if len(match) > 0 {
				if err := c.T.RegWrite(enum, value); err != nil {
					c.Printf("%s: %v\n", v, err)
				}
			} else {
				val, _ := c.T.RegRead(enum)
				c.Printf("%s 0x%x\n", reg, val)
			}
		}
		return nil
	},
})
