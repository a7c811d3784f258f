package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const keyWidth = 10

func row(key, val string) string {
	return runewidth.FillRight(key, keyWidth) + val
}

// Table renders r as aligned text lines. Lines wider than width are
// truncated; width <= 0 disables truncation.
func (r *Report) Table(width int) []string {
	target := []string{r.Target.Mode, r.Target.Arch, r.Target.OS}
	target = append(target, r.Target.Argv...)
	lines := []string{
		row("id", r.ID),
		row("target", strings.Join(target, " ")),
		row("entry", fmt.Sprintf("%#x", r.Entry)),
		row("exit", fmt.Sprintf("%#x (code %d)", r.Exit, r.ExitCode)),
		row("duration", r.Duration.String()),
	}
	if len(r.Syscalls) > 0 {
		lines = append(lines, "", "syscalls")
		for _, name := range r.Names() {
			lines = append(lines, row("  "+name, strconv.Itoa(len(r.Syscalls[name]))))
		}
	}
	if len(r.Strings) > 0 {
		lines = append(lines, "", "strings")
		for _, s := range r.Strings {
			lines = append(lines, "  "+strconv.Quote(s))
		}
	}
	if len(r.Normalized) > 0 {
		lines = append(lines, "", "trace")
		for _, c := range r.Normalized {
			line := fmt.Sprintf("  %s(%s) = %d", c.Name, strings.Join(c.Args, ", "), c.Ret)
			if c.Errno != "" {
				line += " " + c.Errno
			}
			lines = append(lines, line)
		}
	}
	if width > 0 {
		for i, line := range lines {
			lines[i] = runewidth.Truncate(line, width, "…")
		}
	}
	return lines
}
