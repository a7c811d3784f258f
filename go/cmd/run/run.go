package run

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lunixbochs/corntool/go/cmd"
	"github.com/lunixbochs/corntool/go/models"
)

// takesValue reports whether the flag token tok consumes the next argv
// entry as its value.
func takesValue(fs *pflag.FlagSet, tok string) bool {
	if strings.HasPrefix(tok, "--") {
		if strings.Contains(tok, "=") {
			return false
		}
		f := fs.Lookup(tok[2:])
		return f != nil && f.NoOptDefVal == ""
	}
	// -abc: only the last shorthand can take the next entry
	for i, c := range tok[1:] {
		f := fs.ShorthandLookup(string(c))
		if f == nil || f.NoOptDefVal != "" {
			continue
		}
		return i == len(tok)-2
	}
	return false
}

// splitArgs cuts argv at --args when it appears among the flags. Everything
// after it belongs to the guest, flags included. Scanning ends at the first
// positional, which starts a remainder taken verbatim.
func splitArgs(fs *pflag.FlagSet, args []string) (before, guest []string, ok bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--args":
			return args[:i], args[i+1:], true
		case arg == "--":
			return args, nil, false
		case len(arg) > 1 && arg[0] == '-':
			if takesValue(fs, arg) {
				i++
			}
		default:
			return args, nil, false
		}
	}
	return args, nil, false
}

// Parse turns run arguments into a request. A nil request means help was
// printed.
func Parse(args []string) (*models.RunRequest, error) {
	req := &models.RunRequest{CommonOptions: models.DefaultCommonOptions()}
	c := &cobra.Command{
		Use:   "run --rootfs DIR (-f FILE [--args ARG...] | PROGRAM [ARG...])",
		Short: "execute a static ELF binary",
		Args:  cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, rest []string) error {
			req.Remainder = rest
			return nil
		},
	}
	fs := c.Flags()
	fs.SetInterspersed(false)
	fs.StringVar(&req.Rootfs, "rootfs", "", "guest root filesystem")
	fs.StringVarP(&req.Filename, "filename", "f", "", "program to run")
	cmd.AddCommonFlags(fs, &req.CommonOptions)
	c.MarkFlagRequired("rootfs")

	before, guest, hasArgs := splitArgs(fs, args)

	ok, err := cmd.ParseCommand(c, before)
	if err != nil || !ok {
		return nil, err
	}
	if hasArgs {
		req.Args = append([]string{}, guest...)
	}
	return req, nil
}

func Main(args []string) int {
	req, err := Parse(args[1:])
	if err != nil || req == nil {
		return cmd.Fail(err)
	}
	return cmd.Fail(cmd.NewRunner().Execute(req))
}

func init() { cmd.Register("run", "execute a static ELF binary", Main) }
