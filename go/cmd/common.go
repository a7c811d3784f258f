package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lunixbochs/corntool/go/models"
)

// AddCommonFlags declares the options shared by run and code.
func AddCommonFlags(fs *pflag.FlagSet, o *models.CommonOptions) {
	fs.StringVarP(&o.Verbose, "verbose", "v", o.Verbose, "verbosity: off, default, debug, disasm, dump")
	fs.StringVar(&o.Env, "env", o.Env, "guest environment: a literal like {'HOME': '/root'} or a trusted env file")
	fs.StringVarP(&o.Gdb, "gdb", "g", o.Gdb, "wait for gdb on host:port (bare -g listens on 127.0.0.1:9999)")
	fs.Lookup("gdb").NoOptDefVal = "default"
	fs.BoolVar(&o.Qdb, "qdb", o.Qdb, "start the interactive debugger")
	fs.BoolVar(&o.RR, "rr", o.RR, "record steps in qdb so they can be undone")
	fs.StringVar(&o.Profile, "profile", o.Profile, "memory layout profile (file or name under <rootfs>/profiles)")
	fs.BoolVar(&o.NoConsole, "no-console", o.NoConsole, "do not log to the console")
	fs.StringVarP(&o.Filter, "filter", "e", o.Filter, "only log lines matching this regexp")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "also log to this file")
	fs.BoolVar(&o.LogPlain, "log-plain", o.LogPlain, "never colour log output")
	fs.BoolVar(&o.Root, "root", o.Root, "report uid and gid 0 to the guest")
	fs.BoolVar(&o.DebugStop, "debug-stop", o.DebugStop, "stop on unknown syscalls and bad memory access (needs -v debug)")
	fs.BoolVarP(&o.Multithread, "multithread", "m", o.Multithread, "allow guest threads")
	fs.IntVar(&o.Timeout, "timeout", o.Timeout, "stop after this many seconds (0 is unbounded)")
	fs.StringVarP(&o.CoverageFile, "coverage-file", "c", o.CoverageFile, "write block coverage to this file")
	fs.StringVar(&o.CoverageFormat, "coverage-format", o.CoverageFormat, "coverage format: drcov, drcov_exact")
	fs.BoolVar(&o.JSON, "json", o.JSON, "print a JSON report after the run")
	fs.BoolVar(&o.Libcache, "libcache", o.Libcache, "cache loaded libraries")
}

// ParseCommand runs c over args and reports whether its RunE was reached.
// Errors from flag and argument checks become usage errors. ok is false
// when only help was printed.
func ParseCommand(c *cobra.Command, args []string) (ok bool, err error) {
	run := c.RunE
	c.RunE = func(c *cobra.Command, args []string) error {
		ok = true
		if run != nil {
			return run(c, args)
		}
		return nil
	}
	c.SilenceUsage = true
	c.SilenceErrors = true
	c.SetOut(Stdout)
	c.SetErr(Stderr)
	c.SetArgs(args)
	if err := c.Execute(); err != nil {
		if ok {
			return true, err
		}
		return false, models.Usagef("%s: %v", c.Name(), err)
	}
	return ok, nil
}
