package cmd

import (
	"io"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/config"
	"github.com/lunixbochs/corntool/go/coverage"
	"github.com/lunixbochs/corntool/go/debug"
	"github.com/lunixbochs/corntool/go/models"
	"github.com/lunixbochs/corntool/go/report"
)

// Engine holds the native collaborators. main installs them so that this
// package builds without cgo.
var Engine struct {
	NewSession func(c *models.Config) (models.Session, error)
	Assemble   config.AssembleFunc
}

// Runner sequences one invocation: build the session, attach a debugger,
// run it (inside a coverage scope if asked) and report.
type Runner struct {
	NewSession func(c *models.Config) (models.Session, error)
	Assemble   config.AssembleFunc
	Qdb        func(s models.Session, rr bool) error
	Gdb        func(s models.Session, spec string) error
	Coverage   func(s models.Session, format models.CoverageFormat, path string, run func() error) error
	Report     func(s models.Session) (*report.Report, error)
	// Render replaces JSON printing, e.g. with the dashboard.
	Render func(r *report.Report) error

	Out io.Writer
}

func NewRunner() *Runner {
	return &Runner{
		NewSession: Engine.NewSession,
		Assemble:   Engine.Assemble,
		Qdb:        debug.RunQdb,
		Gdb:        debug.AttachGdb,
		Coverage:   coverage.Collect,
		Report:     report.Generate,
		Out:        Stdout,
	}
}

// Execute builds the configuration for req and runs it.
func (r *Runner) Execute(req models.Request) error {
	cfg, opts, err := config.Build(req, r.Assemble)
	if err != nil {
		return err
	}
	return r.Run(cfg, opts)
}

// Run constructs one session from cfg and drives it to termination. A
// non-zero guest exit code comes back as models.ExitStatus.
func (r *Runner) Run(cfg *models.Config, opts *models.RunOptions) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if r.NewSession == nil {
		return errors.New("no emulation engine installed")
	}
	s, err := r.NewSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.Qdb {
		return r.Qdb(s, opts.RR)
	}
	if opts.Gdb != "" {
		if err := r.Gdb(s, debug.GdbSpec(opts.Gdb)); err != nil {
			return err
		}
	}
	if err := config.CheckDebugStop(opts.DebugStop, cfg.Verbose); err != nil {
		return err
	}
	if opts.Root {
		s.SetRoot(true)
	}
	s.SetDebugStop(opts.DebugStop)

	start := time.Now()
	run := func() error { return s.Run(opts.Timeout) }
	if opts.Coverage != nil {
		err = r.Coverage(s, opts.Coverage.Format, opts.Coverage.Path, run)
	} else {
		err = run()
	}
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if opts.Report {
		if err := r.emitReport(s, elapsed); err != nil {
			return err
		}
	}
	if code := s.ExitCode(); code != 0 {
		return models.ExitStatus(code)
	}
	return nil
}

func (r *Runner) emitReport(s models.Session, elapsed time.Duration) error {
	rep, err := r.Report(s)
	if err != nil {
		return errors.Wrap(err, "failed to generate report")
	}
	rep.Duration = elapsed
	if r.Render != nil {
		rep.Normalized = report.Normalize(s.Syscalls(), s.Arch().Bits)
		return r.Render(rep)
	}
	return rep.WriteJSON(r.Out)
}
