package logging

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

type level struct {
	min   models.Verbosity
	tag   string
	color string
}

var (
	lvlError  = level{models.VERBOSE_DEFAULT, "!", "red+b"}
	lvlWarn   = level{models.VERBOSE_DEFAULT, "!", "yellow"}
	lvlInfo   = level{models.VERBOSE_DEFAULT, "=", "green"}
	lvlDebug  = level{models.VERBOSE_DEBUG, "+", "cyan"}
	lvlDisasm = level{models.VERBOSE_DISASM, ">", "blue"}
	lvlDump   = level{models.VERBOSE_DUMP, "#", "magenta"}
)

type Options struct {
	Verbose models.Verbosity
	Console bool
	Filter  string
	Devices []string
	Plain   bool

	// Stderr overrides the console destination, mostly for tests and the
	// dashboard.
	Stderr io.Writer
}

type sink struct {
	w     io.Writer
	color bool
}

// Logger writes leveled lines to the console and any log devices.
type Logger struct {
	sync.Mutex
	verbose models.Verbosity
	filter  *regexp.Regexp
	sinks   []sink
	files   []*os.File
}

func New(opts Options) (*Logger, error) {
	l := &Logger{verbose: opts.Verbose}
	if opts.Filter != "" {
		re, err := regexp.Compile(opts.Filter)
		if err != nil {
			return nil, errors.Wrap(err, "bad log filter")
		}
		l.filter = re
	}
	if opts.Console {
		if opts.Stderr != nil {
			l.sinks = append(l.sinks, sink{w: opts.Stderr, color: !opts.Plain && isTerminal(opts.Stderr)})
		} else {
			l.sinks = append(l.sinks, sink{w: colorable.NewColorableStderr(), color: !opts.Plain && isTerminal(os.Stderr)})
		}
	}
	for _, path := range opts.Devices {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.Close()
			return nil, errors.Wrapf(err, "failed to open log file %s", path)
		}
		l.files = append(l.files, f)
		l.sinks = append(l.sinks, sink{w: f})
	}
	return l, nil
}

// Discard is a logger with no destinations.
func Discard() *Logger {
	return &Logger{verbose: models.VERBOSE_OFF}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (l *Logger) Verbose() models.Verbosity { return l.verbose }

// Enabled reports whether messages for v would be written.
func (l *Logger) Enabled(v models.Verbosity) bool {
	return l.verbose != models.VERBOSE_OFF && l.verbose >= v && len(l.sinks) > 0
}

func (l *Logger) log(lvl level, format string, a ...interface{}) {
	if !l.Enabled(lvl.min) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, a...), "\n")
	if l.filter != nil && !l.filter.MatchString(msg) {
		return
	}
	l.Lock()
	defer l.Unlock()
	for _, s := range l.sinks {
		tag := "[" + lvl.tag + "] "
		if s.color {
			tag = ansi.Color(tag, lvl.color)
		}
		for _, line := range strings.Split(msg, "\n") {
			fmt.Fprintf(s.w, "%s%s\n", tag, line)
		}
	}
}

func (l *Logger) Errorf(format string, a ...interface{})  { l.log(lvlError, format, a...) }
func (l *Logger) Warnf(format string, a ...interface{})   { l.log(lvlWarn, format, a...) }
func (l *Logger) Infof(format string, a ...interface{})   { l.log(lvlInfo, format, a...) }
func (l *Logger) Debugf(format string, a ...interface{})  { l.log(lvlDebug, format, a...) }
func (l *Logger) Disasmf(format string, a ...interface{}) { l.log(lvlDisasm, format, a...) }
func (l *Logger) Dumpf(format string, a ...interface{})   { l.log(lvlDump, format, a...) }

func (l *Logger) Close() error {
	var first error
	for _, f := range l.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.files = nil
	return first
}

// FromConfig builds the logger an engine configuration asks for.
func FromConfig(c *models.Config) (*Logger, error) {
	return New(Options{
		Verbose: c.Verbose,
		Console: c.Console,
		Filter:  c.Filter,
		Devices: c.LogDevices,
		Plain:   c.LogPlain,
	})
}
