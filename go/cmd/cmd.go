package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// ExitCode maps an error from the pipeline to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch e := errors.Cause(err).(type) {
	case models.ExitStatus:
		return int(e)
	case *models.UsageError:
		return 2
	}
	return 1
}

// Fail reports err the way its type calls for and returns the exit status.
// Guest exit codes are passed through silently.
func Fail(err error) int {
	if err == nil {
		return 0
	}
	switch e := errors.Cause(err).(type) {
	case models.ExitStatus:
	case *models.UsageError:
		fmt.Fprintf(Stderr, "usage error: %s\n", e.Msg)
	case *models.ConfigError, *models.LookupError:
		fmt.Fprintf(Stderr, "error: %s\n", err)
	default:
		PrintError(err)
	}
	return ExitCode(err)
}

// PrintError prints an error, and a stacktrace if available.
func PrintError(err error) {
	fmt.Fprintf(Stderr, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(Stderr, "Error: %s\n", err)
	var tracer stackTracer
	for e := err; e != nil; {
		if st, ok := e.(stackTracer); ok {
			tracer = st
		}
		cause, ok := e.(interface{ Cause() error })
		if !ok {
			break
		}
		e = cause.Cause()
	}
	if tracer == nil {
		return
	}
	// parse full path and method name for each stack frame
	var frames [][]string
	for _, f := range tracer.StackTrace() {
		fullpath := ""
		fileline := fmt.Sprintf("%s:%d", f, f)
		method := fmt.Sprintf("%n", f)

		frame := fmt.Sprintf("%+s", f)
		tmp := strings.SplitN(frame, "\n", 3)
		if len(tmp) == 2 {
			pathsplit := strings.Split(tmp[0], "/")
			method = pathsplit[len(pathsplit)-1]
			fullpath = strings.TrimSpace(tmp[1])
		}
		frames = append(frames, []string{fullpath, fileline, method})
		if method == "main.main" {
			break
		}
	}
	// calculate column widths
	widths := make([]int, 2)
	for _, f := range frames {
		for i := 0; i < 2; i++ {
			if len(f[i]) > widths[i] {
				widths[i] = len(f[i])
			}
		}
	}
	for _, f := range frames {
		for i := 0; i < 2; i++ {
			if widths[i] > 0 {
				pad := strings.Repeat(" ", widths[i]-len(f[i]))
				fmt.Fprintf(Stderr, "%s%s | ", f[i], pad)
			}
		}
		fmt.Fprintf(Stderr, "%s()\n", f[2])
	}
}
