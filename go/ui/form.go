package ui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/lunixbochs/corntool/go/models"
)

// Field is one editable line of the dashboard form.
type Field struct {
	Key   string
	Value string
	// Mode is "run" or "code" for mode-specific fields.
	Mode string
}

func (f *Field) Label() string {
	if f.Mode != "" {
		return f.Key + " (" + f.Mode + ")"
	}
	return f.Key
}

type Form struct {
	Fields []*Field
}

func yesno(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "no", "false", "0", "off":
		return false, nil
	case "y", "yes", "true", "1", "on":
		return true, nil
	}
	return false, models.Usagef("not a yes/no value: %q", s)
}

// quoteArgs renders args for the shellwords parser. Single quotes keep
// every byte literally, so only the quote itself needs splicing.
func quoteArgs(args []string) string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.IndexFunc(arg, unsafeShellRune) >= 0 {
			arg = "'" + strings.Replace(arg, "'", `'\''`, -1) + "'"
		}
		out[i] = arg
	}
	return strings.Join(out, " ")
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("_-+=.,/:@%", r)
}

// NewForm lays out st as form fields.
func NewForm(st *State) *Form {
	common, rootfs := st.Code.CommonOptions, st.Code.Rootfs
	if st.Mode == "run" {
		common, rootfs = st.Run.CommonOptions, st.Run.Rootfs
	}
	args := st.Run.Args
	if st.Run.Filename == "" {
		args = st.Run.Remainder
	}
	timeout := ""
	if common.Timeout > 0 {
		timeout = strconv.Itoa(common.Timeout)
	}
	return &Form{Fields: []*Field{
		{Key: "mode", Value: st.Mode},
		{Key: "rootfs", Value: rootfs},
		{Key: "program", Value: st.Run.Filename, Mode: "run"},
		{Key: "args", Value: quoteArgs(args), Mode: "run"},
		{Key: "arch", Value: st.Code.Arch, Mode: "code"},
		{Key: "os", Value: st.Code.OS, Mode: "code"},
		{Key: "endian", Value: st.Code.Endian, Mode: "code"},
		{Key: "thumb", Value: yesno(st.Code.Thumb), Mode: "code"},
		{Key: "format", Value: st.Code.Format, Mode: "code"},
		{Key: "input", Value: st.Code.Input, Mode: "code"},
		{Key: "file", Value: st.Code.Filename, Mode: "code"},
		{Key: "verbose", Value: common.Verbose},
		{Key: "env", Value: common.Env},
		{Key: "timeout", Value: timeout},
		{Key: "root", Value: yesno(common.Root)},
		{Key: "coverage", Value: common.CoverageFile},
		{Key: "coverage-format", Value: common.CoverageFormat},
	}}
}

func (f *Form) Field(key string) *Field {
	for _, field := range f.Fields {
		if field.Key == key {
			return field
		}
	}
	return nil
}

func (f *Form) Get(key string) string {
	if field := f.Field(key); field != nil {
		return strings.TrimSpace(field.Value)
	}
	return ""
}

func (f *Form) Set(key, value string) {
	if field := f.Field(key); field != nil {
		field.Value = value
	}
}

func (f *Form) common(base models.CommonOptions) (models.CommonOptions, error) {
	o := base
	o.Verbose = f.Get("verbose")
	o.Env = f.Get("env")
	o.CoverageFile = f.Get("coverage")
	o.CoverageFormat = f.Get("coverage-format")
	o.JSON = true
	o.Timeout = 0
	if t := f.Get("timeout"); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil || n < 0 {
			return o, models.Usagef("timeout must be a whole number of seconds, got %q", t)
		}
		o.Timeout = n
	}
	root, err := parseBool(f.Get("root"))
	if err != nil {
		return o, err
	}
	o.Root = root
	return o, nil
}

// Request builds the request the form describes, with the JSON report
// always on, and the state to save for next time.
func (f *Form) Request(prev *State) (models.Request, *State, error) {
	st := *prev
	st.Mode = f.Get("mode")
	switch st.Mode {
	case "run":
		common, err := f.common(prev.Run.CommonOptions)
		if err != nil {
			return nil, nil, err
		}
		args, err := shellwords.Parse(f.Get("args"))
		if err != nil {
			return nil, nil, models.Usagef("bad args: %v", err)
		}
		st.Run = models.RunRequest{CommonOptions: common, Rootfs: f.Get("rootfs"), Filename: f.Get("program")}
		if st.Run.Filename != "" {
			st.Run.Args = args
		} else {
			st.Run.Remainder = args
		}
		if st.Run.Rootfs == "" {
			return nil, nil, models.Usagef("run: rootfs is required")
		}
		req := st.Run
		return &req, &st, nil
	case "code":
		common, err := f.common(prev.Code.CommonOptions)
		if err != nil {
			return nil, nil, err
		}
		thumb, err := parseBool(f.Get("thumb"))
		if err != nil {
			return nil, nil, err
		}
		st.Code = models.CodeRequest{
			CommonOptions: common,
			Arch:          f.Get("arch"),
			OS:            f.Get("os"),
			Endian:        f.Get("endian"),
			Thumb:         thumb,
			Rootfs:        f.Get("rootfs"),
			Format:        f.Get("format"),
			Filename:      f.Get("file"),
			Input:         f.Get("input"),
		}
		if st.Code.Rootfs == "" {
			st.Code.Rootfs = "."
		}
		req := st.Code
		return &req, &st, nil
	}
	return nil, nil, models.Usagef("mode must be run or code, got %q", st.Mode)
}

// RouteLog sends the engine log to path instead of the console, which the
// dashboard owns.
func RouteLog(req models.Request, path string) {
	var o *models.CommonOptions
	switch r := req.(type) {
	case *models.RunRequest:
		o = &r.CommonOptions
	case *models.CodeRequest:
		o = &r.CommonOptions
	default:
		return
	}
	o.NoConsole = true
	o.LogFile = path
}
