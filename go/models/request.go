package models

// Request is a parsed command line, one concrete type per subcommand.
type Request interface {
	Kind() string
}

// CommonOptions are shared by the run and code subcommands.
type CommonOptions struct {
	Verbose        string `yaml:"verbose"`
	Env            string `yaml:"env"`
	Gdb            string `yaml:"gdb,omitempty"`
	Qdb            bool   `yaml:"qdb,omitempty"`
	RR             bool   `yaml:"rr,omitempty"`
	Profile        string `yaml:"profile,omitempty"`
	NoConsole      bool   `yaml:"no_console,omitempty"`
	Filter         string `yaml:"filter,omitempty"`
	LogFile        string `yaml:"log_file,omitempty"`
	LogPlain       bool   `yaml:"log_plain,omitempty"`
	Root           bool   `yaml:"root,omitempty"`
	DebugStop      bool   `yaml:"debug_stop,omitempty"`
	Multithread    bool   `yaml:"multithread,omitempty"`
	Timeout        int    `yaml:"timeout,omitempty"`
	CoverageFile   string `yaml:"coverage_file,omitempty"`
	CoverageFormat string `yaml:"coverage_format"`
	JSON           bool   `yaml:"json,omitempty"`
	Libcache       bool   `yaml:"libcache,omitempty"`
}

func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Verbose:        "default",
		Env:            "{}",
		CoverageFormat: "drcov",
	}
}

type RunRequest struct {
	CommonOptions `yaml:",inline"`

	Rootfs    string   `yaml:"rootfs"`
	Filename  string   `yaml:"filename,omitempty"`
	Args      []string `yaml:"args,omitempty"`
	Remainder []string `yaml:"remainder,omitempty"`
}

type CodeRequest struct {
	CommonOptions `yaml:",inline"`

	Arch     string `yaml:"arch"`
	OS       string `yaml:"os"`
	Endian   string `yaml:"endian"`
	Thumb    bool   `yaml:"thumb,omitempty"`
	Rootfs   string `yaml:"rootfs"`
	Format   string `yaml:"format"`
	Filename string `yaml:"filename,omitempty"`
	Input    string `yaml:"input,omitempty"`
}

type ExamplesRequest struct{}

type DashboardRequest struct{}

func (*RunRequest) Kind() string       { return "run" }
func (*CodeRequest) Kind() string      { return "code" }
func (*ExamplesRequest) Kind() string  { return "examples" }
func (*DashboardRequest) Kind() string { return "dashboard" }
