package report

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/lunixbochs/corntool/go/models"
)

type Target struct {
	Mode   string   `json:"mode"`
	Arch   string   `json:"arch"`
	OS     string   `json:"os,omitempty"`
	Endian string   `json:"endian,omitempty"`
	Argv   []string `json:"argv,omitempty"`
}

// Call is one syscall in the normalized view: signed return value and
// errno name instead of raw register values.
type Call struct {
	Name  string   `json:"name"`
	Args  []string `json:"args"`
	Ret   int64    `json:"ret"`
	Errno string   `json:"errno,omitempty"`
}

// Report summarizes a terminated session.
type Report struct {
	ID       string                            `json:"id"`
	Target   Target                            `json:"target"`
	Entry    uint64                            `json:"entry"`
	Exit     uint64                            `json:"exit"`
	ExitCode int                               `json:"exit_code"`
	Duration time.Duration                     `json:"duration_ns"`
	Images   []models.Image                    `json:"images"`
	Syscalls map[string][]models.SyscallRecord `json:"syscalls"`
	Strings  []string                          `json:"strings"`

	// Normalized is only filled in for the dashboard.
	Normalized []Call `json:"normalized,omitempty"`
}

func describe(s models.Session) Target {
	t := Target{Arch: s.Arch().Name}
	c := s.Config()
	if c == nil {
		return t
	}
	if c.Code != nil {
		t.Mode = "code"
		t.OS = c.Code.OS.String()
		t.Endian = c.Code.Endian.String()
	} else if c.Run != nil {
		t.Mode = "run"
		t.OS = models.OS_LINUX.String()
		t.Argv = c.Run.Argv
	}
	return t
}

// Generate builds a report from a terminated session.
func Generate(s models.Session) (*Report, error) {
	if !s.Exited() {
		return nil, errors.New("cannot report on a running session")
	}
	pc, err := s.PC()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read exit pc")
	}
	r := &Report{
		ID:       uuid.New().String(),
		Target:   describe(s),
		Entry:    s.Entry(),
		Exit:     pc,
		ExitCode: s.ExitCode(),
		Images:   s.Images(),
		Syscalls: make(map[string][]models.SyscallRecord),
		Strings:  []string{},
	}
	seen := make(map[string]bool)
	for _, call := range s.Syscalls() {
		r.Syscalls[call.Name] = append(r.Syscalls[call.Name], call)
		for _, str := range call.Strings {
			if !seen[str] {
				seen[str] = true
				r.Strings = append(r.Strings, str)
			}
		}
	}
	return r, nil
}

// Names lists the syscall names in the report, sorted.
func (r *Report) Names() []string {
	names := make([]string, 0, len(r.Syscalls))
	for name := range r.Syscalls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize converts raw syscall records for display. Returns between -4095
// and -1 are errors, as on Linux.
func Normalize(calls []models.SyscallRecord, bits int) []Call {
	out := make([]Call, 0, len(calls))
	for _, call := range calls {
		n := Call{Name: call.Name, Ret: signExtend(call.Ret, bits)}
		for _, arg := range call.Args {
			n.Args = append(n.Args, "0x"+strconv.FormatUint(arg, 16))
		}
		if n.Ret < 0 && n.Ret >= -4095 {
			n.Errno = unix.ErrnoName(unix.Errno(-n.Ret))
		}
		out = append(out, n)
	}
	return out
}

func signExtend(v uint64, bits int) int64 {
	if bits <= 0 || bits >= 64 {
		return int64(v)
	}
	shift := uint(64 - bits)
	return int64(v<<shift) >> shift
}

// WriteJSON prints r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(r), "failed to encode report")
}
