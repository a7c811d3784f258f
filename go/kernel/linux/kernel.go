package linux

import (
	"encoding/binary"
	"io"
	"os"
)

const UINT64_MAX = 0xFFFFFFFFFFFFFFFF

// Process is the guest the kernel services.
type Process interface {
	Bits() int
	ByteOrder() binary.ByteOrder
	MemRead(addr, size uint64) ([]byte, error)
	MemWrite(addr uint64, p []byte) error
	PushBytes(p []byte) (uint64, error)
	Brk(addr uint64) (uint64, error)
	Exit(code int)
}

// Result is what one syscall did. Strings holds any buffers or paths the call
// passed through, for reporting.
type Result struct {
	Ret     uint64
	Strings []string
}

type handler func(k *Kernel, p Process, args []uint64) Result

// Kernel is a small Linux personality: stdio, brk, exit and identity calls.
type Kernel struct {
	Root bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func NewKernel() *Kernel {
	return &Kernel{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

var handlers = map[string]handler{
	"read":       (*Kernel).read,
	"write":      (*Kernel).write,
	"exit":       (*Kernel).exit,
	"exit_group": (*Kernel).exit,
	"brk":        (*Kernel).brk,
	"getpid":     (*Kernel).getpid,
	"getuid":     (*Kernel).getuid,
	"geteuid":    (*Kernel).geteuid,
	"getgid":     (*Kernel).getgid,
	"getegid":    (*Kernel).getegid,
	"getuid32":   (*Kernel).getuid,
	"geteuid32":  (*Kernel).geteuid,
	"getgid32":   (*Kernel).getgid,
	"getegid32":  (*Kernel).getegid,
}

// Supported reports whether name has a handler.
func Supported(name string) bool {
	_, ok := handlers[name]
	return ok
}

// Call runs syscall name. Unknown names return -ENOSYS and ok=false.
func (k *Kernel) Call(p Process, name string, args []uint64) (res Result, ok bool) {
	h, ok := handlers[name]
	if !ok {
		return Result{Ret: Errno(ENOSYS)}, false
	}
	// handlers index up to three args
	for len(args) < 3 {
		args = append(args, 0)
	}
	return h(k, p, args), true
}
