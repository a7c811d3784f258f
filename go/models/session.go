package models

import "time"

// SyscallRecord is one guest system call as seen by the engine.
type SyscallRecord struct {
	Name    string   `json:"name"`
	Num     uint64   `json:"num"`
	Args    []uint64 `json:"args"`
	Strings []string `json:"strings,omitempty"`
	Ret     uint64   `json:"ret"`
	PC      uint64   `json:"pc"`
}

// Image is an executable region loaded into the guest address space.
type Image struct {
	Name  string `json:"name"`
	Base  uint64 `json:"base"`
	End   uint64 `json:"end"`
	Entry uint64 `json:"entry"`
}

func (i Image) Contains(addr uint64) bool {
	return addr >= i.Base && addr < i.End
}

// Target is the slice of a session a debugger drives.
type Target interface {
	Arch() *Arch
	PC() (uint64, error)
	RegRead(enum int) (uint64, error)
	RegWrite(enum int, val uint64) error
	RegDump() ([]RegVal, error)
	MemRead(addr, size uint64) ([]byte, error)
	MemWrite(addr uint64, p []byte) error

	// Step executes a single instruction.
	Step() error
	// Continue runs until a breakpoint, guest exit or the end of the code.
	Continue() error
	AddBreakpoint(addr uint64)
	RemoveBreakpoint(addr uint64)

	Exited() bool
	ExitCode() int
}

// Controller takes over execution of a session, e.g. a gdb stub.
type Controller interface {
	Drive(t Target) error
}

// Session is one live emulation instance built from a Config. It is run
// exactly once.
type Session interface {
	Target

	Config() *Config
	// Run executes the guest to completion, to timeout (0 is unbounded) or
	// to a fatal error. If a Controller is attached it drives execution.
	Run(timeout time.Duration) error

	SetController(c Controller)
	SetRoot(root bool)
	SetDebugStop(stop bool)

	HookBlock(cb func(addr uint64, size uint32)) error
	HookMemWrite(cb func(addr uint64, size int)) error
	ContextSave() (interface{}, error)
	ContextRestore(ctx interface{}) error

	Entry() uint64
	Images() []Image
	Syscalls() []SyscallRecord
	Close() error
}
