package mock

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

type Block struct {
	Addr uint64
	Size uint32
}

// Session is a scripted models.Session. Run replays Blocks through the
// installed block hooks, then returns RunErr and terminates with Code.
type Session struct {
	Cfg *models.Config

	Blocks   []Block
	RunErr   error
	RunPanic interface{}
	Code     int
	Calls    []models.SyscallRecord
	Imgs     []models.Image

	// observed
	Events     []string
	Controller models.Controller
	Root       bool
	DebugStop  bool
	Timeout    time.Duration
	Closed     bool

	blockHooks []func(addr uint64, size uint32)
	memHooks   []func(addr uint64, size int)
	exited     bool
	pc         uint64
	regs       map[int]uint64
	mem        map[uint64]byte
	bps        map[uint64]bool
}

func NewSession(cfg *models.Config) *Session {
	return &Session{
		Cfg:  cfg,
		regs: make(map[int]uint64),
		mem:  make(map[uint64]byte),
		bps:  make(map[uint64]bool),
	}
}

func (s *Session) event(e string) { s.Events = append(s.Events, e) }

func (s *Session) Arch() *models.Arch {
	return &models.Arch{
		Name: "mock", Bits: 64, PC: 0, SP: 1,
		Regs:    map[int]string{0: "pc", 1: "sp"},
		GdbRegs: []models.GdbReg{{Enum: 0, Bytes: 8}, {Enum: 1, Bytes: 8}, {Enum: -1, Bytes: 4}},
	}
}

func (s *Session) PC() (uint64, error) { return s.pc, nil }

func (s *Session) RegRead(enum int) (uint64, error) {
	if enum == 0 {
		return s.pc, nil
	}
	return s.regs[enum], nil
}

func (s *Session) RegWrite(enum int, val uint64) error {
	if enum == 0 {
		s.pc = val
	} else {
		s.regs[enum] = val
	}
	return nil
}

func (s *Session) RegDump() ([]models.RegVal, error) { return s.Arch().RegDump(s) }

func (s *Session) MemRead(addr, size uint64) ([]byte, error) {
	out := make([]byte, size)
	for i := range out {
		out[i] = s.mem[addr+uint64(i)]
	}
	return out, nil
}

// MemWrite fires write hooks first, like a guest store would.
func (s *Session) MemWrite(addr uint64, p []byte) error {
	for _, cb := range s.memHooks {
		cb(addr, len(p))
	}
	for i, b := range p {
		s.mem[addr+uint64(i)] = b
	}
	return nil
}

// Step advances through Blocks one block at a time.
func (s *Session) Step() error {
	s.event("step")
	if s.exited {
		return errors.New("session exited")
	}
	idx := int(s.pc)
	if idx >= len(s.Blocks) {
		s.exited = true
		return nil
	}
	b := s.Blocks[idx]
	for _, cb := range s.blockHooks {
		cb(b.Addr, b.Size)
	}
	s.pc++
	if int(s.pc) >= len(s.Blocks) {
		s.exited = true
	}
	return nil
}

func (s *Session) Continue() error {
	s.event("continue")
	for !s.exited {
		if err := s.Step(); err != nil {
			return err
		}
		if s.bps[s.pc] {
			return nil
		}
	}
	return nil
}

func (s *Session) AddBreakpoint(addr uint64)    { s.bps[addr] = true }
func (s *Session) RemoveBreakpoint(addr uint64) { delete(s.bps, addr) }
func (s *Session) Exited() bool                 { return s.exited }
func (s *Session) ExitCode() int                { return s.Code }
func (s *Session) Config() *models.Config       { return s.Cfg }

func (s *Session) Run(timeout time.Duration) error {
	s.event("run")
	s.Timeout = timeout
	if s.Controller != nil {
		return s.Controller.Drive(s)
	}
	for _, b := range s.Blocks {
		for _, cb := range s.blockHooks {
			cb(b.Addr, b.Size)
		}
	}
	s.exited = true
	if s.RunPanic != nil {
		panic(s.RunPanic)
	}
	return s.RunErr
}

func (s *Session) SetController(c models.Controller) {
	s.event("controller")
	s.Controller = c
}

func (s *Session) SetRoot(root bool) {
	s.event("root")
	s.Root = root
}

func (s *Session) SetDebugStop(stop bool) { s.DebugStop = stop }

func (s *Session) HookBlock(cb func(addr uint64, size uint32)) error {
	s.event("hook_block")
	s.blockHooks = append(s.blockHooks, cb)
	return nil
}

func (s *Session) HookMemWrite(cb func(addr uint64, size int)) error {
	s.memHooks = append(s.memHooks, cb)
	return nil
}

func (s *Session) ContextSave() (interface{}, error) { return s.pc, nil }

func (s *Session) ContextRestore(ctx interface{}) error {
	s.pc = ctx.(uint64)
	s.exited = false
	return nil
}

func (s *Session) Entry() uint64                     { return 0 }
func (s *Session) Images() []models.Image            { return s.Imgs }
func (s *Session) Syscalls() []models.SyscallRecord { return s.Calls }

func (s *Session) Close() error {
	s.event("close")
	s.Closed = true
	return nil
}
