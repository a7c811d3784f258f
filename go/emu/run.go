package emu

import (
	"time"

	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

const armThumbBit = 1 << 5

// resumeAddr is the address to pass to Start. Thumb code needs the low bit
// set or unicorn switches back to ARM.
func (s *Session) resumeAddr() (uint64, error) {
	pc, err := s.PC()
	if err != nil {
		return 0, err
	}
	if s.arch.UC_ARCH != uc.ARCH_ARM {
		return pc, nil
	}
	thumb := s.archType == models.ARCH_CORTEX_M || (!s.started && s.thumb)
	if s.started && !thumb {
		cpsr, err := s.RegRead(uc.ARM_REG_CPSR)
		if err != nil {
			return 0, err
		}
		thumb = cpsr&armThumbBit != 0
	}
	if thumb {
		pc |= 1
	}
	return pc, nil
}

// exec runs from the current pc until the guest exits, count instructions
// have run (0 is unlimited), the timeout passes or a hook stops it.
func (s *Session) exec(count uint64, timeout time.Duration) error {
	if s.exited {
		return errors.New("session has exited")
	}
	start, err := s.resumeAddr()
	if err != nil {
		return err
	}
	s.started = true
	s.hitBreak = false
	opts := &uc.UcOptions{Timeout: uint64(timeout / time.Microsecond), Count: count}
	err = s.StartWithOptions(start, s.until, opts)
	if s.stopErr != nil {
		err, s.stopErr = s.stopErr, nil
	}
	if err != nil {
		s.exited = true
		s.exitCode = 1
		pc, _ := s.PC()
		return errors.Wrapf(err, "emulation failed at %#x", pc)
	}
	if s.exited {
		return nil
	}
	pc, _ := s.PC()
	switch {
	case s.until != 0 && pc == s.until:
		// ran off the end of the payload
		s.exited = true
	case count == 0 && !s.hitBreak:
		if timeout > 0 {
			s.log.Warnf("run timed out after %s at %#x", timeout, pc)
		}
		s.exited = true
	}
	return nil
}

// Run executes the guest. An attached controller drives it first; if the
// controller lets go before the guest exits, the rest runs freely.
func (s *Session) Run(timeout time.Duration) error {
	if s.controller != nil {
		if err := s.controller.Drive(s); err != nil {
			return err
		}
		if s.exited {
			return nil
		}
		s.breakpoints = make(map[uint64]bool)
	}
	return s.exec(0, timeout)
}

func (s *Session) Step() error {
	return s.exec(1, 0)
}

func (s *Session) Continue() error {
	if len(s.breakpoints) == 0 {
		return s.exec(0, 0)
	}
	start, err := s.PC()
	if err != nil {
		return err
	}
	first := true
	hh, err := s.HookAdd(uc.HOOK_CODE, func(mu uc.Unicorn, addr uint64, size uint32) {
		// don't re-trigger the breakpoint we're sitting on
		if first && addr == start {
			first = false
			return
		}
		first = false
		if s.breakpoints[addr] {
			s.hitBreak = true
			mu.Stop()
		}
	}, 1, 0)
	if err != nil {
		return errors.Wrap(err, "failed to hook breakpoints")
	}
	defer s.HookDel(hh)
	return s.exec(0, 0)
}

func (s *Session) AddBreakpoint(addr uint64)    { s.breakpoints[addr] = true }
func (s *Session) RemoveBreakpoint(addr uint64) { delete(s.breakpoints, addr) }

func (s *Session) HookBlock(cb func(addr uint64, size uint32)) error {
	_, err := s.HookAdd(uc.HOOK_BLOCK, func(_ uc.Unicorn, addr uint64, size uint32) {
		cb(addr, size)
	}, 1, 0)
	return errors.Wrap(err, "failed to hook blocks")
}

// HookMemWrite calls cb before each guest write lands.
func (s *Session) HookMemWrite(cb func(addr uint64, size int)) error {
	_, err := s.HookAdd(uc.HOOK_MEM_WRITE, func(_ uc.Unicorn, access int, addr uint64, size int, value int64) {
		cb(addr, size)
	}, 1, 0)
	return errors.Wrap(err, "failed to hook memory writes")
}

type savedContext struct {
	cpu      uc.Context
	brk      uint64
	exited   bool
	exitCode int
	nsys     int
}

// ContextSave snapshots the CPU and the session state a step can change.
// Memory is not included.
func (s *Session) ContextSave() (interface{}, error) {
	ctx, err := s.Unicorn.ContextSave(nil)
	if err != nil {
		return nil, errors.Wrap(err, "ContextSave() failed")
	}
	return &savedContext{
		cpu:      ctx,
		brk:      s.brk,
		exited:   s.exited,
		exitCode: s.exitCode,
		nsys:     len(s.syscalls),
	}, nil
}

func (s *Session) ContextRestore(ctx interface{}) error {
	saved, ok := ctx.(*savedContext)
	if !ok {
		return errors.Errorf("bad context type %T", ctx)
	}
	if err := s.Unicorn.ContextRestore(saved.cpu); err != nil {
		return errors.Wrap(err, "ContextRestore() failed")
	}
	s.brk = saved.brk
	s.exited = saved.exited
	s.exitCode = saved.exitCode
	if saved.nsys < len(s.syscalls) {
		s.syscalls = s.syscalls[:saved.nsys]
	}
	return nil
}
