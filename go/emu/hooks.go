package emu

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

func (s *Session) addHooks() error {
	if s.os != nil {
		if s.os.Insn != 0 {
			if _, err := s.HookAdd(uc.HOOK_INSN, func(_ uc.Unicorn) {
				s.syscall()
			}, 1, 0, s.os.Insn); err != nil {
				return errors.Wrap(err, "failed to hook syscall instruction")
			}
		}
	}
	if _, err := s.HookAdd(uc.HOOK_INTR, func(_ uc.Unicorn, intno uint32) {
		s.interrupt(intno)
	}, 1, 0); err != nil {
		return errors.Wrap(err, "failed to hook interrupts")
	}
	if _, err := s.HookAdd(uc.HOOK_MEM_INVALID, func(_ uc.Unicorn, access int, addr uint64, size int, value int64) bool {
		return s.invalidAccess(access, addr, size, value)
	}, 1, 0); err != nil {
		return errors.Wrap(err, "failed to hook invalid memory")
	}
	if s.dis != nil {
		if _, err := s.HookAdd(uc.HOOK_CODE, func(_ uc.Unicorn, addr uint64, size uint32) {
			s.logIns(addr, size)
		}, 1, 0); err != nil {
			return errors.Wrap(err, "failed to hook code")
		}
	}
	if s.log.Enabled(models.VERBOSE_DUMP) {
		if _, err := s.HookAdd(uc.HOOK_BLOCK, func(_ uc.Unicorn, addr uint64, size uint32) {
			s.dumpRegs(addr)
		}, 1, 0); err != nil {
			return errors.Wrap(err, "failed to hook blocks")
		}
	}
	return nil
}

func (s *Session) interrupt(intno uint32) {
	if s.os != nil {
		for _, n := range s.os.Intno {
			if n == intno {
				s.syscall()
				return
			}
		}
	}
	pc, _ := s.PC()
	s.stop(errors.Errorf("unhandled interrupt %d at %#x", intno, pc))
}

// stop ends the current run with err.
func (s *Session) stop(err error) {
	s.stopErr = err
	s.Stop()
}

func (s *Session) mask(v uint64) uint64 {
	if s.bits < 64 {
		return v & (1<<uint(s.bits) - 1)
	}
	return v
}

func (s *Session) syscall() {
	abi := s.arch.Syscall
	if abi == nil {
		s.stop(errors.Errorf("arch %s has no syscall ABI", s.arch.Name))
		return
	}
	num, _ := s.RegRead(abi.Num)
	args := make([]uint64, len(abi.Args))
	for i, enum := range abi.Args {
		args[i], _ = s.RegRead(enum)
	}
	pc, _ := s.PC()
	name := s.os.Syscalls[num]
	res, ok := s.kernel.Call(s, name, args)
	if name == "" {
		name = fmt.Sprintf("sys_%d", num)
	}
	if !ok {
		s.log.Warnf("unsupported syscall %s at %#x", name, pc)
		if s.debugStop {
			s.stop(errors.Errorf("unsupported syscall %s at %#x", name, pc))
			return
		}
	}
	ret := s.mask(res.Ret)
	s.syscalls = append(s.syscalls, models.SyscallRecord{
		Name:    name,
		Num:     num,
		Args:    args,
		Strings: res.Strings,
		Ret:     ret,
		PC:      pc,
	})
	s.log.Debugf("%s(%s) = %#x", name, fmtArgs(args), ret)
	if !s.exited {
		s.RegWrite(abi.Ret, ret)
		if s.archType == models.ARCH_MIPS {
			// o32 flags errors in a3
			var a3 uint64
			if int32(ret) < 0 && int32(ret) > -4096 {
				a3 = 1
				s.RegWrite(abi.Ret, uint64(uint32(-int32(ret))))
			}
			s.RegWrite(abi.Args[3], a3)
		}
	}
}

func fmtArgs(args []uint64) string {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = fmt.Sprintf("%#x", a)
	}
	return strings.Join(s, ", ")
}

func (s *Session) invalidAccess(access int, addr uint64, size int, value int64) bool {
	var kind string
	switch access {
	case uc.MEM_WRITE_UNMAPPED, uc.MEM_WRITE_PROT:
		kind = "write"
	case uc.MEM_FETCH_UNMAPPED, uc.MEM_FETCH_PROT:
		kind = "fetch"
	default:
		kind = "read"
	}
	pc, _ := s.PC()
	s.log.Warnf("invalid %s at %#x (size %d) from pc %#x", kind, addr, size, pc)
	if s.debugStop {
		s.stopErr = errors.Errorf("invalid %s at %#x from pc %#x", kind, addr, pc)
		return false
	}
	if s.mapped(addr) {
		// mapped but protected, nothing to fix up
		return false
	}
	if err := s.mapRange(addr, uint64(size)); err != nil {
		s.log.Errorf("%v", err)
		return false
	}
	s.log.Debugf("mapped zero page at %#x", addr&^(UC_MEM_ALIGN-1))
	return true
}

func (s *Session) logIns(addr uint64, size uint32) {
	mem, err := s.MemRead(addr, uint64(size))
	if err != nil {
		return
	}
	ins, err := s.dis.Dis(mem, addr)
	if err != nil || len(ins) == 0 {
		s.log.Disasmf("%#x: (bad)", addr)
		return
	}
	for _, in := range ins {
		s.log.Disasmf("%#x: %s %s", in.Addr(), in.Mnemonic(), in.OpStr())
	}
}

func (s *Session) dumpRegs(addr uint64) {
	regs, err := s.RegDump()
	if err != nil {
		return
	}
	var lines []string
	for _, r := range regs {
		lines = append(lines, fmt.Sprintf("%s=%#x", r.Name, r.Val))
	}
	s.log.Dumpf("block %#x %s\n%s", addr, s.Symbolicate(addr), strings.Join(lines, " "))
}
