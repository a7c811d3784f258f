package emu

import (
	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"
)

const UC_MEM_ALIGN = 4 * 1024

func align(addr, size uint64) (uint64, uint64) {
	to := uint64(UC_MEM_ALIGN)
	mask := ^(to - 1)
	right := addr + size
	right = (right + to - 1) & mask
	addr &= mask
	size = right - addr
	return addr, size
}

// mapRange maps every page of [addr, addr+size) that isn't mapped yet.
// Overlapping ELF segments share pages, so runs are mapped piecewise.
func (s *Session) mapRange(addr, size uint64) error {
	addr, size = align(addr, size)
	var runStart, runLen uint64
	flush := func() error {
		if runLen == 0 {
			return nil
		}
		if err := s.MemMapProt(runStart, runLen, uc.PROT_ALL); err != nil {
			return errors.Wrapf(err, "failed to map %#x-%#x", runStart, runStart+runLen)
		}
		for p := runStart; p < runStart+runLen; p += UC_MEM_ALIGN {
			s.pages[p] = true
		}
		runLen = 0
		return nil
	}
	for p := addr; p < addr+size; p += UC_MEM_ALIGN {
		if s.pages[p] {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		if runLen == 0 {
			runStart = p
		}
		runLen += UC_MEM_ALIGN
	}
	return flush()
}

func (s *Session) mapped(addr uint64) bool {
	return s.pages[addr&^(UC_MEM_ALIGN-1)]
}

func (s *Session) PackAddr(buf []byte, n uint64) ([]byte, error) {
	if len(buf) < s.bsz {
		return nil, errors.New("buffer too small")
	}
	if s.bits == 64 {
		s.order.PutUint64(buf[:s.bsz], n)
	} else {
		s.order.PutUint32(buf[:s.bsz], uint32(n))
	}
	return buf[:s.bsz], nil
}

func (s *Session) PushBytes(p []byte) (uint64, error) {
	sp, err := s.RegRead(s.arch.SP)
	if err != nil {
		return 0, err
	}
	sp -= uint64(len(p))
	if err := s.RegWrite(s.arch.SP, sp); err != nil {
		return 0, err
	}
	return sp, s.MemWrite(sp, p)
}

// Brk grows or shrinks the heap. It never unmaps and returns the current
// break when asked to go below the base.
func (s *Session) Brk(addr uint64) (uint64, error) {
	if addr == 0 || addr < s.brkBase {
		return s.brk, nil
	}
	if addr > s.brk {
		if err := s.mapRange(s.brk, addr-s.brk); err != nil {
			return s.brk, err
		}
	}
	s.brk = addr
	return s.brk, nil
}
