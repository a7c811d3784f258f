package emu

import (
	"fmt"

	"github.com/lunixbochs/corntool/go/cpu"
)

// longest instruction of any supported arch
const maxInsLen = 15

func (s *Session) disassembler() (*cpu.Capstr, error) {
	if s.dis == nil {
		dis, err := cpu.NewCapstr(s.archType, s.endian, s.thumb)
		if err != nil {
			return nil, err
		}
		if err := dis.Open(); err != nil {
			return nil, err
		}
		s.dis = dis
	}
	return s.dis, nil
}

// Disassemble renders up to count instructions starting at addr.
func (s *Session) Disassemble(addr uint64, count int) ([]string, error) {
	dis, err := s.disassembler()
	if err != nil {
		return nil, err
	}
	mem, err := s.MemRead(addr, uint64(count*maxInsLen))
	if err != nil {
		// clamp to the end of the page
		mem, err = s.MemRead(addr, UC_MEM_ALIGN-addr%UC_MEM_ALIGN)
		if err != nil {
			return nil, err
		}
	}
	ins, err := dis.Dis(mem, addr)
	if err != nil {
		return nil, err
	}
	var out []string
	for i, in := range ins {
		if i >= count {
			break
		}
		out = append(out, fmt.Sprintf("%#x: %s %s", in.Addr(), in.Mnemonic(), in.OpStr()))
	}
	return out, nil
}
