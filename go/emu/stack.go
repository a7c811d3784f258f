package emu

import (
	"github.com/lunixbochs/corntool/go/kernel/linux"
)

// pushStrings copies strs onto the stack and returns their addresses in
// order.
func (s *Session) pushStrings(strs ...string) ([]uint64, error) {
	addrs := make([]uint64, len(strs))
	for i := len(strs) - 1; i >= 0; i-- {
		addr, err := s.PushBytes([]byte(strs[i] + "\x00"))
		if err != nil {
			return nil, err
		}
		addrs[i] = addr
	}
	return addrs, nil
}

// linuxInit lays out the initial process stack: argc, argv, envp and auxv
// from low to high, with the string data above them.
func (s *Session) linuxInit(argv, env []string) error {
	phoff, phent, phnum := s.loader.Header()
	var phdr uint64
	if segs, err := s.loader.Segments(); err == nil {
		for _, seg := range segs {
			if seg.ContainsPhys(phoff) {
				phdr = seg.Addr + phoff - seg.Off
				break
			}
		}
	}
	auxv, err := s.kernel.SetupElfAuxv(s, linux.AuxvInfo{
		Platform: s.arch.Name,
		Entry:    s.loader.Entry(),
		Phdr:     phdr,
		PhdrEnt:  phent,
		PhdrNum:  phnum,
	})
	if err != nil {
		return err
	}
	envAddrs, err := s.pushStrings(env...)
	if err != nil {
		return err
	}
	argvAddrs, err := s.pushStrings(argv...)
	if err != nil {
		return err
	}

	words := []uint64{uint64(len(argv))}
	words = append(words, argvAddrs...)
	words = append(words, 0)
	words = append(words, envAddrs...)
	words = append(words, 0)

	buf := make([]byte, 0, len(words)*s.bsz+len(auxv))
	var tmp [8]byte
	for _, w := range words {
		packed, err := s.PackAddr(tmp[:], w)
		if err != nil {
			return err
		}
		buf = append(buf, packed...)
	}
	buf = append(buf, auxv...)

	sp, err := s.RegRead(s.arch.SP)
	if err != nil {
		return err
	}
	sp = (sp - uint64(len(buf))) &^ 15
	if err := s.MemWrite(sp, buf); err != nil {
		return err
	}
	return s.RegWrite(s.arch.SP, sp)
}
