package linux

import (
	"bytes"
	"crypto/rand"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	ELF_AT_NULL = iota
	ELF_AT_IGNORE
	ELF_AT_EXECFD
	ELF_AT_PHDR
	ELF_AT_PHENT
	ELF_AT_PHNUM
	ELF_AT_PAGESZ
	ELF_AT_BASE
	ELF_AT_FLAGS
	ELF_AT_ENTRY
	ELF_AT_NOTELF
	ELF_AT_UID
	ELF_AT_EUID
	ELF_AT_GID
	ELF_AT_EGID
	ELF_AT_PLATFORM
	ELF_AT_HWCAP
	ELF_AT_CLKTCK = 17
	ELF_AT_RANDOM = 25
)

type Elf32Auxv struct {
	Type, Val uint32
}

type Elf64Auxv struct {
	Type, Val uint64
}

// AuxvInfo is what the loader knows about the binary.
type AuxvInfo struct {
	Platform string
	Entry    uint64
	// Phdr is the guest address of the program headers, or 0.
	Phdr     uint64
	PhdrEnt  uint64
	PhdrNum  int
}

func (k *Kernel) setupElfAuxv(p Process, info AuxvInfo) ([]Elf64Auxv, error) {
	// set up AT_RANDOM
	var tmp [16]byte
	if _, err := rand.Read(tmp[:]); err != nil {
		return nil, errors.Wrap(err, "failed to read AT_RANDOM bytes")
	}
	randAddr, err := p.PushBytes(tmp[:])
	if err != nil {
		return nil, err
	}
	platformAddr, err := p.PushBytes([]byte(info.Platform + "\x00"))
	if err != nil {
		return nil, err
	}
	auxv := []Elf64Auxv{
		{ELF_AT_PAGESZ, 4096},
		{ELF_AT_BASE, 0},
		{ELF_AT_FLAGS, 0},
		{ELF_AT_ENTRY, info.Entry},
		{ELF_AT_UID, k.ident(unix.Getuid)},
		{ELF_AT_EUID, k.ident(unix.Geteuid)},
		{ELF_AT_GID, k.ident(unix.Getgid)},
		{ELF_AT_EGID, k.ident(unix.Getegid)},
		{ELF_AT_PLATFORM, platformAddr},
		{ELF_AT_CLKTCK, 100}, // 100hz, totally fake
		{ELF_AT_RANDOM, randAddr},
		{ELF_AT_NULL, 0},
	}
	if info.Phdr > 0 {
		auxv = append([]Elf64Auxv{
			{ELF_AT_PHDR, info.Phdr},
			{ELF_AT_PHENT, info.PhdrEnt},
			{ELF_AT_PHNUM, uint64(info.PhdrNum)},
		}, auxv...)
	}
	return auxv, nil
}

// SetupElfAuxv pushes the AT_RANDOM and AT_PLATFORM data and returns the
// packed auxiliary vector for the initial stack.
func (k *Kernel) SetupElfAuxv(p Process, info AuxvInfo) ([]byte, error) {
	var buf bytes.Buffer
	auxv, err := k.setupElfAuxv(p, info)
	if err != nil {
		return nil, err
	}
	if p.Bits() == 32 {
		var auxv32 Elf32Auxv
		for _, a := range auxv {
			auxv32.Type = uint32(a.Type)
			auxv32.Val = uint32(a.Val)
			if err := struc.PackWithOrder(&buf, &auxv32, p.ByteOrder()); err != nil {
				return nil, errors.Wrap(err, "failed to pack auxv")
			}
		}
	} else {
		for _, a := range auxv {
			if err := struc.PackWithOrder(&buf, &a, p.ByteOrder()); err != nil {
				return nil, errors.Wrap(err, "failed to pack auxv")
			}
		}
	}
	return buf.Bytes(), nil
}
