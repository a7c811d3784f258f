package loader

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

var machineMap = map[elf.Machine]models.ArchType{
	elf.EM_386:     models.ARCH_X86,
	elf.EM_X86_64:  models.ARCH_X8664,
	elf.EM_ARM:     models.ARCH_ARM,
	elf.EM_AARCH64: models.ARCH_ARM64,
	elf.EM_MIPS:    models.ARCH_MIPS,
	elf.EM_PPC:     models.ARCH_PPC,
}

type ElfLoader struct {
	r     io.ReaderAt
	file  *elf.File
	arch  models.ArchType
	bits  int
	entry uint64
}

var elfMagic = []byte{0x7f, 0x45, 0x4c, 0x46}

func MatchElf(r io.ReaderAt) bool {
	return bytes.Equal(getMagic(r), elfMagic)
}

func NewElfLoader(r io.ReaderAt) (*ElfLoader, error) {
	file, err := elf.NewFile(r)
	if err != nil {
		return nil, errors.Wrap(err, "elf.NewFile() failed")
	}
	var bits int
	switch file.Class {
	case elf.ELFCLASS32:
		bits = 32
	case elf.ELFCLASS64:
		bits = 64
	default:
		return nil, errors.New("unknown ELF class")
	}
	arch, ok := machineMap[file.Machine]
	if file.Machine == elf.EM_RISCV {
		arch, ok = models.ARCH_RISCV, true
		if bits == 64 {
			arch = models.ARCH_RISCV64
		}
	}
	if !ok {
		return nil, errors.Errorf("unsupported machine: %s", file.Machine)
	}
	return &ElfLoader{r: r, file: file, arch: arch, bits: bits, entry: file.Entry}, nil
}

func (e *ElfLoader) Arch() models.ArchType { return e.arch }
func (e *ElfLoader) Bits() int             { return e.bits }
func (e *ElfLoader) Entry() uint64         { return e.entry }

func (e *ElfLoader) ByteOrder() binary.ByteOrder {
	return e.file.ByteOrder
}

func (e *ElfLoader) Endian() models.Endian {
	if e.file.Data == elf.ELFDATA2MSB {
		return models.ENDIAN_BIG
	}
	return models.ENDIAN_LITTLE
}

func (e *ElfLoader) Interp() string {
	for _, prog := range e.file.Progs {
		if prog.Type == elf.PT_INTERP {
			data, _ := ioutil.ReadAll(prog.Open())
			return strings.TrimRight(string(data), "\x00")
		}
	}
	return ""
}

// Static reports whether the binary runs without an interpreter.
func (e *ElfLoader) Static() bool {
	return e.Interp() == "" && e.file.Type == elf.ET_EXEC
}

// Header returns the file offset, entry size and count of the program
// headers, for AT_PHDR.
func (e *ElfLoader) Header() (off, size uint64, count int) {
	if e.bits == 32 {
		var hdr elf.Header32
		binary.Read(io.NewSectionReader(e.r, 0, int64(binary.Size(hdr))), e.file.ByteOrder, &hdr)
		return uint64(hdr.Phoff), uint64(hdr.Phentsize), int(hdr.Phnum)
	}
	var hdr elf.Header64
	binary.Read(io.NewSectionReader(e.r, 0, int64(binary.Size(hdr))), e.file.ByteOrder, &hdr)
	return hdr.Phoff, uint64(hdr.Phentsize), int(hdr.Phnum)
}

func (e *ElfLoader) Segments() ([]Segment, error) {
	ret := make([]Segment, 0, len(e.file.Progs))
	for _, prog := range e.file.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		data := make([]byte, prog.Memsz)
		if _, err := io.ReadFull(prog.Open(), data[:prog.Filesz]); err != nil {
			return nil, errors.Wrapf(err, "failed to read segment at %#x", prog.Vaddr)
		}
		var prot int
		if prog.Flags&elf.PF_R != 0 {
			prot |= PROT_READ
		}
		if prog.Flags&elf.PF_W != 0 {
			prot |= PROT_WRITE
		}
		if prog.Flags&elf.PF_X != 0 {
			prot |= PROT_EXEC
		}
		ret = append(ret, Segment{Addr: prog.Vaddr, Off: prog.Off, Data: data, Prot: prot})
	}
	return ret, nil
}

// Symbolicate names addr as symbol+offset when a sized symbol covers it.
func (e *ElfLoader) Symbolicate(addr uint64) (string, error) {
	nearest := make(map[uint64][]elf.Symbol)
	syms, err := e.file.Symbols()
	if err != nil {
		return "", err
	}
	var min int64 = -1
	for _, sym := range syms {
		dist := int64(addr - sym.Value)
		if dist >= 0 && uint64(dist) < sym.Size {
			if dist < min || min == -1 {
				min = dist
			}
			nearest[uint64(dist)] = append(nearest[uint64(dist)], sym)
		}
	}
	if len(nearest) > 0 {
		sym := nearest[uint64(min)][0]
		return fmt.Sprintf("%s+0x%x", sym.Name, min), nil
	}
	return "", nil
}
