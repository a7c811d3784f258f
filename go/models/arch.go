package models

import (
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
)

type Reg struct {
	Enum int
	Name string
}

type RegVal struct {
	Reg
	Val uint64
}

type regList []Reg

func (r regList) Len() int           { return len(r) }
func (r regList) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r regList) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

type regMap map[int]string

func (r regMap) Items() regList {
	ret := make(regList, 0, len(r))
	for e, n := range r {
		ret = append(ret, Reg{e, n})
	}
	return ret
}

// GdbReg is one slot of the gdb 'g' packet, in target byte order.
type GdbReg struct {
	Enum  int
	Bytes int
}

// SyscallABI describes how a guest passes syscall numbers and arguments.
type SyscallABI struct {
	Num  int
	Args []int
	Ret  int
}

// Arch is an engine-neutral description of a CPU: unicorn ids plus register
// enums. Backends fill in the numeric values.
type Arch struct {
	Name    string
	Bits    int
	UC_ARCH int
	UC_MODE int
	PC      int
	SP      int
	Regs    regMap
	GdbRegs []GdbReg
	Syscall *SyscallABI
	OS      map[string]*OS

	// sorted for RegDump
	regList regList
}

// RegNames maps register enums to display names.
func (a *Arch) RegNames() map[int]string {
	return a.Regs
}

// RegEnum looks up a register by display name.
func (a *Arch) RegEnum(name string) (int, bool) {
	for enum, n := range a.Regs {
		if n == name {
			return enum, true
		}
	}
	return 0, false
}

func (a *Arch) sorted() regList {
	if a.regList == nil {
		rl := a.Regs.Items()
		sort.Sort(rl)
		a.regList = rl
	}
	return a.regList
}

// RegReader is anything that can read a register by enum.
type RegReader interface {
	RegRead(enum int) (uint64, error)
}

// RegDump reads every named register, in natural name order.
func (a *Arch) RegDump(u RegReader) ([]RegVal, error) {
	rl := a.sorted()
	ret := make([]RegVal, len(rl))
	for i, r := range rl {
		val, err := u.RegRead(r.Enum)
		if err != nil {
			return nil, err
		}
		ret[i] = RegVal{r, val}
	}
	return ret, nil
}

// NewRegs is a helper for backends declaring register tables.
func NewRegs(m map[int]string) regMap {
	return regMap(m)
}

// OS binds an arch to an operating system's syscall numbering and entry
// mechanism.
type OS struct {
	Name     string
	Syscalls map[uint64]string
	// Intno lists the interrupt numbers that enter the kernel.
	Intno []uint32
	// Insn is an instruction id hooked to enter the kernel, or 0.
	Insn int
}

func (a *Arch) RegisterOS(os *OS) {
	if a.OS == nil {
		a.OS = make(map[string]*OS)
	}
	a.OS[os.Name] = os
}
