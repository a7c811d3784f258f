package riscv

import "github.com/lunixbochs/corntool/go/models"

// asm-generic numbering, shared with arm64
var linuxSyscalls = map[uint64]string{
	63:  "read",
	64:  "write",
	93:  "exit",
	94:  "exit_group",
	172: "getpid",
	174: "getuid",
	175: "geteuid",
	176: "getgid",
	177: "getegid",
	214: "brk",
}

// ecall from U or M mode
var ecall = []uint32{8, 11}

func init() {
	linux := &models.OS{Name: "linux", Syscalls: linuxSyscalls, Intno: ecall}
	Arch32.RegisterOS(linux)
	Arch64.RegisterOS(linux)
}
