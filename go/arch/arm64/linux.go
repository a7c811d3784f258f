package arm64

import "github.com/lunixbochs/corntool/go/models"

// asm-generic numbering
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

func init() {
	Arch.RegisterOS(&models.OS{Name: "linux", Syscalls: linuxSyscalls, Intno: []uint32{2}})
}
