package x86_64

import (
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

var linuxSyscalls = map[uint64]string{
	0:   "read",
	1:   "write",
	12:  "brk",
	39:  "getpid",
	60:  "exit",
	102: "getuid",
	104: "getgid",
	107: "geteuid",
	108: "getegid",
	231: "exit_group",
}

func init() {
	Arch.RegisterOS(&models.OS{Name: "linux", Syscalls: linuxSyscalls, Insn: uc.X86_INS_SYSCALL})
}
