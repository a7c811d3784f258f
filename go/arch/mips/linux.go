package mips

import "github.com/lunixbochs/corntool/go/models"

// o32 numbering starts at 4000
var linuxSyscalls = map[uint64]string{
	4001: "exit",
	4003: "read",
	4004: "write",
	4020: "getpid",
	4024: "getuid",
	4045: "brk",
	4047: "getgid",
	4049: "geteuid",
	4050: "getegid",
	4246: "exit_group",
}

// syscall raises EXCP_SYSCALL
const intSyscall = 17

func init() {
	Arch.RegisterOS(&models.OS{Name: "linux", Syscalls: linuxSyscalls, Intno: []uint32{intSyscall}})
}
