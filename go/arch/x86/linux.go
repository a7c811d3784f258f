package x86

import "github.com/lunixbochs/corntool/go/models"

var linuxSyscalls = map[uint64]string{
	1:   "exit",
	3:   "read",
	4:   "write",
	20:  "getpid",
	24:  "getuid",
	45:  "brk",
	47:  "getgid",
	49:  "geteuid",
	50:  "getegid",
	199: "getuid32",
	200: "getgid32",
	201: "geteuid32",
	202: "getegid32",
	252: "exit_group",
}

func init() {
	Arch.RegisterOS(&models.OS{Name: "linux", Syscalls: linuxSyscalls, Intno: []uint32{0x80}})
}
