package arm

import "github.com/lunixbochs/corntool/go/models"

// EABI numbering
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
	248: "exit_group",
}

// svc raises EXCP_SWI
const intSWI = 2

func init() {
	linux := &models.OS{Name: "linux", Syscalls: linuxSyscalls, Intno: []uint32{intSWI}}
	Arch.RegisterOS(linux)
	CortexM.RegisterOS(linux)
}
