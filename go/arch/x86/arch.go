package x86

import (
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

var Arch = &models.Arch{
	Name:    "x86",
	Bits:    32,
	UC_ARCH: uc.ARCH_X86,
	UC_MODE: uc.MODE_32,
	PC:      uc.X86_REG_EIP,
	SP:      uc.X86_REG_ESP,
	Regs: models.NewRegs(map[int]string{
		uc.X86_REG_EAX:    "eax",
		uc.X86_REG_EBX:    "ebx",
		uc.X86_REG_ECX:    "ecx",
		uc.X86_REG_EDX:    "edx",
		uc.X86_REG_ESI:    "esi",
		uc.X86_REG_EDI:    "edi",
		uc.X86_REG_EBP:    "ebp",
		uc.X86_REG_ESP:    "esp",
		uc.X86_REG_EIP:    "eip",
		uc.X86_REG_EFLAGS: "eflags",
	}),
	// i386 core order
	GdbRegs: []models.GdbReg{
		{Enum: uc.X86_REG_EAX, Bytes: 4}, {Enum: uc.X86_REG_ECX, Bytes: 4}, {Enum: uc.X86_REG_EDX, Bytes: 4}, {Enum: uc.X86_REG_EBX, Bytes: 4},
		{Enum: uc.X86_REG_ESP, Bytes: 4}, {Enum: uc.X86_REG_EBP, Bytes: 4}, {Enum: uc.X86_REG_ESI, Bytes: 4}, {Enum: uc.X86_REG_EDI, Bytes: 4},
		{Enum: uc.X86_REG_EIP, Bytes: 4}, {Enum: uc.X86_REG_EFLAGS, Bytes: 4},
		{Enum: uc.X86_REG_CS, Bytes: 4}, {Enum: uc.X86_REG_SS, Bytes: 4}, {Enum: uc.X86_REG_DS, Bytes: 4},
		{Enum: uc.X86_REG_ES, Bytes: 4}, {Enum: uc.X86_REG_FS, Bytes: 4}, {Enum: uc.X86_REG_GS, Bytes: 4},
	},
	Syscall: &models.SyscallABI{
		Num:  uc.X86_REG_EAX,
		Args: []int{uc.X86_REG_EBX, uc.X86_REG_ECX, uc.X86_REG_EDX, uc.X86_REG_ESI, uc.X86_REG_EDI, uc.X86_REG_EBP},
		Ret:  uc.X86_REG_EAX,
	},
}
