package x86_64

import (
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

var Arch = &models.Arch{
	Name:    "x86_64",
	Bits:    64,
	UC_ARCH: uc.ARCH_X86,
	UC_MODE: uc.MODE_64,
	PC:      uc.X86_REG_RIP,
	SP:      uc.X86_REG_RSP,
	Regs: models.NewRegs(map[int]string{
		uc.X86_REG_RAX:    "rax",
		uc.X86_REG_RBX:    "rbx",
		uc.X86_REG_RCX:    "rcx",
		uc.X86_REG_RDX:    "rdx",
		uc.X86_REG_RSI:    "rsi",
		uc.X86_REG_RDI:    "rdi",
		uc.X86_REG_RBP:    "rbp",
		uc.X86_REG_RSP:    "rsp",
		uc.X86_REG_R8:     "r8",
		uc.X86_REG_R9:     "r9",
		uc.X86_REG_R10:    "r10",
		uc.X86_REG_R11:    "r11",
		uc.X86_REG_R12:    "r12",
		uc.X86_REG_R13:    "r13",
		uc.X86_REG_R14:    "r14",
		uc.X86_REG_R15:    "r15",
		uc.X86_REG_RIP:    "rip",
		uc.X86_REG_EFLAGS: "eflags",
	}),
	GdbRegs: []models.GdbReg{
		{Enum: uc.X86_REG_RAX, Bytes: 8}, {Enum: uc.X86_REG_RBX, Bytes: 8}, {Enum: uc.X86_REG_RCX, Bytes: 8}, {Enum: uc.X86_REG_RDX, Bytes: 8},
		{Enum: uc.X86_REG_RSI, Bytes: 8}, {Enum: uc.X86_REG_RDI, Bytes: 8}, {Enum: uc.X86_REG_RBP, Bytes: 8}, {Enum: uc.X86_REG_RSP, Bytes: 8},
		{Enum: uc.X86_REG_R8, Bytes: 8}, {Enum: uc.X86_REG_R9, Bytes: 8}, {Enum: uc.X86_REG_R10, Bytes: 8}, {Enum: uc.X86_REG_R11, Bytes: 8},
		{Enum: uc.X86_REG_R12, Bytes: 8}, {Enum: uc.X86_REG_R13, Bytes: 8}, {Enum: uc.X86_REG_R14, Bytes: 8}, {Enum: uc.X86_REG_R15, Bytes: 8},
		{Enum: uc.X86_REG_RIP, Bytes: 8}, {Enum: uc.X86_REG_EFLAGS, Bytes: 4},
		{Enum: uc.X86_REG_CS, Bytes: 4}, {Enum: uc.X86_REG_SS, Bytes: 4}, {Enum: uc.X86_REG_DS, Bytes: 4},
		{Enum: uc.X86_REG_ES, Bytes: 4}, {Enum: uc.X86_REG_FS, Bytes: 4}, {Enum: uc.X86_REG_GS, Bytes: 4},
	},
	Syscall: &models.SyscallABI{
		Num:  uc.X86_REG_RAX,
		Args: []int{uc.X86_REG_RDI, uc.X86_REG_RSI, uc.X86_REG_RDX, uc.X86_REG_R10, uc.X86_REG_R8, uc.X86_REG_R9},
		Ret:  uc.X86_REG_RAX,
	},
}
