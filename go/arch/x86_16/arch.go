package x86_16

import (
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

// Arch is real-mode 8086. No OS is registered, so only shellcode runs.
var Arch = &models.Arch{
	Name:    "x86_16",
	Bits:    16,
	UC_ARCH: uc.ARCH_X86,
	UC_MODE: uc.MODE_16,
	PC:      uc.X86_REG_IP,
	SP:      uc.X86_REG_SP,
	Regs: models.NewRegs(map[int]string{
		uc.X86_REG_IP: "ip",
		uc.X86_REG_SP: "sp",
		uc.X86_REG_BP: "bp",
		uc.X86_REG_AX: "ax",
		uc.X86_REG_BX: "bx",
		uc.X86_REG_CX: "cx",
		uc.X86_REG_DX: "dx",
		uc.X86_REG_SI: "si",
		uc.X86_REG_DI: "di",

		uc.X86_REG_EFLAGS: "flags",

		uc.X86_REG_CS: "cs",
		uc.X86_REG_DS: "ds",
		uc.X86_REG_ES: "es",
		uc.X86_REG_SS: "ss",
	}),
	GdbRegs: []models.GdbReg{
		{Enum: uc.X86_REG_AX, Bytes: 4}, {Enum: uc.X86_REG_CX, Bytes: 4}, {Enum: uc.X86_REG_DX, Bytes: 4}, {Enum: uc.X86_REG_BX, Bytes: 4},
		{Enum: uc.X86_REG_SP, Bytes: 4}, {Enum: uc.X86_REG_BP, Bytes: 4}, {Enum: uc.X86_REG_SI, Bytes: 4}, {Enum: uc.X86_REG_DI, Bytes: 4},
		{Enum: uc.X86_REG_IP, Bytes: 4}, {Enum: uc.X86_REG_EFLAGS, Bytes: 4},
		{Enum: uc.X86_REG_CS, Bytes: 4}, {Enum: uc.X86_REG_SS, Bytes: 4}, {Enum: uc.X86_REG_DS, Bytes: 4}, {Enum: uc.X86_REG_ES, Bytes: 4},
	},
}
