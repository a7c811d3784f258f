package arm

import (
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

var regs = map[int]string{
	uc.ARM_REG_R0:   "r0",
	uc.ARM_REG_R1:   "r1",
	uc.ARM_REG_R2:   "r2",
	uc.ARM_REG_R3:   "r3",
	uc.ARM_REG_R4:   "r4",
	uc.ARM_REG_R5:   "r5",
	uc.ARM_REG_R6:   "r6",
	uc.ARM_REG_R7:   "r7",
	uc.ARM_REG_R8:   "r8",
	uc.ARM_REG_R9:   "r9",
	uc.ARM_REG_R10:  "r10",
	uc.ARM_REG_R11:  "r11",
	uc.ARM_REG_R12:  "r12",
	uc.ARM_REG_SP:   "sp",
	uc.ARM_REG_LR:   "lr",
	uc.ARM_REG_PC:   "pc",
	uc.ARM_REG_CPSR: "cpsr",
}

// r0-r15 then cpsr, without the legacy fpa block
var gdbRegs = []models.GdbReg{
	{Enum: uc.ARM_REG_R0, Bytes: 4}, {Enum: uc.ARM_REG_R1, Bytes: 4}, {Enum: uc.ARM_REG_R2, Bytes: 4}, {Enum: uc.ARM_REG_R3, Bytes: 4},
	{Enum: uc.ARM_REG_R4, Bytes: 4}, {Enum: uc.ARM_REG_R5, Bytes: 4}, {Enum: uc.ARM_REG_R6, Bytes: 4}, {Enum: uc.ARM_REG_R7, Bytes: 4},
	{Enum: uc.ARM_REG_R8, Bytes: 4}, {Enum: uc.ARM_REG_R9, Bytes: 4}, {Enum: uc.ARM_REG_R10, Bytes: 4}, {Enum: uc.ARM_REG_R11, Bytes: 4},
	{Enum: uc.ARM_REG_R12, Bytes: 4}, {Enum: uc.ARM_REG_SP, Bytes: 4}, {Enum: uc.ARM_REG_LR, Bytes: 4}, {Enum: uc.ARM_REG_PC, Bytes: 4},
	{Enum: uc.ARM_REG_CPSR, Bytes: 4},
}

var Arch = &models.Arch{
	Name:    "arm",
	Bits:    32,
	UC_ARCH: uc.ARCH_ARM,
	UC_MODE: uc.MODE_ARM,
	PC:      uc.ARM_REG_PC,
	SP:      uc.ARM_REG_SP,
	Regs:    models.NewRegs(regs),
	GdbRegs: gdbRegs,
	Syscall: &models.SyscallABI{
		Num:  uc.ARM_REG_R7,
		Args: []int{uc.ARM_REG_R0, uc.ARM_REG_R1, uc.ARM_REG_R2, uc.ARM_REG_R3, uc.ARM_REG_R4, uc.ARM_REG_R5},
		Ret:  uc.ARM_REG_R0,
	},
}

// CortexM is the microcontroller profile. It only executes thumb code.
var CortexM = &models.Arch{
	Name:    "cortex_m",
	Bits:    32,
	UC_ARCH: uc.ARCH_ARM,
	UC_MODE: uc.MODE_THUMB | uc.MODE_MCLASS,
	PC:      uc.ARM_REG_PC,
	SP:      uc.ARM_REG_SP,
	Regs:    models.NewRegs(regs),
	GdbRegs: gdbRegs,
	Syscall: Arch.Syscall,
}
