package mips

import (
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

var Arch = &models.Arch{
	Name:    "mips",
	Bits:    32,
	UC_ARCH: uc.ARCH_MIPS,
	UC_MODE: uc.MODE_MIPS32 | uc.MODE_LITTLE_ENDIAN,
	PC:      uc.MIPS_REG_PC,
	SP:      uc.MIPS_REG_SP,
	Regs: models.NewRegs(map[int]string{
		uc.MIPS_REG_AT: "at",
		uc.MIPS_REG_V0: "v0",
		uc.MIPS_REG_V1: "v1",
		uc.MIPS_REG_A0: "a0",
		uc.MIPS_REG_A1: "a1",
		uc.MIPS_REG_A2: "a2",
		uc.MIPS_REG_A3: "a3",
		uc.MIPS_REG_T0: "t0",
		uc.MIPS_REG_T1: "t1",
		uc.MIPS_REG_T2: "t2",
		uc.MIPS_REG_T3: "t3",
		uc.MIPS_REG_T4: "t4",
		uc.MIPS_REG_T5: "t5",
		uc.MIPS_REG_T6: "t6",
		uc.MIPS_REG_T7: "t7",
		uc.MIPS_REG_T8: "t8",
		uc.MIPS_REG_T9: "t9",
		uc.MIPS_REG_S0: "s0",
		uc.MIPS_REG_S1: "s1",
		uc.MIPS_REG_S2: "s2",
		uc.MIPS_REG_S3: "s3",
		uc.MIPS_REG_S4: "s4",
		uc.MIPS_REG_S5: "s5",
		uc.MIPS_REG_S6: "s6",
		uc.MIPS_REG_S7: "s7",
		uc.MIPS_REG_S8: "s8",
		uc.MIPS_REG_K0: "k0",
		uc.MIPS_REG_K1: "k1",
		uc.MIPS_REG_GP: "gp",
		uc.MIPS_REG_SP: "sp",
		uc.MIPS_REG_RA: "ra",
		uc.MIPS_REG_PC: "pc",
	}),
	Syscall: &models.SyscallABI{
		Num:  uc.MIPS_REG_V0,
		Args: []int{uc.MIPS_REG_A0, uc.MIPS_REG_A1, uc.MIPS_REG_A2, uc.MIPS_REG_A3},
		Ret:  uc.MIPS_REG_V0,
	},
}

func init() {
	// zero..ra are contiguous, then sr lo hi bad cause pc
	var gdb []models.GdbReg
	for i := 0; i < 32; i++ {
		gdb = append(gdb, models.GdbReg{Enum: uc.MIPS_REG_0 + i, Bytes: 4})
	}
	gdb = append(gdb,
		models.GdbReg{Enum: -1, Bytes: 4},
		models.GdbReg{Enum: uc.MIPS_REG_LO, Bytes: 4},
		models.GdbReg{Enum: uc.MIPS_REG_HI, Bytes: 4},
		models.GdbReg{Enum: -1, Bytes: 4},
		models.GdbReg{Enum: -1, Bytes: 4},
		models.GdbReg{Enum: uc.MIPS_REG_PC, Bytes: 4},
	)
	Arch.GdbRegs = gdb
}
