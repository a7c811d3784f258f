package riscv

import (
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

var abiNames = []string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var abi = &models.SyscallABI{
	Num:  uc.RISCV_REG_A7,
	Args: []int{uc.RISCV_REG_A0, uc.RISCV_REG_A1, uc.RISCV_REG_A2, uc.RISCV_REG_A3, uc.RISCV_REG_A4, uc.RISCV_REG_A5},
	Ret:  uc.RISCV_REG_A0,
}

func newArch(name string, bits, mode int) *models.Arch {
	regs := map[int]string{uc.RISCV_REG_PC: "pc"}
	var gdb []models.GdbReg
	for i, n := range abiNames {
		if i > 0 {
			regs[uc.RISCV_REG_X0+i] = n
		}
		gdb = append(gdb, models.GdbReg{Enum: uc.RISCV_REG_X0 + i, Bytes: bits / 8})
	}
	gdb = append(gdb, models.GdbReg{Enum: uc.RISCV_REG_PC, Bytes: bits / 8})
	return &models.Arch{
		Name:    name,
		Bits:    bits,
		UC_ARCH: uc.ARCH_RISCV,
		UC_MODE: mode,
		PC:      uc.RISCV_REG_PC,
		SP:      uc.RISCV_REG_SP,
		Regs:    models.NewRegs(regs),
		GdbRegs: gdb,
		Syscall: abi,
	}
}

var (
	Arch32 = newArch("riscv", 32, uc.MODE_RISCV32)
	Arch64 = newArch("riscv64", 64, uc.MODE_RISCV64)
)
