package arm64

import (
	"fmt"

	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/models"
)

var Arch = &models.Arch{
	Name:    "arm64",
	Bits:    64,
	UC_ARCH: uc.ARCH_ARM64,
	UC_MODE: uc.MODE_ARM,
	PC:      uc.ARM64_REG_PC,
	SP:      uc.ARM64_REG_SP,
	Syscall: &models.SyscallABI{
		Num:  uc.ARM64_REG_X8,
		Args: []int{uc.ARM64_REG_X0, uc.ARM64_REG_X1, uc.ARM64_REG_X2, uc.ARM64_REG_X3, uc.ARM64_REG_X4, uc.ARM64_REG_X5},
		Ret:  uc.ARM64_REG_X0,
	},
}

func init() {
	regs := map[int]string{
		uc.ARM64_REG_X29:  "fp",
		uc.ARM64_REG_X30:  "lr",
		uc.ARM64_REG_SP:   "sp",
		uc.ARM64_REG_PC:   "pc",
		uc.ARM64_REG_NZCV: "nzcv",
	}
	// X0-X28 are contiguous in unicorn
	var gdb []models.GdbReg
	for i := 0; i < 29; i++ {
		regs[uc.ARM64_REG_X0+i] = fmt.Sprintf("x%d", i)
		gdb = append(gdb, models.GdbReg{Enum: uc.ARM64_REG_X0 + i, Bytes: 8})
	}
	gdb = append(gdb,
		models.GdbReg{Enum: uc.ARM64_REG_X29, Bytes: 8},
		models.GdbReg{Enum: uc.ARM64_REG_X30, Bytes: 8},
		models.GdbReg{Enum: uc.ARM64_REG_SP, Bytes: 8},
		models.GdbReg{Enum: uc.ARM64_REG_PC, Bytes: 8},
		models.GdbReg{Enum: uc.ARM64_REG_NZCV, Bytes: 4},
	)
	Arch.Regs = models.NewRegs(regs)
	Arch.GdbRegs = gdb
}
