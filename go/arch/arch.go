package arch

import (
	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/arch/arm"
	"github.com/lunixbochs/corntool/go/arch/arm64"
	"github.com/lunixbochs/corntool/go/arch/mips"
	"github.com/lunixbochs/corntool/go/arch/riscv"
	"github.com/lunixbochs/corntool/go/arch/x86"
	"github.com/lunixbochs/corntool/go/arch/x86_16"
	"github.com/lunixbochs/corntool/go/arch/x86_64"
	"github.com/lunixbochs/corntool/go/models"
)

var archMap = map[models.ArchType]*models.Arch{
	models.ARCH_X86:      x86.Arch,
	models.ARCH_X8664:    x86_64.Arch,
	models.ARCH_A8086:    x86_16.Arch,
	models.ARCH_ARM:      arm.Arch,
	models.ARCH_CORTEX_M: arm.CortexM,
	models.ARCH_ARM64:    arm64.Arch,
	models.ARCH_MIPS:     mips.Arch,
	models.ARCH_RISCV:    riscv.Arch32,
	models.ARCH_RISCV64:  riscv.Arch64,
}

// GetArch returns the engine description for a target. Big-endian arm and
// mips get their own copy with the mode adjusted.
func GetArch(t models.ArchType, endian models.Endian) (*models.Arch, error) {
	a, ok := archMap[t]
	if !ok {
		return nil, errors.Errorf("arch %s is not supported by the emulator", t)
	}
	if endian == models.ENDIAN_BIG {
		switch t {
		case models.ARCH_ARM, models.ARCH_MIPS:
			cp := *a
			cp.UC_MODE = cp.UC_MODE&^uc.MODE_LITTLE_ENDIAN | uc.MODE_BIG_ENDIAN
			return &cp, nil
		default:
			return nil, errors.Errorf("arch %s has no big-endian mode", t)
		}
	}
	return a, nil
}

// GetOS returns the OS binding for an arch, or nil when the arch has none.
func GetOS(a *models.Arch, o models.OSType) *models.OS {
	return a.OS[o.String()]
}
