package cpu

import (
	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

type Keystone struct {
	Arch ks.Architecture
	Mode ks.Mode
	ks   *ks.Keystone
}

func (k *Keystone) Open() (err error) {
	k.ks, err = ks.New(k.Arch, k.Mode)
	return errors.Wrap(err, "ks.New() failed")
}

func (k *Keystone) Asm(asm string, addr uint64) ([]byte, error) {
	if k.ks == nil {
		if err := k.Open(); err != nil {
			return nil, err
		}
	}
	out, _, ok := k.ks.Assemble(asm, addr)
	if !ok {
		return nil, errors.Wrap(k.ks.LastError(), "ks.Assemble() failed")
	}
	return out, nil
}

func (k *Keystone) Close() error {
	if k.ks == nil {
		return nil
	}
	err := k.ks.Close()
	k.ks = nil
	return err
}

// NewKeystone picks the keystone arch and mode for a target.
func NewKeystone(arch models.ArchType, endian models.Endian, thumb bool) (*Keystone, error) {
	var order ks.Mode = ks.MODE_LITTLE_ENDIAN
	if endian == models.ENDIAN_BIG {
		order = ks.MODE_BIG_ENDIAN
	}
	k := &Keystone{}
	switch arch {
	case models.ARCH_X86:
		k.Arch, k.Mode = ks.ARCH_X86, ks.MODE_32
	case models.ARCH_X8664:
		k.Arch, k.Mode = ks.ARCH_X86, ks.MODE_64
	case models.ARCH_A8086:
		k.Arch, k.Mode = ks.ARCH_X86, ks.MODE_16
	case models.ARCH_ARM:
		k.Arch, k.Mode = ks.ARCH_ARM, ks.MODE_ARM|order
		if thumb {
			k.Mode = ks.MODE_THUMB | order
		}
	case models.ARCH_CORTEX_M:
		k.Arch, k.Mode = ks.ARCH_ARM, ks.MODE_THUMB|ks.MODE_LITTLE_ENDIAN
	case models.ARCH_ARM64:
		k.Arch, k.Mode = ks.ARCH_ARM64, ks.MODE_LITTLE_ENDIAN
	case models.ARCH_MIPS:
		k.Arch, k.Mode = ks.ARCH_MIPS, ks.MODE_MIPS32|order
	case models.ARCH_PPC:
		k.Arch, k.Mode = ks.ARCH_PPC, ks.MODE_PPC32|ks.MODE_BIG_ENDIAN
	default:
		return nil, errors.Errorf("no assembler for arch %s", arch)
	}
	return k, nil
}

// Assemble is the payload assembler used by "code --format asm".
func Assemble(text string, arch models.ArchType, endian models.Endian, thumb bool) ([]byte, error) {
	k, err := NewKeystone(arch, endian, thumb)
	if err != nil {
		return nil, err
	}
	defer k.Close()
	return k.Asm(text, 0)
}
