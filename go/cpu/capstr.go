package cpu

import (
	"bytes"
	"sync"

	cs "github.com/lunixbochs/capstr"
	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

// Ins is one disassembled instruction.
type Ins interface {
	Addr() uint64
	Bytes() []byte
	Mnemonic() string
	OpStr() string
}

type discacheEntry struct {
	mem []byte
	dis []Ins
}

// discache remembers the last disassembly at each address, keyed on the
// bytes so self-modifying code is re-read.
type discache struct {
	sync.RWMutex
	cache map[uint64]*discacheEntry
}

func (d *discache) Get(addr uint64, mem []byte) []Ins {
	d.RLock()
	defer d.RUnlock()
	if ent, ok := d.cache[addr]; ok && bytes.Equal(mem, ent.mem) {
		return ent.dis
	}
	return nil
}

func (d *discache) Put(addr uint64, mem []byte, dis []Ins) {
	d.Lock()
	defer d.Unlock()
	d.cache[addr] = &discacheEntry{mem: append([]byte(nil), mem...), dis: dis}
}

type Capstr struct {
	Arch, Mode int

	cs *cs.Engine
	dc discache
}

func (c *Capstr) Open() (err error) {
	engine, err := cs.New(c.Arch, c.Mode)
	if err == nil {
		c.cs = engine
		c.dc.cache = make(map[uint64]*discacheEntry)
	}
	return errors.Wrap(err, "cs.New() failed")
}

func (c *Capstr) Dis(mem []byte, addr uint64) ([]Ins, error) {
	if c.cs == nil {
		if err := c.Open(); err != nil {
			return nil, err
		}
	}
	if dis := c.dc.Get(addr, mem); dis != nil {
		return dis, nil
	}
	dis, err := c.cs.Dis(mem, addr, 0)
	if err != nil {
		return nil, errors.Wrap(err, "capstone disassembly failed")
	}
	ret := make([]Ins, len(dis))
	for i, v := range dis {
		ret[i] = v
	}
	c.dc.Put(addr, mem, ret)
	return ret, nil
}

// NewCapstr picks the capstone arch and mode for a target.
func NewCapstr(arch models.ArchType, endian models.Endian, thumb bool) (*Capstr, error) {
	order := cs.MODE_LITTLE_ENDIAN
	if endian == models.ENDIAN_BIG {
		order = cs.MODE_BIG_ENDIAN
	}
	c := &Capstr{}
	switch arch {
	case models.ARCH_X86:
		c.Arch, c.Mode = cs.ARCH_X86, cs.MODE_32
	case models.ARCH_X8664:
		c.Arch, c.Mode = cs.ARCH_X86, cs.MODE_64
	case models.ARCH_A8086:
		c.Arch, c.Mode = cs.ARCH_X86, cs.MODE_16
	case models.ARCH_ARM:
		c.Arch, c.Mode = cs.ARCH_ARM, cs.MODE_ARM|order
		if thumb {
			c.Mode = cs.MODE_THUMB | order
		}
	case models.ARCH_CORTEX_M:
		c.Arch, c.Mode = cs.ARCH_ARM, cs.MODE_THUMB
	case models.ARCH_ARM64:
		c.Arch, c.Mode = cs.ARCH_ARM64, cs.MODE_ARM
	case models.ARCH_MIPS:
		c.Arch, c.Mode = cs.ARCH_MIPS, cs.MODE_MIPS32|order
	case models.ARCH_PPC:
		c.Arch, c.Mode = cs.ARCH_PPC, cs.MODE_32|cs.MODE_BIG_ENDIAN
	default:
		return nil, errors.Errorf("no disassembler for arch %s", arch)
	}
	return c, nil
}
