package coverage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

type drcovBB struct {
	Start uint32
	Size  uint16
	ModId uint16
}

var strucOptions = &struc.Options{Order: binary.LittleEndian}

type drcovModule struct {
	models.Image
	id int
}

// Drcov collects basic blocks in drcov format. In exact mode every executed
// block is kept in order; otherwise each distinct block is kept once.
type Drcov struct {
	exact   bool
	modules []drcovModule
	blocks  []drcovBB
	seen    map[drcovBB]bool
	// blocks outside every module
	Dropped int
}

func NewDrcov(exact bool, images []models.Image) *Drcov {
	d := &Drcov{exact: exact, seen: make(map[drcovBB]bool)}
	for i, img := range images {
		d.modules = append(d.modules, drcovModule{img, i})
	}
	sort.Slice(d.modules, func(i, j int) bool { return d.modules[i].Base < d.modules[j].Base })
	return d
}

func (d *Drcov) find(addr uint64) *drcovModule {
	i := sort.Search(len(d.modules), func(i int) bool { return d.modules[i].End > addr })
	if i < len(d.modules) && d.modules[i].Contains(addr) {
		return &d.modules[i]
	}
	return nil
}

func (d *Drcov) Block(addr uint64, size uint32) {
	mod := d.find(addr)
	if mod == nil {
		d.Dropped++
		return
	}
	bb := drcovBB{
		Start: uint32(addr - mod.Base),
		Size:  uint16(size),
		ModId: uint16(mod.id),
	}
	if !d.exact {
		if d.seen[bb] {
			return
		}
		d.seen[bb] = true
	}
	d.blocks = append(d.blocks, bb)
}

func (d *Drcov) Len() int { return len(d.blocks) }

// WriteTo writes the drcov v2 header, module table and packed BB table.
func (d *Drcov) WriteTo(out io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "DRCOV VERSION: 2\n")
	fmt.Fprintf(&buf, "DRCOV FLAVOR: drcov-64\n")
	fmt.Fprintf(&buf, "Module Table: version 2, count %d\n", len(d.modules))
	fmt.Fprintf(&buf, "Columns: id, base, end, entry, path\n")
	for _, mod := range d.modules {
		fmt.Fprintf(&buf, "%d, %#016x, %#016x, %#016x, %s\n", mod.id, mod.Base, mod.End, mod.Entry, mod.Name)
	}
	fmt.Fprintf(&buf, "BB Table: %d bbs\n", len(d.blocks))
	for i := range d.blocks {
		if err := struc.PackWithOptions(&buf, &d.blocks[i], strucOptions); err != nil {
			return 0, errors.Wrap(err, "failed to pack drcov block")
		}
	}
	return buf.WriteTo(out)
}
