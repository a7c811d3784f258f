package loader

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

const (
	PROT_READ  = 1
	PROT_WRITE = 2
	PROT_EXEC  = 4
)

// Segment is one loadable region. Data is padded to the in-memory size.
type Segment struct {
	Addr uint64
	Off  uint64
	Data []byte
	Prot int
}

func (s Segment) End() uint64 { return s.Addr + uint64(len(s.Data)) }

// ContainsPhys reports whether file offset off is loaded by s.
func (s Segment) ContainsPhys(off uint64) bool {
	return off >= s.Off && off < s.Off+uint64(len(s.Data))
}

func getMagic(r io.ReaderAt) []byte {
	ret := make([]byte, 4)
	r.ReadAt(ret, 0)
	return ret
}

// LoadFile reads an executable from disk. Only ELF is understood.
func LoadFile(path string) (*ElfLoader, error) {
	p, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read executable")
	}
	r := bytes.NewReader(p)
	if !MatchElf(r) {
		return nil, errors.Errorf("%s: not an ELF file", path)
	}
	return NewElfLoader(r)
}
