package coverage

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

// Collector accumulates executed blocks and serializes them.
type Collector interface {
	Block(addr uint64, size uint32)
	WriteTo(w io.Writer) (int64, error)
}

func New(format models.CoverageFormat, images []models.Image) (Collector, error) {
	switch format {
	case models.COVERAGE_DRCOV:
		return NewDrcov(false, images), nil
	case models.COVERAGE_DRCOV_EXACT:
		return NewDrcov(true, images), nil
	}
	return nil, models.Configf("unsupported coverage format %s", format)
}

// Flush writes c to path.
func Flush(c Collector, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create coverage file")
	}
	w := bufio.NewWriter(f)
	if _, err := c.WriteTo(w); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write coverage")
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write coverage")
	}
	return errors.Wrap(f.Close(), "failed to close coverage file")
}

// Collect runs run with block coverage hooked into s. The artifact is
// written to path however run ends, including on error or panic.
func Collect(s models.Session, format models.CoverageFormat, path string, run func() error) (err error) {
	c, err := New(format, s.Images())
	if err != nil {
		return err
	}
	if err := s.HookBlock(c.Block); err != nil {
		return errors.Wrap(err, "failed to hook blocks for coverage")
	}
	defer func() {
		if ferr := Flush(c, path); ferr != nil && err == nil {
			err = ferr
		}
	}()
	return run()
}
