package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/models/mock"
)

func newTestContext(blocks int) (*Context, *mock.Session, *bytes.Buffer) {
	s := mock.NewSession(nil)
	for i := 0; i < blocks; i++ {
		s.Blocks = append(s.Blocks, mock.Block{Addr: uint64(0x1000 + i*4), Size: 4})
	}
	var out bytes.Buffer
	return NewContext(&out, s, nil), s, &out
}

func TestUnknownAndParseError(t *testing.T) {
	c, _, out := newTestContext(1)
	require.NoError(t, Run(c, "frobnicate"))
	assert.Contains(t, out.String(), "command not found")
	out.Reset()
	require.NoError(t, Run(c, `reg "pc`))
	assert.Contains(t, out.String(), "parse error")
	out.Reset()
	require.NoError(t, Run(c, "   "))
	assert.Empty(t, out.String())
}

func TestStepAndWhere(t *testing.T) {
	c, s, out := newTestContext(4)
	require.NoError(t, Run(c, "step"))
	pc, _ := s.PC()
	assert.Equal(t, uint64(1), pc)
	assert.Contains(t, out.String(), "0x1")

	require.NoError(t, Run(c, "s 2"))
	pc, _ = s.PC()
	assert.Equal(t, uint64(3), pc)

	out.Reset()
	require.NoError(t, Run(c, "step 10"))
	assert.True(t, s.Exited())
	assert.Contains(t, out.String(), "exited with code 0")
}

func TestRegReadWrite(t *testing.T) {
	c, s, out := newTestContext(1)
	require.NoError(t, Run(c, "reg sp=0x10"))
	val, _ := s.RegRead(1)
	assert.Equal(t, uint64(0x10), val)

	require.NoError(t, Run(c, "reg sp=-1"))
	val, _ = s.RegRead(1)
	assert.Equal(t, ^uint64(0), val)

	out.Reset()
	require.NoError(t, Run(c, "r sp"))
	assert.Equal(t, "sp 0xffffffffffffffff\n", out.String())

	out.Reset()
	require.NoError(t, Run(c, "reg bogus"))
	assert.Equal(t, "reg bogus not found\n", out.String())

	out.Reset()
	require.NoError(t, Run(c, "reg"))
	assert.Equal(t, "pc 0x0\nsp 0xffffffffffffffff\n", out.String())
}

func TestMem(t *testing.T) {
	c, _, out := newTestContext(1)
	require.NoError(t, Run(c, "mem 0x100 = 41424344"))
	require.NoError(t, Run(c, "x 0x100 4"))
	assert.Contains(t, out.String(), "41424344")
	assert.Contains(t, out.String(), "[ABCD]")

	out.Reset()
	require.NoError(t, Run(c, "mem 0x100"))
	assert.Contains(t, out.String(), "usage: mem")

	out.Reset()
	require.NoError(t, Run(c, "mem 0x100 = zz"))
	assert.Contains(t, out.String(), "bad hex")
}

func TestBreakContinue(t *testing.T) {
	c, s, out := newTestContext(5)
	require.NoError(t, Run(c, "break 3"))
	require.NoError(t, Run(c, "continue"))
	pc, _ := s.PC()
	assert.Equal(t, uint64(3), pc)

	out.Reset()
	require.NoError(t, Run(c, "info"))
	assert.Contains(t, out.String(), "break 0x3")

	require.NoError(t, Run(c, "delete 3"))
	out.Reset()
	require.NoError(t, Run(c, "delete 3"))
	assert.Contains(t, out.String(), "no breakpoint at 0x3")

	require.NoError(t, Run(c, "c"))
	assert.True(t, s.Exited())
	out.Reset()
	require.NoError(t, Run(c, "c"))
	assert.Contains(t, out.String(), "guest has exited")
}

func TestBackNeedsRecorder(t *testing.T) {
	c, _, out := newTestContext(2)
	require.NoError(t, Run(c, "back"))
	assert.Contains(t, out.String(), "requires record/replay")
}

type fakeRR struct {
	s     *mock.Session
	steps []uint64
}

func (r *fakeRR) Step() error {
	pc, _ := r.s.PC()
	r.steps = append(r.steps, pc)
	return r.s.Step()
}

func (r *fakeRR) Back() error {
	last := r.steps[len(r.steps)-1]
	r.steps = r.steps[:len(r.steps)-1]
	return r.s.ContextRestore(last)
}

func (r *fakeRR) Len() int { return len(r.steps) }

func TestRecordedContinueAndBack(t *testing.T) {
	c, s, out := newTestContext(6)
	rr := &fakeRR{s: s}
	c.RR = rr
	require.NoError(t, Run(c, "break 4"))
	require.NoError(t, Run(c, "continue"))
	pc, _ := s.PC()
	assert.Equal(t, uint64(4), pc)
	assert.Equal(t, 4, rr.Len())

	require.NoError(t, Run(c, "back 3"))
	pc, _ = s.PC()
	assert.Equal(t, uint64(1), pc)

	out.Reset()
	require.NoError(t, Run(c, "info"))
	assert.Contains(t, out.String(), "recorded steps: 1")
}

func TestDisUnavailableOnMock(t *testing.T) {
	c, _, out := newTestContext(1)
	require.NoError(t, Run(c, "dis"))
	assert.Contains(t, out.String(), "disassembly unavailable")
}

type disTarget struct {
	*mock.Session
}

func (d disTarget) Disassemble(addr uint64, count int) ([]string, error) {
	return []string{"0x0: nop", "0x1: nop"}[:count], nil
}

func TestDisAndWhereUseDisassembler(t *testing.T) {
	s := mock.NewSession(nil)
	s.Blocks = []mock.Block{{Addr: 0, Size: 1}, {Addr: 1, Size: 1}}
	var out bytes.Buffer
	c := NewContext(&out, disTarget{s}, nil)
	require.NoError(t, Run(c, "dis 0 2"))
	assert.Equal(t, "  0x0: nop\n  0x1: nop\n", out.String())
	out.Reset()
	c.Where()
	assert.Equal(t, "0x0: nop\n", out.String())
}

func TestQuitAndHelp(t *testing.T) {
	c, _, out := newTestContext(1)
	require.NoError(t, Run(c, "help"))
	for _, name := range []string{"step", "continue", "back", "break", "delete", "reg", "mem", "dis", "info", "quit"} {
		assert.Contains(t, out.String(), name)
	}
	require.NoError(t, Run(c, "q"))
	assert.True(t, c.Quit)
}
