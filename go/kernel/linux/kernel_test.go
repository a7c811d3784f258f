package linux

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type fakeProc struct {
	bits  int
	mem   map[uint64]byte
	sp    uint64
	brk   uint64
	code  int
	exits int
}

func newFakeProc(bits int) *fakeProc {
	return &fakeProc{bits: bits, mem: make(map[uint64]byte), sp: 0x8000, brk: 0x4000}
}

func (f *fakeProc) Bits() int                   { return f.bits }
func (f *fakeProc) ByteOrder() binary.ByteOrder { return binary.LittleEndian }

func (f *fakeProc) MemRead(addr, size uint64) ([]byte, error) {
	out := make([]byte, size)
	for i := range out {
		b, ok := f.mem[addr+uint64(i)]
		if !ok {
			return nil, errors.Errorf("unmapped %#x", addr+uint64(i))
		}
		out[i] = b
	}
	return out, nil
}

func (f *fakeProc) MemWrite(addr uint64, p []byte) error {
	for i, b := range p {
		f.mem[addr+uint64(i)] = b
	}
	return nil
}

func (f *fakeProc) PushBytes(p []byte) (uint64, error) {
	f.sp -= uint64(len(p))
	return f.sp, f.MemWrite(f.sp, p)
}

func (f *fakeProc) Brk(addr uint64) (uint64, error) {
	if addr > f.brk {
		f.brk = addr
	}
	return f.brk, nil
}

func (f *fakeProc) Exit(code int) {
	f.code = code
	f.exits++
}

func TestWrite(t *testing.T) {
	var out, errOut bytes.Buffer
	k := &Kernel{Stdout: &out, Stderr: &errOut}
	p := newFakeProc(32)
	p.MemWrite(0x100, []byte("hello"))

	res, ok := k.Call(p, "write", []uint64{1, 0x100, 5})
	require.True(t, ok)
	assert.Equal(t, uint64(5), res.Ret)
	assert.Equal(t, []string{"hello"}, res.Strings)
	assert.Equal(t, "hello", out.String())

	res, _ = k.Call(p, "write", []uint64{2, 0x100, 4})
	assert.Equal(t, uint64(4), res.Ret)
	assert.Equal(t, "hell", errOut.String())

	res, _ = k.Call(p, "write", []uint64{7, 0x100, 5})
	assert.Equal(t, Errno(EBADF), res.Ret)

	res, _ = k.Call(p, "write", []uint64{1, 0x9000, 5})
	assert.Equal(t, Errno(EFAULT), res.Ret)
}

func TestRead(t *testing.T) {
	k := &Kernel{Stdin: strings.NewReader("abc")}
	p := newFakeProc(64)
	res, ok := k.Call(p, "read", []uint64{0, 0x200, 16})
	require.True(t, ok)
	assert.Equal(t, uint64(3), res.Ret)
	mem, err := p.MemRead(0x200, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), mem)

	res, _ = k.Call(p, "read", []uint64{3, 0x200, 16})
	assert.Equal(t, Errno(EBADF), res.Ret)
}

func TestExit(t *testing.T) {
	k := &Kernel{}
	p := newFakeProc(32)
	_, ok := k.Call(p, "exit_group", []uint64{42})
	require.True(t, ok)
	assert.Equal(t, 42, p.code)

	// the status is a C int
	k.Call(p, "exit", []uint64{0xffffffff})
	assert.Equal(t, -1, p.code)
	assert.Equal(t, 2, p.exits)
}

func TestIdentity(t *testing.T) {
	p := newFakeProc(32)
	root := &Kernel{Root: true}
	for _, name := range []string{"getuid", "geteuid", "getgid", "getegid", "getuid32", "getegid32"} {
		res, ok := root.Call(p, name, nil)
		require.True(t, ok, name)
		assert.Equal(t, uint64(0), res.Ret, name)
	}
	host := &Kernel{}
	res, _ := host.Call(p, "getuid", nil)
	assert.Equal(t, uint64(unix.Getuid()), res.Ret)
	res, _ = host.Call(p, "getegid", nil)
	assert.Equal(t, uint64(unix.Getegid()), res.Ret)
}

func TestBrk(t *testing.T) {
	k := &Kernel{}
	p := newFakeProc(32)
	res, _ := k.Call(p, "brk", []uint64{0})
	assert.Equal(t, uint64(0x4000), res.Ret)
	res, _ = k.Call(p, "brk", []uint64{0x5000})
	assert.Equal(t, uint64(0x5000), res.Ret)
}

func TestUnknownSyscall(t *testing.T) {
	k := &Kernel{}
	res, ok := k.Call(newFakeProc(32), "fork", nil)
	assert.False(t, ok)
	assert.Equal(t, Errno(ENOSYS), res.Ret)
	assert.False(t, Supported("fork"))
	assert.True(t, Supported("write"))
}

func TestSetupElfAuxv(t *testing.T) {
	k := &Kernel{Root: true}
	for _, bits := range []int{32, 64} {
		p := newFakeProc(bits)
		auxv, err := k.SetupElfAuxv(p, AuxvInfo{Platform: "arm", Entry: 0x1234, Phdr: 0x10034, PhdrEnt: 32, PhdrNum: 1})
		require.NoError(t, err)
		word := bits / 8
		// 3 phdr entries + 12 base entries, each a type/value pair
		require.Len(t, auxv, 15*2*word)
		readWord := func(i int) uint64 {
			if word == 4 {
				return uint64(binary.LittleEndian.Uint32(auxv[i*4:]))
			}
			return binary.LittleEndian.Uint64(auxv[i*8:])
		}
		assert.Equal(t, uint64(ELF_AT_PHDR), readWord(0))
		assert.Equal(t, uint64(0x10034), readWord(1))
		assert.Equal(t, uint64(ELF_AT_NULL), readWord(28))
		// platform string sits at the stack top
		plat, err := p.MemRead(p.sp, 4)
		require.NoError(t, err)
		assert.Equal(t, "arm\x00", string(plat))
	}
}
