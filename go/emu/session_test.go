//go:build native
// +build native

package emu

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/config"
	"github.com/lunixbochs/corntool/go/logging"
	"github.com/lunixbochs/corntool/go/models"
)

const base = config.DEFAULT_CODE_BASE

var (
	exit42   = []byte{0xb8, 0x3c, 0, 0, 0, 0xbf, 0x2a, 0, 0, 0, 0x0f, 0x05} // mov eax, 60; mov edi, 42; syscall
	nops     = []byte{0x90, 0x90, 0x90}
	spin     = []byte{0xeb, 0xfe}                                    // jmp $
	badRead  = []byte{0x8b, 0x04, 0x25, 0x00, 0x50, 0x00, 0x00, 0x90} // mov eax, [0x5000]; nop
	sys999   = []byte{0xb8, 0xe7, 0x03, 0, 0, 0x0f, 0x05}             // mov eax, 999; syscall
	writeOut = []byte{
		0xbe, 0x00, 0x00, 0x00, 0x01, // mov esi, 0x1000000
		0xbf, 0x01, 0, 0, 0, // mov edi, 1
		0xba, 0x02, 0, 0, 0, // mov edx, 2
		0xb8, 0x01, 0, 0, 0, // mov eax, 1
		0x0f, 0x05, // syscall
	}
)

func newCode(t *testing.T, arch models.ArchType, code []byte) *Session {
	t.Helper()
	s, err := NewSession(&models.Config{
		Code: &models.CodeConfig{
			Rootfs: ".",
			Code:   code,
			OS:     models.OS_LINUX,
			Arch:   arch,
			Endian: models.ENDIAN_LITTLE,
		},
		Verbose: models.VERBOSE_OFF,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExitSyscall(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, exit42)
	require.NoError(t, s.Run(0))
	assert.True(t, s.Exited())
	assert.Equal(t, 42, s.ExitCode())
	require.Len(t, s.Syscalls(), 1)
	assert.Equal(t, "exit", s.Syscalls()[0].Name)
	assert.Equal(t, uint64(42), s.Syscalls()[0].Args[0])
}

func TestInt80(t *testing.T) {
	code := []byte{0xb8, 0x01, 0, 0, 0, 0xbb, 0x07, 0, 0, 0, 0xcd, 0x80} // exit(7)
	s := newCode(t, models.ARCH_X86, code)
	require.NoError(t, s.Run(0))
	assert.Equal(t, 7, s.ExitCode())
}

func TestRunOffEnd(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, nops)
	require.NoError(t, s.Run(0))
	assert.True(t, s.Exited())
	assert.Equal(t, 0, s.ExitCode())
	assert.Equal(t, []models.Image{{Name: "[shellcode]", Base: base, End: base + 3, Entry: base}}, s.Images())
}

func TestWriteSyscall(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, writeOut)
	var out bytes.Buffer
	s.kernel.Stdout = &out
	require.NoError(t, s.Run(0))
	assert.Equal(t, []byte{0xbe, 0x00}, out.Bytes())
	require.Len(t, s.Syscalls(), 1)
	assert.Equal(t, uint64(2), s.Syscalls()[0].Ret)
}

func TestUnknownSyscall(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, sys999)
	require.NoError(t, s.Run(0))
	rax, _ := s.RegRead(uc.X86_REG_RAX)
	assert.Equal(t, uint64(0xffffffffffffffda), rax) // -ENOSYS

	stop := newCode(t, models.ARCH_X8664, sys999)
	stop.SetDebugStop(true)
	assert.Error(t, stop.Run(0))
	assert.Equal(t, 1, stop.ExitCode())
}

func TestUnmappedRead(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, badRead)
	require.NoError(t, s.Run(0))
	assert.True(t, s.Exited())

	stop := newCode(t, models.ARCH_X8664, badRead)
	stop.SetDebugStop(true)
	assert.Error(t, stop.Run(0))
}

func TestTimeout(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, spin)
	start := time.Now()
	require.NoError(t, s.Run(50*time.Millisecond))
	assert.True(t, s.Exited())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestStepAndBreakpoint(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, nops)
	require.NoError(t, s.Step())
	pc, _ := s.PC()
	assert.Equal(t, uint64(base+1), pc)

	s.AddBreakpoint(base + 2)
	require.NoError(t, s.Continue())
	pc, _ = s.PC()
	assert.Equal(t, uint64(base+2), pc)
	assert.False(t, s.Exited())

	require.NoError(t, s.Continue())
	assert.True(t, s.Exited())
}

func TestContextRestore(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, exit42)
	require.NoError(t, s.Step())
	ctx, err := s.ContextSave()
	require.NoError(t, err)
	require.NoError(t, s.Step())
	require.NoError(t, s.Step())
	assert.True(t, s.Exited())

	require.NoError(t, s.ContextRestore(ctx))
	assert.False(t, s.Exited())
	assert.Empty(t, s.Syscalls())
	pc, _ := s.PC()
	assert.Equal(t, uint64(base+5), pc)
}

func TestBlockHook(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, nops)
	var blocks []uint64
	require.NoError(t, s.HookBlock(func(addr uint64, size uint32) {
		blocks = append(blocks, addr)
	}))
	require.NoError(t, s.Run(0))
	assert.Equal(t, []uint64{base}, blocks)
}

func TestCortexM(t *testing.T) {
	s := newCode(t, models.ARCH_CORTEX_M, []byte{0x05, 0x20, 0x00, 0xbf}) // movs r0, #5; nop
	require.NoError(t, s.Run(0))
	r0, _ := s.RegRead(uc.ARM_REG_R0)
	assert.Equal(t, uint64(5), r0)
}

func TestRootIdentity(t *testing.T) {
	code := []byte{0xb8, 0x66, 0, 0, 0, 0x0f, 0x05} // mov eax, 102 (getuid); syscall
	s := newCode(t, models.ARCH_X8664, code)
	s.SetRoot(true)
	require.NoError(t, s.Run(0))
	rax, _ := s.RegRead(uc.X86_REG_RAX)
	assert.Equal(t, uint64(0), rax)
}

func TestBrk(t *testing.T) {
	s := newCode(t, models.ARCH_X8664, nops)
	cur, err := s.Brk(0)
	require.NoError(t, err)
	next, err := s.Brk(cur + 0x3000)
	require.NoError(t, err)
	assert.Equal(t, cur+0x3000, next)
	require.NoError(t, s.MemWrite(cur+0x2000, []byte{1}))
}

func TestIgnoredOptionsLogged(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Verbose: models.VERBOSE_DEBUG, Console: true, Plain: true, Stderr: &buf})
	require.NoError(t, err)
	c := &models.Config{
		Code:        &models.CodeConfig{Rootfs: ".", Code: nops, OS: models.OS_LINUX, Arch: models.ARCH_X8664, Endian: models.ENDIAN_LITTLE},
		Verbose:     models.VERBOSE_DEBUG,
		Multithread: true,
		Libcache:    true,
	}
	s, err := newSession(c, log)
	require.NoError(t, err)
	defer s.Close()
	assert.Contains(t, buf.String(), "[=] libcache: only static executables are loaded")
	assert.Contains(t, buf.String(), "[+] multithread: guest threads run serially")
}
