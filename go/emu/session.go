package emu

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/corntool/go/arch"
	"github.com/lunixbochs/corntool/go/config"
	"github.com/lunixbochs/corntool/go/cpu"
	"github.com/lunixbochs/corntool/go/kernel/linux"
	"github.com/lunixbochs/corntool/go/loader"
	"github.com/lunixbochs/corntool/go/logging"
	"github.com/lunixbochs/corntool/go/models"
)

// Session is a unicorn-backed models.Session. It hosts either a shellcode
// payload or a static Linux ELF.
type Session struct {
	uc.Unicorn

	config   *models.Config
	log      *logging.Logger
	arch     *models.Arch
	archType models.ArchType
	endian   models.Endian
	os       *models.OS
	order    binary.ByteOrder
	bits     int
	bsz      int
	kernel   *linux.Kernel
	profile  *config.Profile
	loader   *loader.ElfLoader
	dis      *cpu.Capstr

	pages   map[uint64]bool
	images  []models.Image
	entry   uint64
	until   uint64
	thumb   bool
	brkBase uint64
	brk     uint64

	controller  models.Controller
	debugStop   bool
	breakpoints map[uint64]bool
	hitBreak    bool
	started     bool
	stopErr     error

	syscalls []models.SyscallRecord
	exited   bool
	exitCode int
}

// NewSession builds and loads a session. The returned session owns the
// logger and must be closed.
func NewSession(c *models.Config) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.FromConfig(c)
	if err != nil {
		return nil, err
	}
	s, err := newSession(c, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	return s, nil
}

func newSession(c *models.Config, log *logging.Logger) (*Session, error) {
	profile, err := config.LoadProfile(c.Rootfs(), c.Profile)
	if err != nil {
		return nil, err
	}
	s := &Session{
		config:      c,
		log:         log,
		kernel:      linux.NewKernel(),
		profile:     profile,
		pages:       make(map[uint64]bool),
		breakpoints: make(map[uint64]bool),
	}
	var osType models.OSType
	var endian models.Endian
	if c.Code != nil {
		s.archType, osType, endian = c.Code.Arch, c.Code.OS, c.Code.Endian
		s.thumb = c.Code.Thumb || c.Code.Arch == models.ARCH_CORTEX_M
	} else {
		path := c.PrefixPath(c.Run.Argv[0], false)
		l, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if !l.Static() {
			return nil, errors.Errorf("%s: only static ELF executables are supported", path)
		}
		s.loader = l
		s.archType, osType, endian = l.Arch(), models.OS_LINUX, l.Endian()
	}
	if s.arch, err = arch.GetArch(s.archType, endian); err != nil {
		return nil, err
	}
	s.endian = endian
	s.os = arch.GetOS(s.arch, osType)
	s.bits = s.arch.Bits
	s.bsz = s.bits / 8
	if s.bsz < 4 {
		s.bsz = 4
	}
	s.order = binary.LittleEndian
	if endian == models.ENDIAN_BIG {
		s.order = binary.BigEndian
	}
	if s.Unicorn, err = uc.NewUnicorn(s.arch.UC_ARCH, s.arch.UC_MODE); err != nil {
		return nil, errors.Wrap(err, "NewUnicorn() failed")
	}
	if c.Multithread {
		log.Debugf("multithread: guest threads run serially")
	}
	if c.Libcache {
		log.Infof("libcache: only static executables are loaded, nothing to cache")
	}
	if c.Verbose >= models.VERBOSE_DISASM {
		if _, err := s.disassembler(); err != nil {
			log.Warnf("disassembly disabled: %v", err)
		}
	}
	if err := s.load(); err != nil {
		s.Unicorn.Close()
		return nil, err
	}
	if err := s.addHooks(); err != nil {
		s.Unicorn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) load() error {
	if err := s.mapRange(s.profile.StackBase, s.profile.StackSize); err != nil {
		return errors.Wrap(err, "failed to map stack")
	}
	if err := s.RegWrite(s.arch.SP, s.profile.StackBase+s.profile.StackSize); err != nil {
		return err
	}
	var end uint64
	if c := s.config.Code; c != nil {
		base := s.profile.CodeBase
		if err := s.mapRange(base, uint64(len(c.Code))); err != nil {
			return errors.Wrap(err, "failed to map code")
		}
		if err := s.MemWrite(base, c.Code); err != nil {
			return err
		}
		s.entry = base
		s.until = base + uint64(len(c.Code))
		s.images = append(s.images, models.Image{Name: "[shellcode]", Base: base, End: s.until, Entry: base})
		end = s.until
	} else {
		segs, err := s.loader.Segments()
		if err != nil {
			return err
		}
		name := s.config.Run.Argv[0]
		for _, seg := range segs {
			if err := s.mapRange(seg.Addr, uint64(len(seg.Data))); err != nil {
				return err
			}
			if err := s.MemWrite(seg.Addr, seg.Data); err != nil {
				return errors.Wrapf(err, "failed to write segment at %#x", seg.Addr)
			}
			if seg.Prot&loader.PROT_EXEC != 0 {
				s.images = append(s.images, models.Image{Name: name, Base: seg.Addr, End: seg.End(), Entry: s.loader.Entry()})
			}
			if seg.End() > end {
				end = seg.End()
			}
		}
		s.entry = s.loader.Entry()
		if err := s.linuxInit(s.config.Run.Argv, config.EnvList(s.config.Env)); err != nil {
			return err
		}
	}
	s.brkBase = s.profile.BrkBase
	if s.brkBase == 0 {
		_, size := align(0, end)
		s.brkBase = size
	}
	s.brk = s.brkBase
	return s.RegWrite(s.arch.PC, s.entry)
}

func (s *Session) Arch() *models.Arch          { return s.arch }
func (s *Session) Config() *models.Config      { return s.config }
func (s *Session) Bits() int                   { return s.bits }
func (s *Session) ByteOrder() binary.ByteOrder { return s.order }
func (s *Session) Entry() uint64               { return s.entry }
func (s *Session) Images() []models.Image      { return s.images }
func (s *Session) Log() *logging.Logger        { return s.log }

func (s *Session) Syscalls() []models.SyscallRecord { return s.syscalls }

func (s *Session) PC() (uint64, error) {
	return s.RegRead(s.arch.PC)
}

func (s *Session) RegDump() ([]models.RegVal, error) {
	return s.arch.RegDump(s)
}

func (s *Session) SetController(c models.Controller) { s.controller = c }
func (s *Session) SetDebugStop(stop bool)            { s.debugStop = stop }

func (s *Session) SetRoot(root bool) {
	s.kernel.Root = root
}

func (s *Session) Exited() bool { return s.exited }

func (s *Session) ExitCode() int { return s.exitCode }

// Exit ends the guest with code from inside a hook.
func (s *Session) Exit(code int) {
	s.exited = true
	s.exitCode = code
	s.Stop()
}

// Symbolicate names a guest address for display.
func (s *Session) Symbolicate(addr uint64) string {
	if s.loader != nil {
		if sym, _ := s.loader.Symbolicate(addr); sym != "" {
			return sym
		}
	}
	for _, img := range s.images {
		if img.Contains(addr) {
			return fmt.Sprintf("%s+%#x", img.Name, addr-img.Base)
		}
	}
	return ""
}

func (s *Session) Close() error {
	err := s.Unicorn.Close()
	if lerr := s.log.Close(); err == nil {
		err = lerr
	}
	return errors.Wrap(err, "failed to close session")
}
