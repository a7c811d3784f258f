package models

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// CodeConfig describes a bare shellcode payload.
type CodeConfig struct {
	Rootfs string
	Code   []byte
	OS     OSType
	Arch   ArchType
	Endian Endian
	Thumb  bool
}

// RunConfig describes a full program run under a root filesystem.
type RunConfig struct {
	Argv   []string
	Rootfs string
}

// Config is the canonical record handed to the emulation engine. Exactly one
// of Code and Run is set.
type Config struct {
	Code *CodeConfig
	Run  *RunConfig

	Env         map[string]string
	Verbose     Verbosity
	Profile     string
	Console     bool
	Filter      string
	LogDevices  []string
	LogPlain    bool
	Multithread bool
	Libcache    bool
}

func (c *Config) Validate() error {
	switch {
	case c.Code != nil && c.Run != nil:
		return errors.New("config has both code and run fields")
	case c.Code == nil && c.Run == nil:
		return errors.New("config has neither code nor run fields")
	case c.Code != nil && len(c.Code.Code) == 0:
		return errors.New("config has an empty payload")
	case c.Run != nil && len(c.Run.Argv) == 0:
		return errors.New("config has an empty argv")
	}
	return nil
}

func (c *Config) Rootfs() string {
	if c.Code != nil {
		return c.Code.Rootfs
	}
	if c.Run != nil {
		return c.Run.Rootfs
	}
	return ""
}

func (c *Config) resolveSymlink(path, target string, force bool) string {
	link, err := os.Lstat(target)
	if err == nil && link.Mode()&os.ModeSymlink != 0 {
		if linked, err := os.Readlink(target); err == nil {
			if !strings.HasPrefix(linked, "/") {
				linked = filepath.Join(filepath.Dir(path), linked)
			}
			return c.PrefixPath(linked, force)
		}
	}
	if force || err == nil {
		return target
	}
	return path
}

// PrefixPath maps an absolute guest path into the rootfs. Absolute symlinks
// inside the rootfs are followed relative to the rootfs rather than the host.
// If the prefixed path doesn't exist and force is false, path is returned
// unchanged.
func (c *Config) PrefixPath(path string, force bool) string {
	rootfs := c.Rootfs()
	if rootfs == "" || !filepath.IsAbs(path) {
		return path
	}
	target := filepath.Join(rootfs, path)
	return c.resolveSymlink(path, target, force)
}

type CoverageOptions struct {
	Path   string
	Format CoverageFormat
}

// RunOptions are the orchestration settings that never reach the engine
// configuration.
type RunOptions struct {
	Qdb       bool
	RR        bool
	Gdb       string
	Root      bool
	DebugStop bool
	Timeout   time.Duration
	Coverage  *CoverageOptions
	Report    bool
}
