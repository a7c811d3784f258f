package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lunixbochs/corntool/go/models"
)

const (
	DEFAULT_CODE_BASE  = 0x1000000
	DEFAULT_STACK_BASE = 0x60000000
	DEFAULT_STACK_SIZE = 8 * 1024 * 1024

	pageSize = 0x1000
)

// Profile overrides the guest memory layout.
type Profile struct {
	CodeBase  uint64 `yaml:"code_base"`
	StackBase uint64 `yaml:"stack_base"`
	StackSize uint64 `yaml:"stack_size"`
	// BrkBase of 0 places the heap after the highest loaded segment.
	BrkBase uint64 `yaml:"brk_base"`
}

func DefaultProfile() *Profile {
	return &Profile{
		CodeBase:  DEFAULT_CODE_BASE,
		StackBase: DEFAULT_STACK_BASE,
		StackSize: DEFAULT_STACK_SIZE,
	}
}

// ProfilePath resolves a profile argument: an existing file is used as is,
// anything else names <rootfs>/profiles/<name>.yml.
func ProfilePath(rootfs, name string) string {
	if st, err := os.Stat(name); err == nil && st.Mode().IsRegular() {
		return name
	}
	return filepath.Join(rootfs, "profiles", name+".yml")
}

// LoadProfile reads a profile over the defaults. An empty name returns the
// defaults.
func LoadProfile(rootfs, name string) (*Profile, error) {
	p := DefaultProfile()
	if name == "" {
		return p, nil
	}
	path := ProfilePath(rootfs, name)
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, models.Configf("cannot read profile %q: %v", path, err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, models.Configf("bad profile %q: %v", path, err)
	}
	if p.CodeBase%pageSize != 0 || p.StackBase%pageSize != 0 || p.BrkBase%pageSize != 0 {
		return nil, models.Configf("profile %q: base addresses must be page aligned", path)
	}
	if p.StackSize == 0 {
		return nil, models.Configf("profile %q: stack_size must be non-zero", path)
	}
	p.StackSize = (p.StackSize + pageSize - 1) &^ (pageSize - 1)
	return p, nil
}
