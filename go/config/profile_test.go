package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/models"
)

func TestLoadProfileDefault(t *testing.T) {
	p, err := LoadProfile("/nonexistent", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestLoadProfileByName(t *testing.T) {
	rootfs := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootfs, "profiles"), 0755))
	path := filepath.Join(rootfs, "profiles", "small.yml")
	require.NoError(t, os.WriteFile(path, []byte("code_base: 0x400000\nstack_size: 0x1800\n"), 0644))

	p, err := LoadProfile(rootfs, "small")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x400000), p.CodeBase)
	assert.Equal(t, uint64(DEFAULT_STACK_BASE), p.StackBase)
	// rounded up to a page
	assert.Equal(t, uint64(0x2000), p.StackSize)
}

func TestLoadProfileByPath(t *testing.T) {
	path := writeTemp(t, "p.yml", []byte("brk_base: 0x800000\n"))
	p, err := LoadProfile(".", path)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x800000), p.BrkBase)
}

func TestLoadProfileErrors(t *testing.T) {
	dir := t.TempDir()
	var cerr *models.ConfigError

	_, err := LoadProfile(dir, "missing")
	assert.ErrorAs(t, err, &cerr)

	unaligned := writeTemp(t, "u.yml", []byte("code_base: 0x1001\n"))
	_, err = LoadProfile(dir, unaligned)
	assert.ErrorAs(t, err, &cerr)

	nostack := writeTemp(t, "s.yml", []byte("stack_size: 0\n"))
	_, err = LoadProfile(dir, nostack)
	assert.ErrorAs(t, err, &cerr)

	garbage := writeTemp(t, "g.yml", []byte("code_base: [1, 2\n"))
	_, err = LoadProfile(dir, garbage)
	assert.ErrorAs(t, err, &cerr)
}
