package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/models"
)

func TestParseDefaults(t *testing.T) {
	req, err := Parse([]string{"--arch", "arm", "--os", "linux", "-i", "0000a0e3"})
	require.NoError(t, err)
	assert.Equal(t, "arm", req.Arch)
	assert.Equal(t, "linux", req.OS)
	assert.Equal(t, "little", req.Endian)
	assert.Equal(t, "bin", req.Format)
	assert.Equal(t, ".", req.Rootfs)
	assert.Equal(t, "0000a0e3", req.Input)
	assert.False(t, req.Thumb)
}

func TestParseFlags(t *testing.T) {
	req, err := Parse([]string{
		"--arch", "mips", "--os", "linux", "--endian", "big", "--format", "asm",
		"-f", "x.s", "--timeout", "4", "--json", "-c", "out.cov", "--qdb", "--rr",
	})
	require.NoError(t, err)
	assert.Equal(t, "big", req.Endian)
	assert.Equal(t, "asm", req.Format)
	assert.Equal(t, "x.s", req.Filename)
	assert.Equal(t, 4, req.Timeout)
	assert.True(t, req.JSON)
	assert.True(t, req.Qdb)
	assert.True(t, req.RR)
	assert.Equal(t, "out.cov", req.CoverageFile)
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--os", "linux"},
		{"--arch", "x86"},
		{"--arch", "x86", "--os", "linux", "stray"},
		{"--arch", "x86", "--os", "linux", "--timeout", "soon"},
	} {
		_, err := Parse(args)
		assert.IsType(t, &models.UsageError{}, err, "%v", args)
	}
}
