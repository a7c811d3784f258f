package run

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/cmd"
	"github.com/lunixbochs/corntool/go/models"
)

func TestParseArgs(t *testing.T) {
	req, err := Parse([]string{"--rootfs", "/r", "-f", "/bin/echo", "--args", "-n", "--rootfs", "x"})
	require.NoError(t, err)
	assert.Equal(t, "/r", req.Rootfs)
	assert.Equal(t, "/bin/echo", req.Filename)
	assert.Equal(t, []string{"-n", "--rootfs", "x"}, req.Args)
	assert.Empty(t, req.Remainder)
	assert.Equal(t, "default", req.Verbose)
	assert.Equal(t, "drcov", req.CoverageFormat)
}

func TestParseRemainder(t *testing.T) {
	req, err := Parse([]string{"--rootfs", "/r", "-v", "debug", "/bin/ls", "-la", "/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/ls", "-la", "/"}, req.Remainder)
	assert.Nil(t, req.Args)
	assert.Equal(t, "debug", req.Verbose)
}

func TestParseRemainderKeepsArgsToken(t *testing.T) {
	req, err := Parse([]string{"--rootfs", "r", "/bin/echo", "--args", "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/echo", "--args", "x"}, req.Remainder)
	assert.Nil(t, req.Args)
	assert.Empty(t, req.Filename)

	req, err = Parse([]string{"--rootfs", "r", "-v", "debug", "--", "/bin/echo", "--args"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/echo", "--args"}, req.Remainder)
	assert.Nil(t, req.Args)
}

func TestParseArgsAfterFlagValues(t *testing.T) {
	// flag values are skipped when looking for --args
	req, err := Parse([]string{"--rootfs=r", "-vdebug", "--env", "{}", "-mf", "/bin/echo", "-g", "--args", "a"})
	require.NoError(t, err)
	assert.Equal(t, "/bin/echo", req.Filename)
	assert.True(t, req.Multithread)
	assert.Equal(t, "default", req.Gdb)
	assert.Equal(t, []string{"a"}, req.Args)
	assert.Empty(t, req.Remainder)

	// a flag value spelled --args is not the separator
	req, err = Parse([]string{"--rootfs", "--args", "/bin/true"})
	require.NoError(t, err)
	assert.Equal(t, "--args", req.Rootfs)
	assert.Equal(t, []string{"/bin/true"}, req.Remainder)
}

func TestParseEmptyArgs(t *testing.T) {
	req, err := Parse([]string{"--rootfs", "/r", "-f", "/bin/true", "--args"})
	require.NoError(t, err)
	assert.NotNil(t, req.Args)
	assert.Empty(t, req.Args)
}

func TestParseMissingRootfs(t *testing.T) {
	_, err := Parse([]string{"/bin/true"})
	require.Error(t, err)
	assert.IsType(t, &models.UsageError{}, err)
	assert.Equal(t, 2, cmd.ExitCode(err))
}

func TestParseGdb(t *testing.T) {
	req, err := Parse([]string{"--rootfs", "/r", "-g", "/bin/true"})
	require.NoError(t, err)
	assert.Equal(t, "default", req.Gdb)
	assert.Equal(t, []string{"/bin/true"}, req.Remainder)

	req, err = Parse([]string{"--rootfs", "/r", "--gdb=0.0.0.0:1234", "/bin/true"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:1234", req.Gdb)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	old := cmd.Stdout
	cmd.Stdout = &out
	defer func() { cmd.Stdout = old }()

	req, err := Parse([]string{"-h"})
	assert.NoError(t, err)
	assert.Nil(t, req)
	assert.Contains(t, out.String(), "--rootfs")
}
