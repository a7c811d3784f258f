package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/models"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Verbose: models.VERBOSE_DEBUG, Console: true, Stderr: &buf})
	require.NoError(t, err)
	l.Infof("info %d", 1)
	l.Debugf("debug")
	l.Disasmf("disasm")
	l.Dumpf("dump")
	l.Errorf("boom")
	assert.Equal(t, "[=] info 1\n[+] debug\n[!] boom\n", buf.String())
}

func TestOffIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Verbose: models.VERBOSE_OFF, Console: true, Stderr: &buf})
	require.NoError(t, err)
	l.Errorf("boom")
	l.Infof("info")
	assert.Empty(t, buf.String())
	assert.False(t, l.Enabled(models.VERBOSE_DEFAULT))
}

func TestFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Verbose: models.VERBOSE_DEFAULT, Console: true, Filter: "^write", Stderr: &buf})
	require.NoError(t, err)
	l.Infof("write(1, ...) = 5")
	l.Infof("read(0, ...) = 0")
	assert.Equal(t, "[=] write(1, ...) = 5\n", buf.String())

	_, err = New(Options{Filter: "("})
	assert.Error(t, err)
}

func TestLogDevicesWithoutConsole(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := New(Options{Verbose: models.VERBOSE_DEFAULT, Console: false, Devices: []string{path}, Stderr: &buf})
	require.NoError(t, err)
	l.Infof("line one\nline two")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[=] line one\n[=] line two\n", string(data))
	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Errorf("nothing")
	assert.NoError(t, l.Close())
}
