package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/models"
)

func TestLoadEnvLiteral(t *testing.T) {
	env, err := LoadEnv("{'K':'V'}")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"K": "V"}, env)

	env, err = LoadEnv(`{"HOME": "/root", "N": 3, "B": true}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"HOME": "/root", "N": "3", "B": "true"}, env)
}

func TestLoadEnvPythonLiterals(t *testing.T) {
	env, err := LoadEnv("{'A': None, 'B': True, 'C': False, 'D': 'None'}")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "", "B": "true", "C": "false", "D": "None"}, env)

	env, err = LoadEnv("None")
	require.NoError(t, err)
	assert.Empty(t, env)

	// escapes only apply in double quotes
	env, err = LoadEnv(`{'K': 'a\nb', "Q": "a\nb"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"K": `a\nb`, "Q": "a\nb"}, env)
}

func TestLoadEnvFalsy(t *testing.T) {
	for _, v := range []string{"{}", "[]", "''", "0", "false", "null", ""} {
		env, err := LoadEnv(v)
		require.NoError(t, err, v)
		assert.Empty(t, env, v)
		assert.NotNil(t, env, v)
	}
}

func TestLoadEnvRejectsBadShapes(t *testing.T) {
	for _, v := range []string{"[1, 2]", "'just a string'", "{'K': [1, 2]}", "{'K': {'A': 'B'}}", "{unterminated"} {
		_, err := LoadEnv(v)
		assert.Error(t, err, v)
	}
	_, err := LoadEnv("[1, 2]")
	var cfgErr *models.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestEnvBlobRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.bin")
	want := map[string]string{"PATH": "/bin:/usr/bin", "LANG": "C", "EMPTY": ""}
	require.NoError(t, SaveEnv(path, want))

	got, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEnvYAMLFile(t *testing.T) {
	path := writeTemp(t, "env.yml", []byte("USER: root\nSHELL: /bin/sh\n"))
	env, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"USER": "root", "SHELL": "/bin/sh"}, env)
}

func TestEnvList(t *testing.T) {
	assert.Equal(t, []string{"A=1", "B=2"}, EnvList(map[string]string{"B": "2", "A": "1"}))
}
