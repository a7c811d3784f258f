package config

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lunixbochs/corntool/go/models"
)

// start of every snappy framed stream
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// LoadEnv builds the guest environment from --env. If value names a file, the
// file is a trusted blob: either a snappy-framed gob map written by SaveEnv or
// a YAML/JSON document. Otherwise value is parsed as a literal such as
// {'HOME': '/root'}. Env files must never come from an untrusted source.
//
// Literals are YAML flow: None, True and False read as in Python, but
// backslash escapes only apply inside double quotes.
func LoadEnv(value string) (map[string]string, error) {
	if st, err := os.Stat(value); err == nil && st.Mode().IsRegular() {
		data, err := ioutil.ReadFile(value)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read env file")
		}
		if bytes.HasPrefix(data, snappyMagic) {
			env := make(map[string]string)
			dec := gob.NewDecoder(snappy.NewReader(bytes.NewReader(data)))
			if err := dec.Decode(&env); err != nil {
				return nil, errors.Wrapf(err, "failed to decode env blob %s", value)
			}
			return env, nil
		}
		env, err := parseEnvLiteral(data)
		return env, errors.Wrapf(err, "env file %s", value)
	}
	env, err := parseEnvLiteral([]byte(value))
	return env, errors.Wrap(err, "env literal")
}

// SaveEnv writes env in the blob format LoadEnv reads.
func SaveEnv(path string, env map[string]string) error {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if err := gob.NewEncoder(w).Encode(env); err != nil {
		return errors.Wrap(err, "failed to encode env")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to compress env")
	}
	return errors.Wrap(ioutil.WriteFile(path, buf.Bytes(), 0644), "failed to write env file")
}

// pythonNone rewrites bare None scalars to YAML null. True and False
// already resolve as booleans.
func pythonNone(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Style == 0 && n.Value == "None" {
		n.Value, n.Tag = "null", ""
	}
	for _, c := range n.Content {
		pythonNone(c)
	}
}

func parseEnvLiteral(data []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, models.Configf("cannot parse env: %v", err)
	}
	pythonNone(&doc)
	var val interface{}
	if err := doc.Decode(&val); err != nil {
		return nil, models.Configf("cannot parse env: %v", err)
	}
	if falsy(val) {
		return map[string]string{}, nil
	}
	env := make(map[string]string)
	switch m := val.(type) {
	case map[string]interface{}:
		for k, v := range m {
			s, err := envScalar(k, v)
			if err != nil {
				return nil, err
			}
			env[k] = s
		}
	case map[interface{}]interface{}:
		for k, v := range m {
			key := fmt.Sprint(k)
			s, err := envScalar(key, v)
			if err != nil {
				return nil, err
			}
			env[key] = s
		}
	default:
		return nil, models.Configf("env must be a mapping, got %T", val)
	}
	return env, nil
}

func envScalar(key string, v interface{}) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s), nil
	case nil:
		return "", nil
	}
	return "", models.Configf("env value for %q must be a scalar, got %T", key, v)
}

func falsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case int:
		return t == 0
	case float64:
		return t == 0
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	case map[interface{}]interface{}:
		return len(t) == 0
	}
	return false
}

// EnvList renders env as sorted KEY=VALUE strings for the guest stack.
func EnvList(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
