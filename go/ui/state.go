package ui

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"gopkg.in/yaml.v3"

	"github.com/lunixbochs/corntool/go/models"
)

const stateFile = "last.yml"

// State is the last request submitted from the dashboard.
type State struct {
	Mode string             `yaml:"mode"`
	Run  models.RunRequest  `yaml:"run"`
	Code models.CodeRequest `yaml:"code"`
}

func DefaultState() *State {
	return &State{
		Mode: "code",
		Run:  models.RunRequest{CommonOptions: models.DefaultCommonOptions(), Rootfs: "."},
		Code: models.CodeRequest{
			CommonOptions: models.DefaultCommonOptions(),
			Arch:          "x86_64",
			OS:            "linux",
			Endian:        "little",
			Rootfs:        ".",
			Format:        "hex",
		},
	}
}

// StateDir is the per-user directory for dashboard state.
func StateDir() string {
	dirs := configdir.New("corntool", "dashboard").QueryFolders(configdir.Global)
	if len(dirs) == 0 {
		return "."
	}
	return dirs[0].Path
}

// LoadState reads the saved state in dir, or the defaults if there is none.
func LoadState(dir string) (*State, error) {
	data, err := ioutil.ReadFile(filepath.Join(dir, stateFile))
	if os.IsNotExist(err) {
		return DefaultState(), nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read dashboard state")
	}
	st := DefaultState()
	if err := yaml.Unmarshal(data, st); err != nil {
		return nil, models.Configf("bad dashboard state %s: %v", filepath.Join(dir, stateFile), err)
	}
	return st, nil
}

func (s *State) Save(dir string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to encode dashboard state")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create state dir")
	}
	return errors.Wrap(ioutil.WriteFile(filepath.Join(dir, stateFile), data, 0644), "failed to write dashboard state")
}
