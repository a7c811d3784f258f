package main

import (
	"os"

	"github.com/lunixbochs/corntool/go/cmd"
	"github.com/lunixbochs/corntool/go/cpu"
	"github.com/lunixbochs/corntool/go/emu"
	"github.com/lunixbochs/corntool/go/models"

	_ "github.com/lunixbochs/corntool/go/cmd/code"
	_ "github.com/lunixbochs/corntool/go/cmd/dashboard"
	_ "github.com/lunixbochs/corntool/go/cmd/examples"
	_ "github.com/lunixbochs/corntool/go/cmd/run"
)

func newSession(c *models.Config) (models.Session, error) {
	s, err := emu.NewSession(c)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func main() {
	cmd.Engine.NewSession = newSession
	cmd.Engine.Assemble = cpu.Assemble
	os.Exit(cmd.Main(os.Args))
}
