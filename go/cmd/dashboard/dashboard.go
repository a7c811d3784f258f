package dashboard

import (
	"os"
	"path/filepath"

	"github.com/lunixbochs/corntool/go/cmd"
	"github.com/lunixbochs/corntool/go/report"
	"github.com/lunixbochs/corntool/go/ui"
)

func Main(args []string) int {
	dir := ui.StateDir()
	st, err := ui.LoadState(dir)
	if err != nil {
		return cmd.Fail(err)
	}
	req, next, err := ui.Prompt(st)
	if err != nil || req == nil {
		return cmd.Fail(err)
	}
	if err := next.Save(dir); err != nil {
		return cmd.Fail(err)
	}
	logPath := filepath.Join(dir, "last.log")
	os.Remove(logPath)
	ui.RouteLog(req, logPath)

	r := cmd.NewRunner()
	r.Render = func(rep *report.Report) error {
		return ui.ShowReport(rep, ui.ReadLog(logPath))
	}
	return cmd.Fail(r.Execute(req))
}

func init() { cmd.Register("dashboard", "fill in a run or code request interactively", Main) }
