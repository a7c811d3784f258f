package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jroimartin/gocui"
	"github.com/lunixbochs/vtclean"
	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
	"github.com/lunixbochs/corntool/go/report"
)

const labelWidth = 24

type formUI struct {
	form      *Form
	status    string
	focus     int
	submitted bool
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (f *formUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if v, err := g.SetView("help", 0, 0, maxX-1, 3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "corntool"
		fmt.Fprintln(v, "tab/arrows: move   ctrl-r: run   ctrl-c: quit")
		fmt.Fprint(v, f.status)
	}
	for i, field := range f.form.Fields {
		y := 4 + i
		if y+2 > maxY {
			break
		}
		if v, err := g.SetView("label:"+field.Key, 0, y, labelWidth, y+2); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Frame = false
			fmt.Fprint(v, field.Label())
		}
		if v, err := g.SetView("field:"+field.Key, labelWidth, y, maxX-1, y+2); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Frame = false
			v.Editable = true
			fmt.Fprint(v, field.Value)
			v.SetCursor(len(field.Value), 0)
		}
	}
	if _, err := g.SetCurrentView("field:" + f.form.Fields[f.focus].Key); err != nil && err != gocui.ErrUnknownView {
		return err
	}
	return nil
}

func (f *formUI) move(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		n := len(f.form.Fields)
		f.focus = (f.focus + delta + n) % n
		_, err := g.SetCurrentView("field:" + f.form.Fields[f.focus].Key)
		return err
	}
}

func (f *formUI) submit(g *gocui.Gui, v *gocui.View) error {
	for _, field := range f.form.Fields {
		if fv, err := g.View("field:" + field.Key); err == nil {
			field.Value = strings.TrimSpace(fv.Buffer())
		}
	}
	f.submitted = true
	return gocui.ErrQuit
}

func (f *formUI) bindKeys(g *gocui.Gui) error {
	bindings := []struct {
		key interface{}
		fn  func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, quit},
		{gocui.KeyCtrlR, f.submit},
		{gocui.KeyTab, f.move(1)},
		{gocui.KeyArrowDown, f.move(1)},
		{gocui.KeyEnter, f.move(1)},
		{gocui.KeyArrowUp, f.move(-1)},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding("", b.key, gocui.ModNone, b.fn); err != nil {
			return err
		}
	}
	return nil
}

func (f *formUI) run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return errors.Wrap(err, "gocui failed")
	}
	defer g.Close()
	g.Cursor = true
	g.SetManagerFunc(f.layout)
	if err := f.bindKeys(g); err != nil {
		return err
	}
	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// Prompt shows the request form prefilled from st until the user submits a
// valid request or quits. A nil request means the user quit.
func Prompt(st *State) (models.Request, *State, error) {
	f := &formUI{form: NewForm(st)}
	for {
		f.submitted = false
		if err := f.run(); err != nil {
			return nil, nil, err
		}
		if !f.submitted {
			return nil, nil, nil
		}
		req, next, err := f.form.Request(st)
		if err == nil {
			return req, next, nil
		}
		f.status = "error: " + err.Error()
	}
}

// ReadLog loads a log file for display, stripped of terminal codes.
func ReadLog(path string) []string {
	fd, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer fd.Close()
	var lines []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		lines = append(lines, vtclean.Clean(scanner.Text(), false))
	}
	return lines
}

type reportUI struct {
	rep *report.Report
	log []string
}

func (r *reportUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	split := maxY - 1
	if len(r.log) > 0 {
		split = maxY * 2 / 3
	}
	if v, err := g.SetView("report", 0, 0, maxX-1, split); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "report (q to quit)"
		for _, line := range r.rep.Table(maxX - 2) {
			fmt.Fprintln(v, vtclean.Clean(line, false))
		}
		g.SetCurrentView("report")
	}
	if len(r.log) == 0 {
		return nil
	}
	if v, err := g.SetView("log", 0, split+1, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "log"
		v.Autoscroll = true
		for _, line := range r.log {
			fmt.Fprintln(v, line)
		}
	}
	return nil
}

func scroll(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if v == nil {
			return nil
		}
		ox, oy := v.Origin()
		if oy+delta < 0 {
			return nil
		}
		return v.SetOrigin(ox, oy+delta)
	}
}

func toggle(g *gocui.Gui, v *gocui.View) error {
	next := "log"
	if v != nil && v.Name() == "log" {
		next = "report"
	}
	if _, err := g.View(next); err != nil {
		return nil
	}
	_, err := g.SetCurrentView(next)
	return err
}

// ShowReport renders rep and the run's log until the user quits.
func ShowReport(rep *report.Report, log []string) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return errors.Wrap(err, "gocui failed")
	}
	defer g.Close()
	r := &reportUI{rep: rep, log: log}
	g.SetManagerFunc(r.layout)
	bindings := []struct {
		key interface{}
		fn  func(*gocui.Gui, *gocui.View) error
	}{
		{'q', quit},
		{gocui.KeyCtrlC, quit},
		{gocui.KeyTab, toggle},
		{gocui.KeyArrowDown, scroll(1)},
		{gocui.KeyArrowUp, scroll(-1)},
		{gocui.KeyPgdn, scroll(10)},
		{gocui.KeyPgup, scroll(-10)},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding("", b.key, gocui.ModNone, b.fn); err != nil {
			return err
		}
	}
	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}
