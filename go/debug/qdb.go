package debug

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/shibukawa/configdir"

	"github.com/lunixbochs/corntool/go/debug/cmd"
	"github.com/lunixbochs/corntool/go/models"
)

// LineReader is the part of a readline instance qdb uses.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Qdb is the interactive debugger loop.
type Qdb struct {
	Ctx  *cmd.Context
	last string
}

func NewQdb(w io.Writer, t models.Target, rr cmd.Rewinder) *Qdb {
	return &Qdb{Ctx: cmd.NewContext(w, t, rr)}
}

func (q *Qdb) prompt() string {
	t := q.Ctx.T
	if t.Exited() {
		return "qdb (exited)> "
	}
	pc, _ := t.PC()
	if lines, ok := q.Ctx.Disassemble(pc, 1); ok && len(lines) > 0 {
		return fmt.Sprintf("[%s] qdb> ", lines[0])
	}
	return fmt.Sprintf("[%#x] qdb> ", pc)
}

// Loop reads commands until quit or end of input. An empty line repeats the
// last command.
func (q *Qdb) Loop(rl LineReader) error {
	for !q.Ctx.Quit {
		rl.SetPrompt(q.prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			line = q.last
		} else {
			q.last = line
		}
		cmd.Run(q.Ctx, line)
	}
	return nil
}

func historyPath() string {
	cacheDir := configdir.New("corntool", "qdb").QueryCacheFolder()
	if err := cacheDir.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cacheDir.Path, "history")
}

// RunQdb drives s from an interactive prompt. With rr set every step is
// recorded so it can be undone with back.
func RunQdb(s models.Session, rr bool) error {
	var rec cmd.Rewinder
	if rr {
		r, err := NewRecorder(s)
		if err != nil {
			return err
		}
		rec = r
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "qdb> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		HistoryFile:     historyPath(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	return NewQdb(rl.Stdout(), s, rec).Loop(rl)
}
