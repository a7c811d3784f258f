package debug

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

// DefaultHistory bounds how many steps a Recorder keeps.
const DefaultHistory = 100000

type memUndo struct {
	addr uint64
	old  []byte
}

type rrFrame struct {
	ctx    interface{}
	writes []memUndo
}

// Recorder steps a session while keeping enough state to undo each step:
// the saved CPU context from before the step and the old bytes under every
// memory write made during it.
type Recorder struct {
	s      models.Session
	frames []rrFrame
	cur    *rrFrame

	// Max is the history limit, 0 is unbounded.
	Max int
}

func NewRecorder(s models.Session) (*Recorder, error) {
	r := &Recorder{s: s, Max: DefaultHistory}
	if err := s.HookMemWrite(r.onWrite); err != nil {
		return nil, errors.Wrap(err, "rr: failed to hook memory writes")
	}
	return r, nil
}

func (r *Recorder) onWrite(addr uint64, size int) {
	if r.cur == nil {
		return
	}
	old, err := r.s.MemRead(addr, uint64(size))
	if err != nil {
		return
	}
	r.cur.writes = append(r.cur.writes, memUndo{addr, old})
}

func (r *Recorder) Step() error {
	ctx, err := r.s.ContextSave()
	if err != nil {
		return errors.Wrap(err, "rr: context save failed")
	}
	r.cur = &rrFrame{ctx: ctx}
	err = r.s.Step()
	r.frames = append(r.frames, *r.cur)
	r.cur = nil
	if r.Max > 0 && len(r.frames) > r.Max {
		r.frames = r.frames[len(r.frames)-r.Max:]
	}
	return err
}

// Back undoes the most recent step.
func (r *Recorder) Back() error {
	if len(r.frames) == 0 {
		return errors.New("no recorded history")
	}
	f := r.frames[len(r.frames)-1]
	r.frames = r.frames[:len(r.frames)-1]
	for i := len(f.writes) - 1; i >= 0; i-- {
		w := f.writes[i]
		if err := r.s.MemWrite(w.addr, w.old); err != nil {
			return errors.Wrapf(err, "rr: failed to restore memory at %#x", w.addr)
		}
	}
	return errors.Wrap(r.s.ContextRestore(f.ctx), "rr: context restore failed")
}

func (r *Recorder) Len() int { return len(r.frames) }
