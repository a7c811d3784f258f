package linux

// brk reports failure by returning the unchanged break, never an errno.
func (k *Kernel) brk(p Process, args []uint64) Result {
	ret, _ := p.Brk(args[0])
	return Result{Ret: ret}
}
