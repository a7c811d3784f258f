package linux

import "golang.org/x/sys/unix"

func (k *Kernel) exit(p Process, args []uint64) Result {
	p.Exit(int(int32(args[0])))
	return Result{}
}

func (k *Kernel) getpid(p Process, args []uint64) Result {
	return Result{Ret: uint64(unix.Getpid())}
}

// root mode reports uid/gid 0 regardless of the host user
func (k *Kernel) ident(host func() int) uint64 {
	if k.Root {
		return 0
	}
	return uint64(host())
}

func (k *Kernel) getuid(p Process, args []uint64) Result {
	return Result{Ret: k.ident(unix.Getuid)}
}

func (k *Kernel) geteuid(p Process, args []uint64) Result {
	return Result{Ret: k.ident(unix.Geteuid)}
}

func (k *Kernel) getgid(p Process, args []uint64) Result {
	return Result{Ret: k.ident(unix.Getgid)}
}

func (k *Kernel) getegid(p Process, args []uint64) Result {
	return Result{Ret: k.ident(unix.Getegid)}
}
