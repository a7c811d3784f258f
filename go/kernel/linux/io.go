package linux

import "io"

// maxIO caps one read or write so a bad length can't exhaust host memory.
const maxIO = 1 << 20

func (k *Kernel) read(p Process, args []uint64) Result {
	fd, buf, size := args[0], args[1], args[2]
	if fd != 0 || k.Stdin == nil {
		return Result{Ret: Errno(EBADF)}
	}
	if size > maxIO {
		size = maxIO
	}
	tmp := make([]byte, size)
	n, err := k.Stdin.Read(tmp)
	if err != nil && err != io.EOF {
		return Result{Ret: Errno(EIO)}
	}
	if err := p.MemWrite(buf, tmp[:n]); err != nil {
		return Result{Ret: Errno(EFAULT)}
	}
	return Result{Ret: uint64(n), Strings: []string{string(tmp[:n])}}
}

func (k *Kernel) write(p Process, args []uint64) Result {
	fd, buf, size := args[0], args[1], args[2]
	var w io.Writer
	switch fd {
	case 1:
		w = k.Stdout
	case 2:
		w = k.Stderr
	}
	if w == nil {
		return Result{Ret: Errno(EBADF)}
	}
	if size > maxIO {
		size = maxIO
	}
	data, err := p.MemRead(buf, size)
	if err != nil {
		return Result{Ret: Errno(EFAULT)}
	}
	n, err := w.Write(data)
	if err != nil {
		return Result{Ret: Errno(EIO)}
	}
	return Result{Ret: uint64(n), Strings: []string{string(data)}}
}
