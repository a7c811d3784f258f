package linux

import "golang.org/x/sys/unix"

const (
	EBADF  = unix.EBADF
	EFAULT = unix.EFAULT
	EIO    = unix.EIO
	ENOMEM = unix.ENOMEM
	ENOSYS = unix.ENOSYS
)

// Errno encodes e as the negative return value Linux uses.
func Errno(e unix.Errno) uint64 {
	return uint64(-int64(e))
}
