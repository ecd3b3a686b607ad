//go:build linux

// Package ioctl implements the generic ioctl(2) request-code encoding from
// the kernel's uapi/asm-generic/ioctl.h: a 32-bit command packs a direction,
// a magic "type" byte, a command number and a payload size.
package ioctl

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	nrBits   = 8
	typeBits = 8
	sizeBits = 14
	dirBits  = 2

	nrShift   = 0
	typeShift = nrShift + nrBits
	sizeShift = typeShift + typeBits
	dirShift  = sizeShift + sizeBits

	dirNone  = 0
	dirWrite = 1
	dirRead  = 2
)

// typeSize returns the size in bytes of T, for use as the ioctl size field.
func typeSize[T any]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero))
}

func ioc(dir, typ, nr, size uint) uint {
	return dir<<dirShift | typ<<typeShift | nr<<nrShift | size<<sizeShift
}

// IO returns a no-payload ioctl request code.
func IO(typ, nr uint) uint {
	return ioc(dirNone, typ, nr, 0)
}

// IOR returns a read (kernel->user) ioctl request code sized for T.
func IOR[T any](typ, nr uint) uint {
	return ioc(dirRead, typ, nr, typeSize[T]())
}

// IOW returns a write (user->kernel) ioctl request code sized for T.
func IOW[T any](typ, nr uint) uint {
	return ioc(dirWrite, typ, nr, typeSize[T]())
}

// IOWR returns a bidirectional ioctl request code sized for T.
func IOWR[T any](typ, nr uint) uint {
	return ioc(dirRead|dirWrite, typ, nr, typeSize[T]())
}

// IOWSize returns a write ioctl request code whose size is given explicitly,
// for variable-length payloads (e.g. UI_DEV_SETUP-style fixed structs that
// aren't conveniently expressed as a single Go type).
func IOWSize(typ, nr, size uint) uint {
	return ioc(dirWrite, typ, nr, size)
}

// IORSize returns a read ioctl request code whose size is given explicitly
// (e.g. UI_GET_SYSNAME(len), where the size is only known at the call site).
func IORSize(typ, nr, size uint) uint {
	return ioc(dirRead, typ, nr, size)
}

// Any issues an ioctl(2) on fd with the given request code. arg, if non-nil,
// is passed as the ioctl argument pointer; on return any kernel-written data
// has been populated into *arg.
func Any[T any](fd uintptr, req uint, arg *T) error {
	var errno syscall.Errno

	_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(unsafe.Pointer(arg)))
	if errno != 0 {
		return errno
	}
	return nil
}

// Int issues a no-payload or scalar-int ioctl(2), passing val directly as
// the ioctl argument (used for UI_SET_EVBIT/UI_SET_KEYBIT/... where the
// kernel treats the argument as an integer, not a pointer).
func Int(fd uintptr, req uint, val uintptr) error {
	var errno syscall.Errno

	_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), val)
	if errno != 0 {
		return errno
	}
	return nil
}
