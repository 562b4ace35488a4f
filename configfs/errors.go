package configfs

import (
	"errors"
	"syscall"
)

// Error is the closed set of failure kinds surfaced by every operation in
// this module. Host-level errno values are mapped into it exactly once, by
// Translate.
type Error int

const (
	// ErrNoMem indicates insufficient memory.
	ErrNoMem Error = iota + 1

	// ErrNoAccess indicates insufficient permissions, including writes to a
	// read-only tree.
	ErrNoAccess

	// ErrInvalidParam covers caller misuse detected before any I/O: absent
	// required entities, out-of-range ids, malformed names.
	ErrInvalidParam

	// ErrNotFound indicates a file or directory that is not present.
	ErrNotFound

	// ErrIO indicates an input/output failure reported by the host.
	ErrIO

	// ErrExist indicates an entity that already exists.
	ErrExist

	// ErrNoDev indicates no such device, e.g. an illegal device name
	// rejected by the kernel.
	ErrNoDev

	// ErrBusy indicates the target is busy, e.g. an enabled gadget.
	ErrBusy

	// ErrNotSupported indicates an unrecognized function type token.
	ErrNotSupported

	// ErrPathTooLong indicates a composed path exceeded MaxPathLength. The
	// operation is aborted before any I/O happens.
	ErrPathTooLong

	// ErrOther is the fallback for failures outside the taxonomy.
	ErrOther
)

var errorNames = map[Error]string{
	ErrNoMem:        "ERROR_NO_MEM",
	ErrNoAccess:     "ERROR_NO_ACCESS",
	ErrInvalidParam: "ERROR_INVALID_PARAM",
	ErrNotFound:     "ERROR_NOT_FOUND",
	ErrIO:           "ERROR_IO",
	ErrExist:        "ERROR_EXIST",
	ErrNoDev:        "ERROR_NO_DEV",
	ErrBusy:         "ERROR_BUSY",
	ErrNotSupported: "ERROR_NOT_SUPPORTED",
	ErrPathTooLong:  "ERROR_PATH_TOO_LONG",
	ErrOther:        "ERROR_OTHER_ERROR",
}

var errorMessages = map[Error]string{
	ErrNoMem:        "Insufficient memory",
	ErrNoAccess:     "Access denied (insufficient permissions)",
	ErrInvalidParam: "Invalid parameter",
	ErrNotFound:     "Not found (file or directory removed)",
	ErrIO:           "Input/output error",
	ErrExist:        "Already exist",
	ErrNoDev:        "No such device (illegal device name)",
	ErrBusy:         "Busy (gadget enabled)",
	ErrNotSupported: "Function not supported",
	ErrPathTooLong:  "Created path was too long to process it",
	ErrOther:        "Other error",
}

// Name returns the symbolic name of the error kind.
func (e Error) Name() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return "UNKNOWN"
}

func (e Error) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}
	return "Unknown error"
}

// Translate maps a host I/O failure to its taxonomy kind. Errors that
// already carry a kind pass through unchanged, so translating twice is
// harmless.
func Translate(err error) Error {
	var kind Error
	if errors.As(err, &kind) {
		return kind
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ErrOther
	}

	switch errno {
	case syscall.ENOMEM:
		return ErrNoMem
	case syscall.EACCES, syscall.EROFS, syscall.EPERM:
		return ErrNoAccess
	case syscall.ENOENT, syscall.ENOTDIR:
		return ErrNotFound
	case syscall.EINVAL:
		return ErrInvalidParam
	case syscall.EIO:
		return ErrIO
	case syscall.EEXIST:
		return ErrExist
	case syscall.ENODEV:
		return ErrNoDev
	case syscall.EBUSY:
		return ErrBusy
	default:
		return ErrOther
	}
}

// ErrorOf extracts the taxonomy kind from a wrapped error chain. It returns
// ErrOther when the chain carries no kind.
func ErrorOf(err error) Error {
	var kind Error
	if errors.As(err, &kind) {
		return kind
	}
	return ErrOther
}
