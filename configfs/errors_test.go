package configfs

import (
	"os"
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTranslateErrno(t *testing.T) {
	cases := map[syscall.Errno]Error{
		syscall.ENOMEM:  ErrNoMem,
		syscall.EACCES:  ErrNoAccess,
		syscall.EROFS:   ErrNoAccess,
		syscall.EPERM:   ErrNoAccess,
		syscall.ENOENT:  ErrNotFound,
		syscall.ENOTDIR: ErrNotFound,
		syscall.EINVAL:  ErrInvalidParam,
		syscall.EIO:     ErrIO,
		syscall.EEXIST:  ErrExist,
		syscall.ENODEV:  ErrNoDev,
		syscall.EBUSY:   ErrBusy,
		syscall.EMFILE:  ErrOther,
	}

	for errno, want := range cases {
		assert.Equal(t, want, Translate(errno), errno.Error())
	}
}

func TestTranslateUnwrapsPathError(t *testing.T) {
	_, err := os.Open("/definitely/not/there")
	assert.Equal(t, ErrNotFound, Translate(err))
}

func TestTranslateKeepsKind(t *testing.T) {
	assert.Equal(t, ErrPathTooLong, Translate(ErrPathTooLong))
	assert.Equal(t, ErrExist, Translate(errors.WithMessage(ErrExist, "context")))
}

func TestErrorOfWrapped(t *testing.T) {
	err := errors.WithMessage(errors.WithMessage(ErrBusy, "inner"), "outer")
	assert.Equal(t, ErrBusy, ErrorOf(err))

	assert.Equal(t, ErrOther, ErrorOf(errors.New("unrelated")))
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "ERROR_NOT_SUPPORTED", ErrNotSupported.Name())
	assert.Equal(t, "Function not supported", ErrNotSupported.Error())
	assert.Equal(t, "UNKNOWN", Error(42).Name())
	assert.Equal(t, "Unknown error", Error(42).Error())
}
