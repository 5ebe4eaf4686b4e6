package filesystem

import (
	"io/fs"

	"golang.org/x/xerrors"
)

// Kind classifies filesystem errors.
type Kind int

// Error kinds recognized by KindOf.
const (
	KindOther Kind = iota
	KindNotExist
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindNotExist:
		return "not exist"
	case KindPermission:
		return "permission denied"
	}
	return "other"
}

// kinder is implemented by errors which know their own kind, such as those
// returned by non-local backends.
type kinder interface {
	FilesystemKind() Kind
}

// KindOf returns the kind of err. A nil error is KindOther. A path through a
// non-directory is KindNotExist.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}
	var k kinder
	if xerrors.As(err, &k) {
		return k.FilesystemKind()
	}
	switch {
	case xerrors.Is(err, fs.ErrNotExist), notDir(err):
		return KindNotExist
	case xerrors.Is(err, fs.ErrPermission):
		return KindPermission
	}
	return KindOther
}

// Error is a filesystem error carrying an explicit Kind.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

var _ kinder = &Error{}

func (e *Error) Error() string {
	msg := e.Op + " " + e.Path + ": "
	if e.Err != nil {
		return msg + e.Err.Error()
	}
	return msg + e.Kind.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FilesystemKind returns e.Kind.
func (e *Error) FilesystemKind() Kind {
	return e.Kind
}
