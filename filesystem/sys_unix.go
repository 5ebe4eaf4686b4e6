//go:build unix

package filesystem

import (
	"io/fs"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

func access(path string) error {
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return &fs.PathError{Op: "access", Path: path, Err: err}
	}
	return nil
}

// notDir reports whether err is ENOTDIR, which means some element of the
// path is not a directory.
func notDir(err error) bool {
	return xerrors.Is(err, unix.ENOTDIR)
}
