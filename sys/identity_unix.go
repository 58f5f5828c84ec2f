//go:build unix

package sys

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Identity names the storage object behind a path or open file, so two
// handles can be checked for pointing at the same file regardless of how the
// path was spelled.
type Identity struct {
	dev, ino uint64
	links    uint64
}

// IdentityOf stats path, following symlinks.
func IdentityOf(path string) (Identity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Identity{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return fromStat(&st), nil
}

// IdentityOfFile stats an already open file.
func IdentityOfFile(f *os.File) (Identity, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return Identity{}, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	var st unix.Stat_t
	var statErr error
	if err := rc.Control(func(fd uintptr) {
		statErr = unix.Fstat(int(fd), &st)
	}); err != nil {
		return Identity{}, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	if statErr != nil {
		return Identity{}, &os.PathError{Op: "fstat", Path: f.Name(), Err: statErr}
	}
	return fromStat(&st), nil
}

func fromStat(st *unix.Stat_t) Identity {
	return Identity{
		dev:   uint64(st.Dev), //nolint:unconvert // type varies by platform
		ino:   uint64(st.Ino), //nolint:unconvert
		links: uint64(st.Nlink),
	}
}

// Equal reports whether both identities refer to the same file.
func (i Identity) Equal(o Identity) bool {
	return i.dev == o.dev && i.ino == o.ino
}

// Links is the hard link count observed when the identity was taken.
func (i Identity) Links() uint64 { return i.links }

func (i Identity) String() string {
	return fmt.Sprintf("%d:%d", i.dev, i.ino)
}
