//go:build !unix

package sys

import (
	"os"
)

// Identity names the storage object behind a path or open file. Without
// device & inode numbers it falls back to [os.SameFile].
type Identity struct {
	fi os.FileInfo
}

func IdentityOf(path string) (Identity, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Identity{}, err
	}
	return Identity{fi}, nil
}

func IdentityOfFile(f *os.File) (Identity, error) {
	fi, err := f.Stat()
	if err != nil {
		return Identity{}, err
	}
	return Identity{fi}, nil
}

func (i Identity) Equal(o Identity) bool {
	if i.fi == nil || o.fi == nil {
		return false
	}
	return os.SameFile(i.fi, o.fi)
}

// Links is not known on this platform and always reports a single link.
func (i Identity) Links() uint64 { return 1 }

func (i Identity) String() string {
	if i.fi == nil {
		return "<none>"
	}
	return i.fi.Name()
}
