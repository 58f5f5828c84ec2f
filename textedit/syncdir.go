//go:build !windows

package textedit

import (
	"errors"
	"os"
)

// SyncDir opens a directory and syncs its contents to disk, making a rename
// inside it durable.
func SyncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	return errors.Join(d.Sync(), d.Close())
}
