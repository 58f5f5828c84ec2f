package textedit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Filter copies in to out, editing the content on the way.
type Filter func(in io.Reader, out io.Writer) error

// EditFile runs the contents of fileName through filter and replaces the file
// with the result. Output goes to a temp file next to the target, which is
// synced and renamed over it, so the original is intact until the new content
// is fully on disk. Symlinks are resolved first so the link itself is kept.
// The file mode of the original is carried over.
//
// If the filter produced no changes the file is left untouched. The return
// reports whether the file was replaced.
func EditFile(fileName string, filter Filter) (changed bool, finalErr error) {
	realName, err := filepath.EvalSymlinks(fileName)
	if err != nil {
		return false, err
	}
	in, err := os.Open(realName)
	if err != nil {
		return false, err
	}
	defer in.Close() // nolint:errcheck
	st, err := in.Stat()
	if err != nil {
		return false, err
	}
	d := filepath.Dir(realName)
	out, err := os.CreateTemp(d, filepath.Base(realName)+".tmp")
	if err != nil {
		return false, err
	}
	defer func() {
		if finalErr != nil || !changed {
			_ = out.Close()
			_ = os.Remove(out.Name())
		}
	}()
	if err := out.Chmod(st.Mode().Perm()); err != nil {
		return false, err
	}
	same, err := runFilter(in, out, filter)
	if err != nil {
		return false, err
	}
	// protect user data: flush the new file to disk before we do the rename
	if err := out.Sync(); err != nil {
		return false, err
	}
	if err := out.Close(); err != nil {
		return false, err
	}
	if err := in.Close(); err != nil {
		return false, err
	}
	// output is byte for byte the input, skip the rename and avoid the
	// mtime/etc update of the file.
	if same {
		return false, nil
	}
	if err := os.Rename(out.Name(), realName); err != nil {
		return false, err
	}
	changed = true
	if err := SyncDir(d); err != nil {
		return true, fmt.Errorf("sync %s: %w", d, err)
	}
	return true, nil
}

// CopyBack runs the contents of fileName through filter into a temporary
// file, then truncates fileName and copies the result back into it. Unlike
// [EditFile] this keeps the inode, so every hard link sees the new content,
// at the cost of a window where a failed copy leaves the file truncated.
//
// If the filter produced no changes the file is left untouched.
func CopyBack(fileName string, filter Filter) (changed bool, finalErr error) {
	in, err := os.Open(fileName)
	if err != nil {
		return false, err
	}
	defer in.Close() // nolint:errcheck
	tmp, err := os.CreateTemp("", filepath.Base(fileName)+".tmp")
	if err != nil {
		return false, err
	}
	defer func() {
		finalErr = errors.Join(finalErr, tmp.Close(), os.Remove(tmp.Name()))
	}()
	same, err := runFilter(in, tmp, filter)
	if err != nil {
		return false, err
	}
	if err := in.Close(); err != nil {
		return false, err
	}
	if same {
		return false, nil
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	out, err := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return false, err
	}
	defer out.Close() // nolint:errcheck
	if _, err := io.Copy(out, tmp); err != nil {
		return true, fmt.Errorf("copying back to %s: %w", fileName, err)
	}
	if err := out.Sync(); err != nil {
		return true, err
	}
	return true, out.Close()
}

// runFilter compares the output against the source as it is written, so we
// know if we can skip the final replace due to not making any changes.
func runFilter(in *os.File, out io.Writer, filter Filter) (same bool, err error) {
	cmp := &sameWriter{src: in}
	if err := filter(in, io.MultiWriter(cmp, out)); err != nil {
		return false, err
	}
	return cmp.done()
}

// sameWriter tracks whether everything written to it so far matches src at
// the same offset. ReadAt leaves the read offset of src alone.
type sameWriter struct {
	src  io.ReaderAt
	off  int64
	buf  []byte
	diff bool
}

func (w *sameWriter) Write(p []byte) (int, error) {
	if !w.diff {
		if cap(w.buf) < len(p) {
			w.buf = make([]byte, len(p))
		}
		b := w.buf[:len(p)]
		n, err := w.src.ReadAt(b, w.off)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		w.diff = n < len(p) || !bytes.Equal(b, p)
	}
	w.off += int64(len(p))
	return len(p), nil
}

// done reports whether the output was identical to the source, including that
// the source has nothing past the end of the output.
func (w *sameWriter) done() (bool, error) {
	if w.diff {
		return false, nil
	}
	var one [1]byte
	n, err := w.src.ReadAt(one[:], w.off)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return n == 0, nil
}
