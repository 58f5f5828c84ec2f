package entab

import (
	"bufio"
	"fmt"
	"io"
)

// Stats summarizes one run of the transform.
type Stats struct {
	Lines           int64 `yaml:"lines"`
	BytesIn         int64 `yaml:"bytesIn"`
	BytesOut        int64 `yaml:"bytesOut"`
	TabsEmitted     int64 `yaml:"tabsEmitted"`
	SpacesCollapsed int64 `yaml:"spacesCollapsed"`
}

// Transform copies r to w, entabbing the leading whitespace of every line
// with the given threshold. Input is read in chunks of at most
// LineBufferSize bytes, each ending at a newline unless the line is longer
// than that or the stream ends.
//
// If reading fails before EOF, everything read so far is still written and
// flushed before the read error is returned.
func Transform(r io.Reader, w io.Writer, spaces int) (Stats, error) {
	s, err := NewState(spaces)
	if err != nil {
		return Stats{}, err
	}
	br := bufio.NewReaderSize(r, LineBufferSize)
	bw := bufio.NewWriter(w)
	out := make([]byte, 0, LineBufferSize)

	var readErr error
	for {
		chunk, err := br.ReadSlice('\n')
		if len(chunk) > 0 {
			out = s.Process(out[:0], chunk)
			if _, err := bw.Write(out); err != nil {
				return s.Stats(), fmt.Errorf("writing output: %w", err)
			}
		}
		if err == nil || err == bufio.ErrBufferFull {
			continue
		}
		if err != io.EOF {
			readErr = fmt.Errorf("reading input: %w", err)
		}
		break
	}

	out = s.Flush(out[:0])
	if _, err := bw.Write(out); err != nil {
		return s.Stats(), fmt.Errorf("writing output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return s.Stats(), fmt.Errorf("writing output: %w", err)
	}
	return s.Stats(), readErr
}
