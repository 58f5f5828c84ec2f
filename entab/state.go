package entab

import (
	"bytes"
	"errors"
)

// LineBufferSize is the largest piece of a line handled in one step. Longer
// lines arrive as several chunks and the State carries over between them.
const LineBufferSize = 1024

var ErrInvalidThreshold = errors.New("number of spaces must be a positive integer")

// State is the per-line entab state machine. While it is replacing, every
// run of Spaces spaces becomes one tab and existing tabs pass through. The
// first byte that is neither ends replacement for the rest of the line.
//
// State is not safe for concurrent use.
type State struct {
	spaces int

	pending int  // spaces seen but not yet written, always < spaces
	replace bool // still inside the leading whitespace run
	midLine bool // some bytes of the current line have been consumed

	stats Stats
}

func NewState(spaces int) (*State, error) {
	if spaces <= 0 {
		return nil, ErrInvalidThreshold
	}
	return &State{spaces: spaces, replace: true}, nil
}

// Spaces returns the threshold the state was created with.
func (s *State) Spaces() int { return s.spaces }

// Stats returns the counters accumulated so far.
func (s *State) Stats() Stats { return s.stats }

// Reset prepares for the start of a new line.
func (s *State) Reset() {
	s.pending = 0
	s.replace = true
	s.midLine = false
}

// Process appends the entabbed form of chunk to dst and returns the extended
// slice. Chunks may split a line anywhere. Pending spaces that do not add up
// to a full tab are written back as spaces once the run ends on other content
// or a newline, and are dropped when a tab follows since the tab covers them.
func (s *State) Process(dst, chunk []byte) []byte {
	start := len(dst)
	s.stats.BytesIn += int64(len(chunk))
	for len(chunk) > 0 {
		if !s.replace {
			n := bytes.IndexByte(chunk, '\n') + 1
			if n == 0 {
				n = len(chunk)
			}
			dst = append(dst, chunk[:n]...)
			chunk = chunk[n:]
			if dst[len(dst)-1] == '\n' {
				s.endLine()
			} else {
				s.midLine = true
			}
			continue
		}
		switch chunk[0] {
		case ' ':
			s.pending++
			if s.pending >= s.spaces {
				dst = append(dst, '\t')
				s.stats.TabsEmitted++
				s.stats.SpacesCollapsed += int64(s.pending)
				s.pending = 0
			}
		case '\t':
			dst = append(dst, '\t')
			s.stats.TabsEmitted++
			s.pending = 0
		default:
			// leave the byte for the verbatim copy above
			dst = s.writePending(dst)
			s.replace = false
			continue
		}
		s.midLine = true
		chunk = chunk[1:]
	}
	s.stats.BytesOut += int64(len(dst) - start)
	return dst
}

// Flush finishes the stream, appending any pending spaces of an unterminated
// final line to dst.
func (s *State) Flush(dst []byte) []byte {
	start := len(dst)
	dst = s.writePending(dst)
	if s.midLine {
		s.stats.Lines++
	}
	s.Reset()
	s.stats.BytesOut += int64(len(dst) - start)
	return dst
}

func (s *State) writePending(dst []byte) []byte {
	for ; s.pending > 0; s.pending-- {
		dst = append(dst, ' ')
	}
	return dst
}

func (s *State) endLine() {
	s.stats.Lines++
	s.Reset()
}
