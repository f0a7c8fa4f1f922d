package tokenizer

import (
	"errors"
	"io"
)

// source wraps a pull-based rune reader with a small lookahead buffer.
// The buffer never holds more than the lookahead the scanner asks for, which
// is bounded by the longest prefix plus the longest special case.
type source struct {
	r   io.RuneReader
	buf []rune // read but not consumed
	pos int    // absolute rune offset of buf[0]
	err error  // first error returned by r, sticky
}

// fill reads until at least n runes are buffered. It reports false when the
// reader is exhausted or failed before that.
func (s *source) fill(n int) bool {
	for len(s.buf) < n {
		if s.err != nil {
			return false
		}
		r, _, err := s.r.ReadRune()
		if err != nil {
			s.err = err
			return false
		}
		s.buf = append(s.buf, r)
	}
	return true
}

// peek returns the i-th unconsumed rune.
func (s *source) peek(i int) (rune, bool) {
	if !s.fill(i + 1) {
		return 0, false
	}
	return s.buf[i], true
}

// window returns up to n unconsumed runes. Fewer are returned only at the
// end of input. The slice is valid until the next advance.
func (s *source) window(n int) []rune {
	s.fill(n)
	return s.buf[:min(n, len(s.buf))]
}

// advance consumes n buffered runes.
func (s *source) advance(n int) {
	k := copy(s.buf, s.buf[n:])
	s.buf = s.buf[:k]
	s.pos += n
}

// failure returns the reader error, or io.EOF when the input simply ended.
func (s *source) failure() error {
	if s.err == nil || errors.Is(s.err, io.EOF) {
		return io.EOF
	}
	return s.err
}
