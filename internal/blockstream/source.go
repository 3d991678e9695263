package blockstream

import "io"

// MarkableReader adds Marker to a forward-only reader by keeping a copy
// of everything read since the last Mark, up to the mark budget.
type MarkableReader struct {
	r       io.Reader
	buf     []byte // bytes read since the mark
	pos     int    // replay position within buf
	limit   int
	marked  bool
	invalid bool
}

// NewMarkableReader wraps r.
func NewMarkableReader(r io.Reader) *MarkableReader {
	return &MarkableReader{r: r}
}

func (m *MarkableReader) Read(p []byte) (int, error) {
	if m.pos < len(m.buf) {
		n := copy(p, m.buf[m.pos:])
		m.pos += n
		return n, nil
	}
	n, err := m.r.Read(p)
	if m.marked && n > 0 {
		if len(m.buf)+n > m.limit {
			m.marked = false
			m.invalid = true
			m.buf = m.buf[:0]
			m.pos = 0
		} else {
			m.buf = append(m.buf, p[:n]...)
			m.pos = len(m.buf)
		}
	}
	return n, err
}

// Mark starts recording. Bytes already buffered but not yet replayed
// are kept and count towards budget.
func (m *MarkableReader) Mark(budget int) error {
	m.buf = append(m.buf[:0], m.buf[m.pos:]...)
	m.pos = 0
	m.limit = max(budget, 0)
	m.marked = true
	m.invalid = false
	return nil
}

// Rewind replays everything read since Mark.
func (m *MarkableReader) Rewind() error {
	if !m.marked {
		if m.invalid {
			return ErrMarkInvalidated
		}
		return ErrNoMark
	}
	m.pos = 0
	return nil
}

// Close closes the wrapped reader if it is an io.Closer.
func (m *MarkableReader) Close() error {
	if c, ok := m.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// SeekMarker implements Marker by seeking. The budget is ignored.
type SeekMarker struct {
	rs     io.ReadSeeker
	off    int64
	marked bool
}

// NewSeekMarker wraps rs.
func NewSeekMarker(rs io.ReadSeeker) *SeekMarker {
	return &SeekMarker{rs: rs}
}

func (s *SeekMarker) Read(p []byte) (int, error) { return s.rs.Read(p) }

func (s *SeekMarker) Mark(int) error {
	off, err := s.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	s.off = off
	s.marked = true
	return nil
}

func (s *SeekMarker) Rewind() error {
	if !s.marked {
		return ErrNoMark
	}
	_, err := s.rs.Seek(s.off, io.SeekStart)
	return err
}

// Close closes the wrapped reader if it is an io.Closer.
func (s *SeekMarker) Close() error {
	if c, ok := s.rs.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
