package blockstream

import (
	"fmt"
	"math"
)

// Marker is implemented by sources that can return to a saved position.
// Mark saves the current position, promising that at most budget bytes
// will be read before Rewind. Rewind returns to the last mark.
//
// *Reader is itself a Marker, with budget counted in decoded bytes.
type Marker interface {
	Mark(budget int) error
	Rewind() error
}

type snapshot struct {
	set      bool
	pos      int
	n        int
	finished bool
}

// MarkBudget converts a lookahead in decoded bytes into the number of
// source bytes that may have to be re-read, assuming the worst case of
// incompressible blocks of MinBlockSize bytes. It saturates at
// math.MaxInt32 rather than failing, so a very large lookahead can still
// outrun what the source buffers.
func MarkBudget(lookahead int) int {
	if lookahead <= 0 {
		return 0
	}
	const perBlock = MinBlockSize + HeaderLength
	blocks := lookahead / MinBlockSize
	if lookahead%MinBlockSize != 0 {
		blocks++
	}
	if blocks > math.MaxInt32/perBlock {
		return math.MaxInt32
	}
	return blocks * perBlock
}

// MarkSupported reports whether the source implements Marker.
func (r *Reader) MarkSupported() bool {
	_, ok := r.src.(Marker)
	return ok
}

// Mark saves the current position so that Rewind can return to it after
// at most lookahead more bytes have been read. A new mark replaces the
// previous one.
func (r *Reader) Mark(lookahead int) error {
	if r.closed {
		return ErrClosed
	}
	m, ok := r.src.(Marker)
	if !ok {
		return ErrMarkNotSupported
	}
	if err := m.Mark(MarkBudget(max(lookahead, 0))); err != nil {
		return fmt.Errorf("marking source: %w", err)
	}
	// only the unread tail of the block is needed after Rewind
	r.replay = grow(r.replay, len(r.out)-r.pos)
	copy(r.replay, r.out[r.pos:])
	r.mark = snapshot{
		set:      true,
		pos:      r.pos,
		n:        len(r.out),
		finished: r.finished,
	}
	return nil
}

// Rewind returns to the last mark. The mark stays valid, so Rewind may be
// called again as long as the source can still rewind. Bytes before the
// marked position in the marked block are not restored.
func (r *Reader) Rewind() error {
	if r.closed {
		return ErrClosed
	}
	if !r.mark.set {
		return ErrNoMark
	}
	if err := r.src.(Marker).Rewind(); err != nil {
		return fmt.Errorf("rewinding source: %w", err)
	}
	r.finished = r.mark.finished
	// out never shrinks, so the marked block still fits
	r.out = r.out[:r.mark.n]
	r.pos = r.mark.pos
	copy(r.out[r.pos:], r.replay)
	return nil
}
