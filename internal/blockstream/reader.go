// Package blockstream decodes a stream of self-describing blocks, each
// stored raw or compressed and protected by a checksum, into one
// continuous byte sequence.
//
// A Reader has a single owner. None of its methods may be called
// concurrently.
package blockstream

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/harshithgowdakt/lz4block/internal/compression"
)

// Option configures a Reader.
type Option func(*Reader)

// WithDecompressor replaces the LZ4 decoder used for compressed blocks.
func WithDecompressor(d compression.Decompressor) Option {
	return func(r *Reader) { r.dec = d }
}

// WithChecksum replaces the default xxHash32 block checksum. It must
// match the checksum the stream was written with.
func WithChecksum(c compression.Checksum) Option {
	return func(r *Reader) { r.sum = c }
}

// WithLogger traces every decoded block to l.
func WithLogger(l *log.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// Reader decodes a block stream read from an underlying source.
type Reader struct {
	src    io.Reader
	dec    compression.Decompressor
	sum    compression.Checksum
	logger *log.Logger

	out      []byte // current block; len(out) is its original length
	scratch  []byte // header window, then compressed payload
	pos      int    // read cursor into out
	finished bool
	err      error // first fatal error, returned forever after
	closed   bool
	blocks   int64

	mark   snapshot
	replay []byte
}

// NewReader returns a Reader decoding blocks from src.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		src:     src,
		dec:     compression.LZ4Codec{},
		sum:     compression.NewXXHash32(compression.DefaultSeed),
		scratch: make([]byte, HeaderLength),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available returns the number of bytes that can be read without
// touching the source. It says nothing about the rest of the stream.
func (r *Reader) Available() int {
	if r.closed || r.err != nil {
		return 0
	}
	return len(r.out) - r.pos
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.fill(); err != nil {
		return 0, err
	}
	b := r.out[r.pos]
	r.pos++
	return b, nil
}

// Read implements io.Reader. It never crosses a block boundary, so it
// may return fewer bytes than len(p) before the end of the stream.
func (r *Reader) Read(p []byte) (int, error) {
	if err := r.fill(); err != nil {
		return 0, err
	}
	n := copy(p, r.out[r.pos:])
	r.pos += n
	return n, nil
}

// Skip discards up to n bytes of the current block and returns the
// number discarded.
func (r *Reader) Skip(n int64) (int64, error) {
	if err := r.fill(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	skipped := min(n, int64(len(r.out)-r.pos))
	r.pos += int(skipped)
	return skipped, nil
}

// WriteTo implements io.WriterTo, writing each decoded block directly
// from the output buffer.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for {
		if err := r.fill(); err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}
		n, err := w.Write(r.out[r.pos:])
		r.pos += n
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
}

// Close closes the source if it is an io.Closer. Every later call on r
// fails with ErrClosed.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// fill makes sure the current block has unread bytes, decoding the
// next block if needed. It returns io.EOF at the end of the stream.
func (r *Reader) fill() error {
	switch {
	case r.closed:
		return ErrClosed
	case r.err != nil:
		return r.err
	case r.finished:
		return io.EOF
	case r.pos < len(r.out):
		return nil
	}
	if err := r.refill(); err != nil {
		r.err = err
		return err
	}
	if r.finished {
		return io.EOF
	}
	return nil
}

// refill decodes the next block into out.
func (r *Reader) refill() error {
	r.scratch = grow(r.scratch, HeaderLength)
	if _, err := io.ReadFull(r.src, r.scratch); err != nil {
		return fmt.Errorf("block %d: reading header: %w", r.blocks, unexpected(err))
	}
	h, err := ParseHeader(r.scratch)
	if err != nil {
		return fmt.Errorf("block %d: %w", r.blocks, err)
	}
	if h.IsEndMarker() {
		r.finished = true
		r.out = r.out[:0]
		r.pos = 0
		if r.logger != nil {
			r.logger.Printf("[blockstream] end marker after %d blocks", r.blocks)
		}
		return nil
	}

	r.out = grow(r.out, h.OriginalLen)
	switch h.Method {
	case MethodRaw:
		if _, err := io.ReadFull(r.src, r.out); err != nil {
			return fmt.Errorf("block %d: reading %d raw bytes: %w", r.blocks, h.OriginalLen, unexpected(err))
		}
	case MethodLZ4:
		r.scratch = grow(r.scratch, h.CompressedLen)
		if _, err := io.ReadFull(r.src, r.scratch); err != nil {
			return fmt.Errorf("block %d: reading %d compressed bytes: %w", r.blocks, h.CompressedLen, unexpected(err))
		}
		n, err := r.dec.Decompress(r.scratch, r.out)
		if err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrCorrupt, r.blocks, err)
		}
		if n != h.CompressedLen {
			return fmt.Errorf("%w: block %d: decoder consumed %d of %d compressed bytes",
				ErrCorrupt, r.blocks, n, h.CompressedLen)
		}
	}

	r.sum.Reset()
	r.sum.Update(r.out)
	if got := r.sum.Value(); got != h.Checksum {
		return fmt.Errorf("%w: block %d: checksum 0x%08x, header says 0x%08x",
			ErrCorrupt, r.blocks, got, h.Checksum)
	}
	r.pos = 0
	if r.logger != nil {
		r.logger.Printf("[blockstream] block %d: method=%s compressed=%d original=%d",
			r.blocks, h.Method, h.CompressedLen, h.OriginalLen)
	}
	r.blocks++
	return nil
}

// unexpected reports a source that ran dry mid-block as io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
