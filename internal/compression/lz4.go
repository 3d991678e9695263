package compression

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4Codec implements the LZ4 block format (no frame), which is what
// the block stream carries for MethodLZ4.
type LZ4Codec struct{}

func (LZ4Codec) Name() string { return "lz4" }

func (LZ4Codec) Compress(src, dst []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}
	bound := lz4.CompressBlockBound(len(src))
	out := make([]byte, bound)
	n, err := lz4.CompressBlock(src, out, nil)
	if err != nil {
		return dst, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(src) {
		// Incompressible
		return dst, nil
	}
	return append(dst, out[:n]...), nil
}

func (LZ4Codec) Decompress(src, dst []byte) (int, error) {
	if len(dst) == 0 {
		return len(src), nil
	}
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return 0, fmt.Errorf("%w: lz4: %v", ErrDecompress, err)
	}
	if n != len(dst) {
		return 0, fmt.Errorf("%w: lz4: expected %d bytes, got %d", ErrDecompress, len(dst), n)
	}
	// UncompressBlock fails on trailing bytes, so all of src was used
	return len(src), nil
}
