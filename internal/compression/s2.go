package compression

import (
	"fmt"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/s2"
)

// S2Codec implements the S2 block format.
type S2Codec struct{}

func (S2Codec) Name() string { return "s2" }

func (S2Codec) Compress(src, dst []byte) ([]byte, error) {
	got := s2.Encode(nil, src)
	if len(got) >= len(src) {
		return dst, nil
	}
	return append(dst, got...), nil
}

func (S2Codec) Decompress(src, dst []byte) (int, error) {
	n, err := s2.DecodedLen(src)
	if err != nil {
		return 0, fmt.Errorf("%w: s2: %v", ErrDecompress, err)
	}
	if n != len(dst) {
		return 0, fmt.Errorf("%w: s2: block decodes to %d bytes, want %d", ErrDecompress, n, len(dst))
	}
	ret, err := s2.Decode(dst, src)
	if err != nil {
		return 0, fmt.Errorf("%w: s2: %v", ErrDecompress, err)
	}
	// dst was large enough, so the decoder must not have realloc'd
	if len(ret) > 0 && &ret[0] != &dst[0] {
		return 0, fmt.Errorf("%w: s2: output buffer realloc'd", ErrDecompress)
	}
	return len(src), nil
}

// SnappyCodec implements the snappy block format.
type SnappyCodec struct{}

func (SnappyCodec) Name() string { return "snappy" }

func (SnappyCodec) Compress(src, dst []byte) ([]byte, error) {
	got := snappy.Encode(nil, src)
	if len(got) >= len(src) {
		return dst, nil
	}
	return append(dst, got...), nil
}

func (SnappyCodec) Decompress(src, dst []byte) (int, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return 0, fmt.Errorf("%w: snappy: %v", ErrDecompress, err)
	}
	if n != len(dst) {
		return 0, fmt.Errorf("%w: snappy: block decodes to %d bytes, want %d", ErrDecompress, n, len(dst))
	}
	ret, err := snappy.Decode(dst, src)
	if err != nil {
		return 0, fmt.Errorf("%w: snappy: %v", ErrDecompress, err)
	}
	if len(ret) > 0 && &ret[0] != &dst[0] {
		return 0, fmt.Errorf("%w: snappy: output buffer realloc'd", ErrDecompress)
	}
	return len(src), nil
}
