package compression

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdDecoder *zstd.Decoder
	zstdEncoder *zstd.Encoder
)

func init() {
	// a block stream has a single reader, so one goroutine per call is enough
	d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	zstdDecoder = d
	e, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	zstdEncoder = e
}

// ZstdCodec stores each block as a single zstd frame.
type ZstdCodec struct{}

func (ZstdCodec) Name() string { return "zstd" }

func (ZstdCodec) Compress(src, dst []byte) ([]byte, error) {
	got := zstdEncoder.EncodeAll(src, nil)
	if len(got) >= len(src) {
		return dst, nil
	}
	return append(dst, got...), nil
}

func (ZstdCodec) Decompress(src, dst []byte) (int, error) {
	into := dst[:0:len(dst)]
	ret, err := zstdDecoder.DecodeAll(src, into)
	if err != nil {
		return 0, fmt.Errorf("%w: zstd: %v", ErrDecompress, err)
	}
	if len(ret) != len(dst) {
		return 0, fmt.Errorf("%w: zstd: expected %d bytes decompressed, got %d", ErrDecompress, len(dst), len(ret))
	}
	if len(ret) > 0 && &ret[0] != &dst[0] {
		return 0, fmt.Errorf("%w: zstd: output buffer realloc'd", ErrDecompress)
	}
	return len(src), nil
}
