package compression

import "errors"

// ErrDecompress is wrapped by every declared decode failure.
var ErrDecompress = errors.New("compression: decode failed")

// Decompressor decodes one compressed block.
type Decompressor interface {
	// Name is the name of the compression algorithm.
	Name() string
	// Decompress decodes src into dst, which is exactly the size of the
	// decoded block, and returns the number of bytes of src consumed.
	// dst must be filled completely; anything else is an error wrapping
	// ErrDecompress.
	Decompress(src, dst []byte) (int, error)
}

// Compressor encodes one block. Only fixtures and tooling need it;
// the stream decoder never compresses.
type Compressor interface {
	Name() string
	// Compress appends the compressed form of src to dst. When src does
	// not shrink, dst is returned unchanged and the caller should store
	// the block raw.
	Compress(src, dst []byte) ([]byte, error)
}

// Codec is both halves of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// Lookup selects a codec by name. It returns nil for unknown names.
func Lookup(name string) Codec {
	switch name {
	case "lz4":
		return LZ4Codec{}
	case "s2":
		return S2Codec{}
	case "snappy":
		return SnappyCodec{}
	case "zstd":
		return ZstdCodec{}
	default:
		return nil
	}
}
