package blockstream

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Block header layout:
//   [magic (8)] [token (1)] [compressed_len (4 LE)] [original_len (4 LE)] [checksum (4 LE)]
//
// The token's high nibble is the method, its low nibble plus
// CompressionLevelBase is the level. A block may decode to at most
// 1<<level bytes.

// Magic opens every block header.
var Magic = []byte("LZ4Block")

const (
	HeaderLength         = 8 + 1 + 4 + 4 + 4
	CompressionLevelBase = 10
	MinBlockSize         = 64
	MaxBlockSize         = 1 << (CompressionLevelBase + 0x0F)
)

// maxCompressedLen is the LZ4 worst case for a block of n bytes.
// Writers store a block raw rather than let it grow, so anything
// larger cannot come from a valid stream.
func maxCompressedLen(n int) int {
	return n + n/255 + 16
}

// Method is the payload encoding of one block.
type Method byte

const (
	MethodRaw Method = 0x10
	MethodLZ4 Method = 0x20
)

func (m Method) String() string {
	switch m {
	case MethodRaw:
		return "raw"
	case MethodLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Method(0x%02x)", byte(m))
	}
}

// Header is a validated block header.
type Header struct {
	Method        Method
	Level         int
	CompressedLen int
	OriginalLen   int
	Checksum      uint32
}

// IsEndMarker reports whether h terminates the stream.
func (h Header) IsEndMarker() bool {
	return h.CompressedLen == 0 && h.OriginalLen == 0
}

// MaxOriginalLen is the largest payload the header's level permits.
func (h Header) MaxOriginalLen() int { return 1 << h.Level }

// ParseHeader validates the first HeaderLength bytes of b.
// Every failure wraps ErrCorrupt.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLength {
		return Header{}, fmt.Errorf("%w: header is %d bytes, need %d", ErrCorrupt, len(b), HeaderLength)
	}
	if !bytes.Equal(b[:len(Magic)], Magic) {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrCorrupt, b[:len(Magic)])
	}
	token := b[len(Magic)]
	h := Header{
		Method: Method(token & 0xF0),
		Level:  CompressionLevelBase + int(token&0x0F),
	}
	if h.Method != MethodRaw && h.Method != MethodLZ4 {
		return Header{}, fmt.Errorf("%w: unknown compression method 0x%02x", ErrCorrupt, byte(h.Method))
	}
	fields := b[len(Magic)+1:]
	h.CompressedLen = int(int32(binary.LittleEndian.Uint32(fields[0:4])))
	h.OriginalLen = int(int32(binary.LittleEndian.Uint32(fields[4:8])))
	h.Checksum = binary.LittleEndian.Uint32(fields[8:12])

	switch {
	case h.OriginalLen > h.MaxOriginalLen():
		return Header{}, fmt.Errorf("%w: original length %d exceeds %d for level %d",
			ErrCorrupt, h.OriginalLen, h.MaxOriginalLen(), h.Level)
	case h.OriginalLen < 0 || h.CompressedLen < 0:
		return Header{}, fmt.Errorf("%w: negative length (compressed %d, original %d)",
			ErrCorrupt, h.CompressedLen, h.OriginalLen)
	case (h.OriginalLen == 0) != (h.CompressedLen == 0):
		return Header{}, fmt.Errorf("%w: compressed length %d with original length %d",
			ErrCorrupt, h.CompressedLen, h.OriginalLen)
	case h.Method == MethodRaw && h.OriginalLen != h.CompressedLen:
		return Header{}, fmt.Errorf("%w: raw block with compressed length %d != original length %d",
			ErrCorrupt, h.CompressedLen, h.OriginalLen)
	case h.CompressedLen > maxCompressedLen(h.MaxOriginalLen()):
		return Header{}, fmt.Errorf("%w: compressed length %d exceeds %d for level %d",
			ErrCorrupt, h.CompressedLen, maxCompressedLen(h.MaxOriginalLen()), h.Level)
	case h.IsEndMarker() && h.Checksum != 0:
		return Header{}, fmt.Errorf("%w: end marker with checksum 0x%08x", ErrCorrupt, h.Checksum)
	}
	return h, nil
}
