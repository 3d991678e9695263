package compression

import (
	"hash"

	"github.com/OneOfOne/xxhash"
)

// DefaultSeed is the xxHash32 seed used by block stream writers.
const DefaultSeed = 0x9747b28c

// Checksum is a running 32-bit checksum over a decoded block.
type Checksum interface {
	Reset()
	Update(p []byte)
	Value() uint32
}

// FromHash32 adapts h (for example crc32.NewIEEE()) to Checksum.
func FromHash32(h hash.Hash32) Checksum {
	return hashChecksum{h: h, mask: 0xFFFFFFFF}
}

// NewXXHash32 returns the default block checksum: xxHash32 with the given
// seed, truncated to its low 28 bits. Writers store the truncated value,
// so comparing the full 32 bits would reject every block.
func NewXXHash32(seed uint32) Checksum {
	return hashChecksum{h: xxhash.NewS32(seed), mask: 0x0FFFFFFF}
}

type hashChecksum struct {
	h    hash.Hash32
	mask uint32
}

func (c hashChecksum) Reset() { c.h.Reset() }

func (c hashChecksum) Update(p []byte) { c.h.Write(p) }

func (c hashChecksum) Value() uint32 { return c.h.Sum32() & c.mask }
