package blockstream

import (
	"encoding/binary"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/harshithgowdakt/lz4block/internal/compression"
)

// Test-only writer side of the block format.

func appendHeader(dst []byte, m Method, level, clen, olen int, check uint32) []byte {
	dst = append(dst, Magic...)
	dst = append(dst, byte(m)|byte(level-CompressionLevelBase))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(int32(clen)))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(int32(olen)))
	dst = binary.LittleEndian.AppendUint32(dst, check)
	return dst
}

func appendEndMarker(dst []byte) []byte {
	return appendHeader(dst, MethodRaw, CompressionLevelBase, 0, 0, 0)
}

// levelFor is the smallest level whose limit fits blockSize.
func levelFor(blockSize int) int {
	if blockSize <= 1<<CompressionLevelBase {
		return CompressionLevelBase
	}
	return bits.Len(uint(blockSize - 1))
}

func checksumOf(data []byte) uint32 {
	c := compression.NewXXHash32(compression.DefaultSeed)
	c.Update(data)
	return c.Value()
}

func appendRawBlock(dst []byte, level int, data []byte) []byte {
	dst = appendHeader(dst, MethodRaw, level, len(data), len(data), checksumOf(data))
	return append(dst, data...)
}

// encode frames data in blocks of at most blockSize bytes, compressing
// with c where that helps, and terminates the stream.
func encode(t testing.TB, c compression.Compressor, blockSize int, data []byte) []byte {
	t.Helper()
	level := levelFor(blockSize)
	var out []byte
	for len(data) > 0 {
		chunk := data[:min(blockSize, len(data))]
		data = data[len(chunk):]
		compressed, err := c.Compress(chunk, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(compressed) == 0 {
			out = appendRawBlock(out, level, chunk)
			continue
		}
		out = appendHeader(out, MethodLZ4, level, len(compressed), len(chunk), checksumOf(chunk))
		out = append(out, compressed...)
	}
	return appendEndMarker(out)
}

// testData mixes compressible runs with random noise.
func testData(n int, seed int64) []byte {
	rnd := rand.New(rand.NewSource(seed))
	out := make([]byte, 0, n)
	for len(out) < n {
		run := 1 + rnd.Intn(300)
		if rnd.Intn(2) == 0 {
			b := byte(rnd.Intn(256))
			for i := 0; i < run; i++ {
				out = append(out, b, byte(i%7))
			}
		} else {
			for i := 0; i < run; i++ {
				out = append(out, byte(rnd.Intn(256)))
			}
		}
	}
	return out[:n]
}
