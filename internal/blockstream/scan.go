package blockstream

import (
	"fmt"
	"io"
)

// ScanHeaders calls fn with the offset and header of every block in r,
// skipping payloads without decoding them, and stops after the end
// marker. An error from fn stops the scan and is returned as is.
func ScanHeaders(r io.Reader, fn func(offset int64, h Header) error) error {
	var hdr [HeaderLength]byte
	var off int64
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return fmt.Errorf("header at offset %d: %w", off, unexpected(err))
		}
		h, err := ParseHeader(hdr[:])
		if err != nil {
			return fmt.Errorf("header at offset %d: %w", off, err)
		}
		if err := fn(off, h); err != nil {
			return err
		}
		if h.IsEndMarker() {
			return nil
		}
		off += HeaderLength
		n, err := io.CopyN(io.Discard, r, int64(h.CompressedLen))
		if err != nil {
			return fmt.Errorf("payload at offset %d: %w", off+n, unexpected(err))
		}
		off += n
	}
}
