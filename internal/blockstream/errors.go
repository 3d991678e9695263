package blockstream

import "errors"

var (
	// ErrCorrupt is wrapped by every header, length or checksum
	// validation failure. A stream that returned it is unusable.
	ErrCorrupt = errors.New("blockstream: stream is corrupted")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("blockstream: reader closed")
	// ErrNoMark is returned by Rewind before any successful Mark.
	ErrNoMark = errors.New("blockstream: rewind without mark")
	// ErrMarkNotSupported is returned by Mark when the source cannot rewind.
	ErrMarkNotSupported = errors.New("blockstream: source does not support mark")
	// ErrMarkInvalidated is returned by MarkableReader.Rewind once more
	// bytes than the mark budget were read.
	ErrMarkInvalidated = errors.New("blockstream: mark budget exceeded")
)
