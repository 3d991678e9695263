package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/harshithgowdakt/lz4block/internal/blockstream"
	"github.com/harshithgowdakt/lz4block/internal/compression"
)

type closeRecorder struct {
	io.Reader
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func rawBlock(payload []byte, check uint32) []byte {
	b := append([]byte(nil), blockstream.Magic...)
	b = append(b, byte(blockstream.MethodRaw))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(payload)))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(payload)))
	b = binary.LittleEndian.AppendUint32(b, check)
	return append(b, payload...)
}

func endMarker() []byte {
	b := append([]byte(nil), blockstream.Magic...)
	b = append(b, byte(blockstream.MethodRaw))
	return append(b, make([]byte, 12)...)
}

func TestDecode(t *testing.T) {
	payload := []byte("hello, blocks")
	sum := compression.NewXXHash32(compression.DefaultSeed)
	sum.Update(payload)
	stream := append(rawBlock(payload, sum.Value()), endMarker()...)

	src := &closeRecorder{Reader: bytes.NewReader(stream)}
	var out bytes.Buffer
	n, err := decode(src, &out)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(payload)) || !bytes.Equal(out.Bytes(), payload) {
		t.Fatalf("got %q", out.Bytes())
	}
	if src.closed != 1 {
		t.Fatalf("source closed %d times", src.closed)
	}
}

func TestDecodeClosesOnError(t *testing.T) {
	// bad checksum
	stream := append(rawBlock([]byte("corrupt"), 1), endMarker()...)
	src := &closeRecorder{Reader: bytes.NewReader(stream)}
	_, err := decode(src, io.Discard)
	if !errors.Is(err, blockstream.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if src.closed != 1 {
		t.Fatalf("source closed %d times", src.closed)
	}
}
