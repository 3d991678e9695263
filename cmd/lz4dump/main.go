package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/harshithgowdakt/lz4block/internal/blockstream"
)

type blockJSON struct {
	Block           int    `json:"block"`
	Offset          int64  `json:"offset"`
	Method          string `json:"method"`
	Level           int    `json:"level"`
	CompressedLen   int    `json:"compressed_bytes"`
	OriginalLen     int    `json:"original_bytes"`
	Checksum        string `json:"checksum"`
	EndOfStreamMark bool   `json:"end_marker,omitempty"`
}

type dumpJSON struct {
	File          string      `json:"file"`
	FileSize      int64       `json:"file_size"`
	Blocks        []blockJSON `json:"blocks"`
	CompressedLen int64       `json:"compressed_bytes"`
	OriginalLen   int64       `json:"original_bytes"`
	Error         string      `json:"error,omitempty"`
}

func main() {
	path := flag.String("in", "", "Block stream file to inspect")
	flag.Parse()

	if *path == "" {
		fatalf("missing required -in")
	}
	f, err := os.Open(*path)
	if err != nil {
		fatalf("open: %v", err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		fatalf("stat: %v", err)
	}

	out := dumpJSON{File: *path, FileSize: st.Size()}
	err = blockstream.ScanHeaders(bufio.NewReader(f), func(off int64, h blockstream.Header) error {
		out.Blocks = append(out.Blocks, blockJSON{
			Block:           len(out.Blocks),
			Offset:          off,
			Method:          h.Method.String(),
			Level:           h.Level,
			CompressedLen:   h.CompressedLen,
			OriginalLen:     h.OriginalLen,
			Checksum:        fmt.Sprintf("0x%08x", h.Checksum),
			EndOfStreamMark: h.IsEndMarker(),
		})
		out.CompressedLen += int64(h.CompressedLen)
		out.OriginalLen += int64(h.OriginalLen)
		return nil
	})
	if err != nil {
		// report what was walked before the damage
		out.Error = err.Error()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatalf("encode json: %v", err)
	}
	if out.Error != "" {
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
