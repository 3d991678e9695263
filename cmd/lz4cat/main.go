package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/harshithgowdakt/lz4block/internal/blockstream"
	"github.com/harshithgowdakt/lz4block/internal/compression"
)

func main() {
	in := flag.String("in", "-", "Block stream to decode (- for stdin)")
	codec := flag.String("codec", "lz4", "Decompressor for compressed blocks (lz4, s2, snappy, zstd)")
	verify := flag.Bool("verify", false, "Check every block and discard the output")
	verbose := flag.Bool("v", false, "Log every decoded block to stderr")
	flag.Parse()

	dec := compression.Lookup(*codec)
	if dec == nil {
		fatalf("unknown codec %q", *codec)
	}

	var src io.ReadCloser = os.Stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			fatalf("open input: %v", err)
		}
		src = f
	}

	opts := []blockstream.Option{blockstream.WithDecompressor(dec)}
	if *verbose {
		opts = append(opts, blockstream.WithLogger(log.New(os.Stderr, "", log.LstdFlags)))
	}

	var dst io.Writer = os.Stdout
	if *verify {
		dst = io.Discard
	}
	n, err := decode(src, dst, opts...)
	if err != nil {
		fatalf("decode %s: %v", *in, err)
	}
	if *verify {
		fmt.Fprintf(os.Stderr, "%s: ok, %d bytes\n", *in, n)
	}
}

// decode copies the decoded stream from src to dst. src is closed
// whether or not decoding succeeds.
func decode(src io.ReadCloser, dst io.Writer, opts ...blockstream.Option) (int64, error) {
	r := blockstream.NewReader(src, opts...)
	n, err := io.Copy(dst, r)
	if cerr := r.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close input: %w", cerr)
	}
	return n, err
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
