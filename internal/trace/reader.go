// Package trace streams newline-delimited trace records from a byte source.
//
// The builder never performs decompression itself (gzip I/O is out of
// scope per the builder's own contract); Reader simply wraps whatever
// io.Reader the caller hands it, which in practice is the decompressed
// body of a gzFile-equivalent trace.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// defaultBufferBytes is the initial bufio.Scanner buffer size. It grows
// on demand up to MaxLineBytes (or bufio's own ceiling when unbounded).
const defaultBufferBytes = 4096

// Reader produces one logical trace line at a time.
//
// A Reader is not safe for concurrent use; the builder it feeds is itself
// single-threaded and synchronous.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// New wraps r. maxLineBytes bounds the longest line the scanner will
// accept; zero means unbounded (the scanner buffer grows as needed).
// This replaces the historical fixed 256-byte read buffer of the
// original instrumentor; nothing in the wire format requires truncation,
// so New defaults to accepting arbitrarily long lines.
func New(r io.Reader, maxLineBytes int) *Reader {
	sc := bufio.NewScanner(r)
	if maxLineBytes > 0 {
		// bufio.Scanner accepts tokens up to the larger of the bound and the
		// initial buffer's capacity, so the buffer must not exceed the bound.
		sc.Buffer(make([]byte, 0, min(defaultBufferBytes, maxLineBytes)), maxLineBytes)
	} else {
		sc.Buffer(make([]byte, 0, defaultBufferBytes), math.MaxInt)
	}
	return &Reader{scanner: sc}
}

// Next returns the next logical line with its trailing newline stripped.
// ok is false at EOF; err is non-nil only on a genuine read failure or a
// line exceeding the configured bound.
func (r *Reader) Next() (line string, ok bool, err error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", false, fmt.Errorf("trace: reading line %d: %w", r.line+1, err)
		}
		return "", false, nil
	}
	r.line++
	return r.scanner.Text(), true, nil
}

// LineNumber returns the 1-based number of the last line returned by Next.
func (r *Reader) LineNumber() int {
	return r.line
}
