package output

import (
	"bufio"
	"encoding/hex"
	"hash"
	"io"
	"strconv"

	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

// Writer prints accepted values, one per line, and hashes everything it
// prints so a run can be compared against a reference output.
type Writer struct {
	wr  *bufio.Writer
	h   hash.Hash
	buf []byte
	n   int
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	h := sha256.New()
	return &Writer{
		wr:  bufio.NewWriter(io.MultiWriter(w, h)),
		h:   h,
		buf: make([]byte, 0, 24),
	}
}

// WriteValue prints v followed by a newline.
func (w *Writer) WriteValue(v int64) error {
	w.buf = strconv.AppendInt(w.buf[:0], v, 10)
	w.buf = append(w.buf, '\n')
	if _, err := w.wr.Write(w.buf); err != nil {
		return errors.Wrap(err, "Write")
	}
	w.n++
	return nil
}

// Count returns the number of values written.
func (w *Writer) Count() int { return w.n }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return errors.Wrap(w.wr.Flush(), "Flush")
}

// Digest flushes w and returns the hex-encoded SHA-256 of all output.
func (w *Writer) Digest() (string, error) {
	if err := w.Flush(); err != nil {
		return "", err
	}
	return hex.EncodeToString(w.h.Sum(nil)), nil
}
