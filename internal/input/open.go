package input

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var firstErr error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Open opens the named file for reading. Content starting with a zstd frame
// is decompressed transparently.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rc, err := newReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "open %v", name)
	}
	rc.closers = append(rc.closers, f)
	return rc, nil
}

// NewReader wraps r, decompressing it if it holds zstd data. Closing the
// returned reader does not close r.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	rc, err := newReader(r)
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func newReader(r io.Reader) (*readCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "Peek")
	}

	if !bytes.Equal(head, zstdMagic) {
		return &readCloser{Reader: br}, nil
	}

	log.Debugf("input is zstd compressed")
	dec, err := zstd.NewReader(br,
		// Input is consumed sequentially by a single reader.
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(4*1024*1024*1024),
	)
	if err != nil {
		return nil, errors.Wrap(err, "zstd.NewReader")
	}
	zr := dec.IOReadCloser()
	return &readCloser{Reader: zr, closers: []io.Closer{zr}}, nil
}

// IsNotExist returns true if the error was caused by a missing file.
func IsNotExist(err error) bool {
	return os.IsNotExist(errors.Cause(err))
}
