package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LineError reports a line that does not hold an integer.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: invalid integer %q", e.Line, e.Text)
}

func (e *LineError) Cause() error { return e.Err }

func (e *LineError) Unwrap() error { return e.Err }

// ParseLine parses a single base-10 integer, ignoring surrounding whitespace.
// Digits may be grouped with single underscores, as in 1_000_000.
func ParseLine(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.IndexByte(s, '_') >= 0 {
		digits, ok := stripDigitSeparators(s)
		if !ok {
			return 0, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrSyntax}
		}
		s = digits
	}
	return strconv.ParseInt(s, 10, 64)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// stripDigitSeparators removes underscores. Every underscore must sit
// between two digits.
func stripDigitSeparators(s string) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			sb.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return sb.String(), true
}

// Scanner reads one integer per line. Blank lines are skipped.
type Scanner struct {
	sc    *bufio.Scanner
	line  int
	value int64
	err   error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// Scan advances to the next value. It returns false at the end of the input
// or on the first error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		v, err := ParseLine(text)
		if err != nil {
			s.err = &LineError{Line: s.line, Text: text, Err: err}
			return false
		}
		s.value = v
		return true
	}

	if err := s.sc.Err(); err != nil {
		s.err = errors.Wrapf(err, "read line %d", s.line+1)
	}
	return false
}

// Value returns the value read by the last successful call to Scan.
func (s *Scanner) Value() int64 { return s.value }

// Line returns the 1-based number of the last line read.
func (s *Scanner) Line() int { return s.line }

// Err returns the first error encountered.
func (s *Scanner) Err() error { return s.err }

// Stream sends every value in r to out and closes out when done. It returns
// early when ctx is cancelled.
func Stream(ctx context.Context, r io.Reader, out chan<- int64) error {
	defer close(out)

	s := NewScanner(r)
	for s.Scan() {
		select {
		case out <- s.Value():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.WithField("lines", s.Line()).Debug("input read")
	return s.Err()
}
