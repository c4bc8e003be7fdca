package sexpr

import (
	"bufio"
	"io"
)

// LineReader yields one line of text at a time for the read keyword.
// It returns io.EOF when no lines are left.
type LineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	lines *bufio.Scanner
}

// NewLineReader returns a LineReader reading lines from r.
func NewLineReader(r io.Reader) LineReader {
	return &scannerReader{bufio.NewScanner(r)}
}

func (s *scannerReader) ReadLine() (string, error) {
	if !s.lines.Scan() {
		if err := s.lines.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.lines.Text(), nil
}

type noInput struct{}

func (noInput) ReadLine() (string, error) { return "", io.EOF }
