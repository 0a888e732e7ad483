package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/sparseset"
)

// Terminator ends every integer stream.
const Terminator = -1

const (
	valuesPerLine = 10
	columnWidth   = 6

	// maxLineSize bounds a single input line; a full set written on one line
	// needs about 200 KiB.
	maxLineSize = 1 << 20
)

var (
	// ErrUnterminated is returned when the input ends before the terminator.
	ErrUnterminated = errors.New("stream: missing -1 terminator")
)

// SyntaxError reports a token that is not an integer.
type SyntaxError struct {
	Line  int
	Token string
	cause error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("stream: line %d: invalid integer %q", e.Line, e.Token)
}

func (e *SyntaxError) Unwrap() error { return e.cause }

// ReadValues reads whitespace separated integers from r up to the terminator.
//
// Values outside [0, sparseset.MaxValue] are dropped.
func ReadValues(r io.Reader) ([]int, error) {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var out []int
	lineNo := 0
	for lines.Scan() {
		lineNo++
		words := bufio.NewScanner(bytes.NewReader(lines.Bytes()))
		words.Split(bufio.ScanWords)
		for words.Scan() {
			tok := words.Text()
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &SyntaxError{Line: lineNo, Token: tok, cause: err}
			}
			if v == Terminator {
				return out, nil
			}
			if sparseset.InRange(v) {
				out = append(out, v)
			}
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("stream: read: %w", err)
	}
	return nil, ErrUnterminated
}

// Read builds a new set from r.
func Read(r io.Reader) (*sparseset.Set, error) {
	vals, err := ReadValues(r)
	if err != nil {
		return nil, err
	}
	return sparseset.Of(vals...), nil
}

// AddAll adds every value read from r to s. On error s is left unchanged.
func AddAll(s *sparseset.Set, r io.Reader) (int, error) {
	vals, err := ReadValues(r)
	if err != nil {
		return 0, err
	}
	for _, v := range vals {
		s.Add(v)
	}
	return len(vals), nil
}

// RemoveAll removes every value read from r from s. On error s is left
// unchanged.
func RemoveAll(s *sparseset.Set, r io.Reader) (int, error) {
	vals, err := ReadValues(r)
	if err != nil {
		return 0, err
	}
	for _, v := range vals {
		s.Remove(v)
	}
	return len(vals), nil
}

// WriteValues writes the values of s in increasing order, ten per line, each
// left aligned in a six character column. It does not write the terminator.
func WriteValues(w io.Writer, s *sparseset.Set) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	col := 0
	for v := range s.All() {
		fmt.Fprintf(cw, "%-*d", columnWidth, v)
		col++
		if col == valuesPerLine {
			cw.writeString("\n")
			col = 0
		}
	}
	if col > 0 {
		cw.writeString("\n")
	}
	return cw.n, cw.flush()
}

// Write writes s followed by the terminator line.
func Write(w io.Writer, s *sparseset.Set) (int64, error) {
	n, err := WriteValues(w, s)
	if err != nil {
		return n, err
	}
	m, err := io.WriteString(w, strconv.Itoa(Terminator)+"\n")
	return n + int64(m), err
}

// WriteRanks writes the occupied ranks of s, ten per line.
func WriteRanks(w io.Writer, s *sparseset.Set) error {
	bw := bufio.NewWriter(w)
	for i, r := range s.Ranks() {
		if i > 0 {
			if i%valuesPerLine == 0 {
				bw.WriteString("\n")
			} else {
				bw.WriteString(" ")
			}
		}
		bw.WriteString(strconv.Itoa(r))
	}
	bw.WriteString("\n")
	return bw.Flush()
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func (c *countingWriter) writeString(s string) {
	_, _ = c.Write([]byte(s))
}

func (c *countingWriter) flush() error {
	if c.err != nil {
		return c.err
	}
	return c.w.Flush()
}
