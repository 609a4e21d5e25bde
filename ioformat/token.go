package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// tokenizer reads whitespace-separated integer fields from a stream,
// the way every instance format here is laid out regardless of which
// fields happen to share a physical line.
type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.sc.Text(), nil
}

func (t *tokenizer) int() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("ioformat: expected integer, got %q: %w", tok, err)
	}
	return n, nil
}

func (t *tokenizer) int64() (int64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ioformat: expected integer, got %q: %w", tok, err)
	}
	return n, nil
}

// literal consumes the next token and errors unless it equals want. No
// parser calls it; pace2025's "p hs" line is read by a line scanner.
func (t *tokenizer) literal(want string) error {
	tok, err := t.next()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("ioformat: expected %q, got %q", want, tok)
	}
	return nil
}
