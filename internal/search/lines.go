package search

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// sniffLen is how much of a file is inspected for NUL bytes
const sniffLen = 512

// IsBinary reports whether the head of br contains a NUL byte. It does not
// consume any input.
func IsBinary(br *bufio.Reader) bool {
	head, _ := br.Peek(sniffLen)
	return bytes.IndexByte(head, 0) >= 0
}

// NormalizeLine strips the line terminator and replaces invalid UTF-8
func NormalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.ToValidUTF8(line, "�")
}

// EachLine calls fn with every line of r and its 1-based number until fn
// returns false or input ends. Lines have no length limit.
func EachLine(r *bufio.Reader, fn func(n int, line string) bool) error {
	n := 0
	for {
		raw, err := r.ReadString('\n')
		if raw != "" {
			n++
			if !fn(n, NormalizeLine(raw)) {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// DisplayName returns path relative to root in slash form, or path itself
// when it is not below root
func DisplayName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
