// Package terminal answers questions about the process's terminal.
package terminal

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by Require when the file is not a terminal
var ErrNotTerminal = errors.New("stdout is not a terminal")

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Require returns ErrNotTerminal unless f is a terminal
func Require(f *os.File) error {
	if !IsTerminal(f) {
		return ErrNotTerminal
	}
	return nil
}

// Size returns the width and height of the terminal behind f, or 0, 0
func Size(f *os.File) (width, height int) {
	if !IsTerminal(f) {
		return 0, 0
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}
