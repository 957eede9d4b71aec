package gvf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput classifies data lines that cannot be keyed: too few
	// fields, an unknown chromosome label or a non-integer position.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIO classifies failures to open, read or write a GVF file.
	ErrIO = errors.New("gvf i/o error")
)

// ParseError represents a data line that could not be keyed, with line context.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gvf parse error at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError records the operation and file that failed.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
